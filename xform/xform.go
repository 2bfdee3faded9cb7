// Package xform provides composable token.Source -> token.Source rewriters:
// ignoring whitespace/comment tokens, and rewriting indentation into
// synthetic INDENT/DEDENT markers. A Grammar applies its configured
// transforms, in declaration order, between the tokenizer and the parse
// engine's token.Stream.
package xform

import "github.com/sablewing/rdp/token"

// Transform rewrites a token.Source into another token.Source.
type Transform func(token.Source) token.Source

// Chain applies transforms in order, feeding each stage's output to the
// next: Chain(a, b)(src) behaves like b(a(src)).
func Chain(transforms ...Transform) Transform {
	return func(src token.Source) token.Source {
		for _, t := range transforms {
			src = t(src)
		}
		return src
	}
}

// Ignore drops every token whose class is in classes from the stream. It is
// the usual way to make whitespace and comments invisible to the grammar.
func Ignore(classes ...token.Class) Transform {
	return func(src token.Source) token.Source {
		return &ignoreSource{src: src, classes: classes}
	}
}

type ignoreSource struct {
	src     token.Source
	classes []token.Class
}

func (s *ignoreSource) Next() (token.Token, bool) {
	for {
		tok, ok := s.src.Next()
		if !ok {
			return tok, false
		}
		if s.ignored(tok.Class) {
			continue
		}
		return tok, true
	}
}

func (s *ignoreSource) ignored(c token.Class) bool {
	for _, ic := range s.classes {
		if ic.Equal(c) {
			return true
		}
	}
	return false
}
