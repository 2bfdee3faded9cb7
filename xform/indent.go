package xform

import (
	"strings"

	"github.com/sablewing/rdp/rdperr"
	"github.com/sablewing/rdp/token"
)

// Indent, Dedent and Newline are the synthetic marker classes produced by
// IndentTransform. A grammar that uses IndentTransform defines Marker symbols against these
// classes and references them the same way it would any other terminal.
var (
	Indent  = token.NewClass("indent", "INDENT")
	Dedent  = token.NewClass("dedent", "DEDENT")
	Newline = token.NewClass("newline", "NEWLINE")
)

// IndentTransform rewrites a token stream's line breaks into INDENT/DEDENT
// markers bracketing blocks of increasing indentation, the way Python's own
// tokenizer does. opening and closing list the classes of tokens that open
// and close a bracketed nesting (parentheses, braces, ...); a newline inside
// such a nesting is never treated as a line break. tabsize is the column
// width a tab character counts for when comparing indentation levels.
// yieldNewlines additionally emits a Newline marker before every line that
// stays at the same indentation level, which most grammars ignore but some
// statement separators rely on.
func IndentTransform(opening, closing []token.Class, tabsize int, yieldNewlines bool) Transform {
	return func(src token.Source) token.Source {
		return &indentSource{
			src:       src,
			opening:   opening,
			closing:   closing,
			tabsize:   tabsize,
			newlines:  yieldNewlines,
			indention: []int{0},
		}
	}
}

type indentSource struct {
	src      token.Source
	opening  []token.Class
	closing  []token.Class
	tabsize  int
	newlines bool

	indention []int // stack of indentation column widths, innermost last
	depth     int    // bracket nesting depth
	pending   []token.Token
	lastSeen  token.Token
	haveSeen  bool
	done      bool
	err       error
}

func (s *indentSource) Next() (token.Token, bool) {
	for {
		if len(s.pending) > 0 {
			tok := s.pending[0]
			s.pending = s.pending[1:]
			return tok, true
		}
		if s.err != nil {
			return token.EOT(s.lastSeen.End()), false
		}
		if s.done {
			return s.flushFinal()
		}

		tok, ok := s.src.Next()
		if !ok {
			s.done = true
			s.lastSeen = tok
			if !s.haveSeen {
				s.haveSeen = true
			}
			continue
		}
		s.haveSeen = true
		s.lastSeen = tok
		s.nest(tok.Class)

		nlIndex := strings.IndexByte(tok.Lexeme, '\n')
		if s.depth != 0 || nlIndex == -1 {
			return tok, true
		}

		before, after := tok.Split(nlIndex + 1)
		level := indentWidth(after.Lexeme, s.tabsize)
		top := s.indention[len(s.indention)-1]

		if level == top {
			if s.newlines {
				s.pending = append(s.pending, token.Marker(Newline, tok.Start))
			}
			s.pending = append(s.pending, tok)
			continue
		}

		s.pending = append(s.pending, before)
		if level > top {
			s.indention = append(s.indention, level)
			s.pending = append(s.pending, token.Marker(Indent, after.Start))
		} else {
			for s.indention[len(s.indention)-1] > level {
				s.pending = append(s.pending, token.Marker(Dedent, after.Start))
				s.indention = s.indention[:len(s.indention)-1]
			}
			if s.indention[len(s.indention)-1] != level {
				s.err = rdperr.NewIndentationError(after.Start)
				continue
			}
		}
		if after.Lexeme != "" {
			s.pending = append(s.pending, after)
		}
	}
}

func (s *indentSource) flushFinal() (token.Token, bool) {
	if len(s.indention) > 1 {
		pos := s.lastSeen.End()
		s.indention = s.indention[:len(s.indention)-1]
		return token.Marker(Dedent, pos), true
	}
	return token.EOT(s.lastSeen.End()), false
}

func (s *indentSource) nest(c token.Class) {
	for _, oc := range s.opening {
		if oc.Equal(c) {
			s.depth++
			return
		}
	}
	for _, cc := range s.closing {
		if cc.Equal(c) {
			s.depth--
			return
		}
	}
}

// indentWidth measures the leading run of spaces and tabs in s, counting a
// tab as tabsize columns regardless of the current column position.
func indentWidth(s string, tabsize int) int {
	width := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ':
			width++
		case '\t':
			width += tabsize
		default:
			return width
		}
	}
	return width
}
