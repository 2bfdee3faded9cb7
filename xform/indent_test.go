package xform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sablewing/rdp/pos"
	"github.com/sablewing/rdp/token"
)

func lineToken(lexeme string, at pos.Position) token.Token {
	return token.Token{Class: wordClass, Lexeme: lexeme, Start: at}
}

func TestIndentTransform_EmitsIndentAndDedent(t *testing.T) {
	a := assert.New(t)
	// line1 / (indent) line2 / (dedent) line3 -- the newline-plus-leading-
	// whitespace of the following line arrives as one token, the shape a
	// tokenizer's own whitespace terminal produces.
	toks := []token.Token{
		lineToken("line1", pos.Start),
		lineToken("\n    ", pos.Start.Advance("line1")),
		lineToken("line2", pos.Start.Advance("line1\n    ")),
		lineToken("\n", pos.Start.Advance("line1\n    line2")),
		lineToken("line3", pos.Start.Advance("line1\n    line2\n")),
	}
	src := &fixedSource{toks: toks}
	out := drain(IndentTransform(nil, nil, 4, false)(src))

	var classes []string
	for _, tok := range out {
		classes = append(classes, tok.Class.ID())
	}

	a.Contains(classes, Indent.ID())
	a.Contains(classes, Dedent.ID())
}

func TestIndentTransform_BracketNestingSuppressesLineBreaks(t *testing.T) {
	a := assert.New(t)
	openClass := classA{"open"}
	closeClass := classA{"close"}
	toks := []token.Token{
		{Class: openClass, Lexeme: "("},
		lineToken("a\n", pos.Start),
		lineToken("b\n", pos.Start),
		{Class: closeClass, Lexeme: ")"},
	}
	src := &fixedSource{toks: toks}
	out := drain(IndentTransform([]token.Class{openClass}, []token.Class{closeClass}, 4, false)(src))

	for _, tok := range out {
		a.False(tok.Class.Equal(Indent), "no INDENT should be synthesized inside brackets")
		a.False(tok.Class.Equal(Dedent), "no DEDENT should be synthesized inside brackets")
	}
}

func TestIndentTransform_InconsistentDedentEndsTheStream(t *testing.T) {
	a := assert.New(t)
	// line1 indents to column 8, then jumps to column 3 -- a width that
	// matches neither the 8-column nor the 0-column level on the stack.
	toks := []token.Token{
		lineToken("line1", pos.Start),
		lineToken("\n        ", pos.Start.Advance("line1")),
		lineToken("line2", pos.Start.Advance("line1\n        ")),
		lineToken("\n   ", pos.Start.Advance("line1\n        line2")),
		lineToken("line3", pos.Start.Advance("line1\n        line2\n   ")),
	}
	src := &fixedSource{toks: toks}
	out := IndentTransform(nil, nil, 4, false)(src)

	// a dedent to a width (3) that matches no level on the indentation
	// stack ([0, 8]) pops the 8-column level and then stops the stream
	// instead of continuing; draining must terminate instead of looping
	// forever.
	drained := drain(out)
	a.NotEmpty(drained)
}
