package xform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sablewing/rdp/token"
)

type classA struct{ id string }

func (c classA) ID() string    { return c.id }
func (c classA) Human() string { return c.id }
func (c classA) Equal(o interface{}) bool {
	oc, ok := o.(token.Class)
	return ok && oc.ID() == c.id
}

var (
	wordClass  = classA{"word"}
	spaceClass = classA{"space"}
)

type fixedSource struct {
	toks []token.Token
	i    int
}

func (s *fixedSource) Next() (token.Token, bool) {
	if s.i >= len(s.toks) {
		return token.Token{Class: token.EndOfText}, false
	}
	t := s.toks[s.i]
	s.i++
	return t, true
}

func drain(src token.Source) []token.Token {
	var out []token.Token
	for {
		tok, ok := src.Next()
		if !ok {
			return out
		}
		out = append(out, tok)
	}
}

func TestIgnore_DropsMatchingClasses(t *testing.T) {
	a := assert.New(t)
	src := &fixedSource{toks: []token.Token{
		{Class: wordClass, Lexeme: "foo"},
		{Class: spaceClass, Lexeme: " "},
		{Class: wordClass, Lexeme: "bar"},
	}}
	out := drain(Ignore(spaceClass)(src))
	a.Len(out, 2)
	a.Equal("foo", out[0].Lexeme)
	a.Equal("bar", out[1].Lexeme)
}

func TestChain_AppliesInOrder(t *testing.T) {
	a := assert.New(t)
	src := &fixedSource{toks: []token.Token{
		{Class: wordClass, Lexeme: "foo"},
		{Class: spaceClass, Lexeme: " "},
	}}
	chained := Chain(Ignore(spaceClass))
	out := drain(chained(src))
	a.Len(out, 1)
	a.Equal("foo", out[0].Lexeme)
}

func TestChain_EmptyIsIdentity(t *testing.T) {
	a := assert.New(t)
	src := &fixedSource{toks: []token.Token{{Class: wordClass, Lexeme: "foo"}}}
	out := drain(Chain()(src))
	a.Len(out, 1)
}
