package sym

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sablewing/rdp/engine"
	"github.com/sablewing/rdp/pos"
	"github.com/sablewing/rdp/rdplog"
	"github.com/sablewing/rdp/token"
	"github.com/sablewing/rdp/tree"
)

// tokenStreamOf builds an engine-ready stream over pre-tokenized input,
// bypassing the lexer entirely so these tests exercise only the symbol
// algebra and the driver.
func tokenStreamOf(toks ...token.Token) *token.Stream {
	return token.NewStream(&sliceSource{toks: toks})
}

type sliceSource struct {
	toks []token.Token
	i    int
}

func (s *sliceSource) Next() (token.Token, bool) {
	if s.i >= len(s.toks) {
		return token.EOT(pos.Start), false
	}
	tok := s.toks[s.i]
	s.i++
	return tok, true
}

func lit(s string) token.Token {
	return token.Token{Class: Lit(s), Lexeme: s}
}

func parseTokens(t *testing.T, start Symbol, toks ...token.Token) (*tree.Node, error) {
	t.Helper()
	stream := tokenStreamOf(toks...)
	p := engine.New(stream, start, engine.DefaultOptions(), rdplog.Disabled("test"))
	return p.Parse()
}

func run(t *testing.T, start Symbol, toks ...token.Token) (string, error) {
	t.Helper()
	node, err := parseTokens(t, start, toks...)
	if err != nil {
		return "", err
	}
	return node.Yield(), nil
}

func TestSequence_MatchesInOrder(t *testing.T) {
	a := assert.New(t)
	s := Seq(Lit("a"), Lit("b"), Lit("c"))
	yield, err := run(t, s, lit("a"), lit("b"), lit("c"))
	a.NoError(err)
	a.Equal("abc", yield)
}

func TestSequence_FailsOnMismatch(t *testing.T) {
	a := assert.New(t)
	s := Seq(Lit("a"), Lit("b"))
	_, err := run(t, s, lit("a"), lit("x"))
	a.Error(err)
}

func TestSequence_DropsAnnotatedChild(t *testing.T) {
	a := assert.New(t)
	s := Seq(Drop(Lit("(")), Lit("x"), Drop(Lit(")")))
	stream := tokenStreamOf(lit("("), lit("x"), lit(")"))
	p := engine.New(stream, s, engine.DefaultOptions(), rdplog.Disabled("test"))
	node, err := p.Parse()
	a.NoError(err)
	a.Len(node.Children, 1)
	a.Equal("x", node.Children[0].Token.Lexeme)
}

func TestOneOf_FirstSuccessWins(t *testing.T) {
	a := assert.New(t)
	o := Alt(Lit("a"), Lit("a"))
	yield, err := run(t, o, lit("a"))
	a.NoError(err)
	a.Equal("a", yield)
}

func TestOneOf_LongestMatchErrorOnTotalFailure(t *testing.T) {
	a := assert.New(t)
	o := Alt(
		Seq(Lit("a"), Lit("b"), Lit("c")),
		Seq(Lit("a"), Lit("d")),
	)
	_, err := run(t, o, lit("a"), lit("b"), lit("x"))
	a.Error(err)
	// the first alternative consumed "a","b" before failing on "x", which is
	// further along than the second alternative's immediate failure on "b"
	// vs "d"; OneOf must report the longer failure.
	a.Contains(err.Error(), "x")
}

func TestOneOf_NoAlternatives(t *testing.T) {
	a := assert.New(t)
	o := Alt()
	_, err := run(t, o, lit("a"))
	a.Error(err)
}
