package sym

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptional_SucceedsEmptyOnMismatch(t *testing.T) {
	a := assert.New(t)
	o := Seq(NewOptional(Lit("a")), Lit("b"))
	yield, err := run(t, o, lit("b"))
	a.NoError(err)
	a.Equal("b", yield)
}

func TestOptional_MatchesWhenPresent(t *testing.T) {
	a := assert.New(t)
	o := Seq(NewOptional(Lit("a")), Lit("b"))
	yield, err := run(t, o, lit("a"), lit("b"))
	a.NoError(err)
	a.Equal("ab", yield)
}

func TestLookahead_DoesNotConsume(t *testing.T) {
	a := assert.New(t)
	s := Seq(NewLookahead(Lit("a")), Lit("a"))
	yield, err := run(t, s, lit("a"))
	a.NoError(err)
	a.Equal("a", yield)
}

func TestLookahead_FailsIfBodyFails(t *testing.T) {
	a := assert.New(t)
	s := NewLookahead(Lit("a"))
	_, err := run(t, s, lit("b"))
	a.Error(err)
}

func TestProxy_ForwardsToBoundTarget(t *testing.T) {
	a := assert.New(t)
	p := NewProxy()
	p.Bind(Lit("a"))
	yield, err := run(t, p, lit("a"))
	a.NoError(err)
	a.Equal("a", yield)
}

func TestProxy_PanicsIfUnbound(t *testing.T) {
	a := assert.New(t)
	p := NewProxy()
	a.Panics(func() { p.NewFrame() })
}

func TestAlias_RenamesWithoutChangingParse(t *testing.T) {
	a := assert.New(t)
	inner := Named(Lit("a"), "letter")
	alias := NewAlias(inner, "alpha")
	yield, err := run(t, alias, lit("a"))
	a.NoError(err)
	a.Equal("a", yield)
	a.Equal("alpha", alias.Name())
}

func TestNonEmptyOf_TerminalsPassThrough(t *testing.T) {
	a := assert.New(t)
	s, err := NonEmptyOf(Lit("a"))
	a.NoError(err)
	a.IsType(&Terminal{}, s)
}

func TestNonEmptyOf_RepeatGainsMinimumOne(t *testing.T) {
	a := assert.New(t)
	s, err := NonEmptyOf(Many(Lit("a")))
	a.NoError(err)
	r, ok := s.(*Repeat)
	a.True(ok)
	a.Equal(1, r.MinMatches())
}

func TestNonEmptyOf_RejectsMarkerAndLookahead(t *testing.T) {
	a := assert.New(t)
	_, err := NonEmptyOf(NewMarker("m", Lit("a")))
	a.Error(err)
	_, err = NonEmptyOf(NewLookahead(Lit("a")))
	a.Error(err)
}

func TestFlatten_SplicesChildrenIntoParent(t *testing.T) {
	a := assert.New(t)
	s := Seq(Lit("("), Flatten(Many(Lit("x"))), Lit(")"))
	node, err := parseTokens(t, s, lit("("), lit("x"), lit("x"), lit(")"))
	a.NoError(err)
	// the Many's own node vanishes; its two "x" matches splice directly
	// into the outer Sequence alongside "(" and ")".
	a.Len(node.Children, 4)
}
