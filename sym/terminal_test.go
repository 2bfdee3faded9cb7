package sym

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegexp_RejectsEmptyMatchingPattern(t *testing.T) {
	a := assert.New(t)
	_, err := NewRegexp(`a*`)
	a.Error(err)
}

func TestRegexp_AcceptsNonEmptyMatchingPattern(t *testing.T) {
	a := assert.New(t)
	r, err := NewRegexp(`a+`)
	a.NoError(err)
	a.NotNil(r)
}

func TestTerminal_ResolveDefaultDrop_RespectsExplicitAnnotation(t *testing.T) {
	a := assert.New(t)
	kept := Keep(Lit("x")).(*Terminal)
	kept.ResolveDefaultDrop(true)
	a.False(kept.Dropped())

	bare := Lit("y")
	bare.ResolveDefaultDrop(true)
	a.True(bare.Dropped())
}

func TestTerminal_WithPriority(t *testing.T) {
	a := assert.New(t)
	base := Lit("x")
	prioritized := base.WithPriority(5)
	a.Equal(-1, base.Priority())
	a.Equal(5, prioritized.Priority())
}

func TestEpsilon_MatchesWithoutConsuming(t *testing.T) {
	a := assert.New(t)
	s := Seq(NewEpsilon(), Lit("a"))
	yield, err := run(t, s, lit("a"))
	a.NoError(err)
	a.Equal("a", yield)
}

func TestNamed_MutatesUnnamedSymbolInPlace(t *testing.T) {
	a := assert.New(t)
	term := Lit("x")
	named := Named(term, "letter")
	a.Same(term, named)
	a.Equal("letter", term.Name())
}

func TestNamed_AliasesAlreadyNamedSymbol(t *testing.T) {
	a := assert.New(t)
	term := Named(Lit("x"), "letter")
	renamed := Named(term, "alpha")
	a.NotSame(term, renamed)
	a.Equal("letter", term.Name())
	a.Equal("alpha", renamed.Name())
}

func TestWithTransform_AppliesDuringNodeTransform(t *testing.T) {
	a := assert.New(t)
	upper := WithTransform(Lit("x"), func(v interface{}) interface{} {
		return v.(string) + "!"
	})
	node, err := parseTokens(t, upper, lit("x"))
	a.NoError(err)
	a.Equal("x!", node.Transform())
}
