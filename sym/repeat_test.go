package sym

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepeat_Many_ZeroMatches(t *testing.T) {
	a := assert.New(t)
	r := Many(Lit("a"))
	yield, err := run(t, r, lit("b"))
	a.NoError(err)
	a.Equal("", yield)
}

func TestRepeat_Many_SeveralMatches(t *testing.T) {
	a := assert.New(t)
	r := Many(Lit("a"))
	yield, err := run(t, r, lit("a"), lit("a"), lit("a"), lit("b"))
	a.NoError(err)
	a.Equal("aaa", yield)
}

func TestRepeat_AtLeastOne_FailsOnZero(t *testing.T) {
	a := assert.New(t)
	r := AtLeastOne(Lit("a"))
	_, err := run(t, r, lit("b"))
	a.Error(err)
}

func TestRepeat_ZeroProgressBodyTerminates(t *testing.T) {
	a := assert.New(t)
	r := Many(NewOptional(Lit("a")))
	yield, err := run(t, r, lit("b"))
	a.NoError(err)
	a.Equal("", yield)
}

func TestBuildRepeat_NoSeparatorDelegatesToMany(t *testing.T) {
	a := assert.New(t)
	s := BuildRepeat(Lit("a"), RepeatOptions{})
	yield, err := run(t, s, lit("a"), lit("a"))
	a.NoError(err)
	a.Equal("aa", yield)
}

func TestBuildRepeat_SeparatorAlternatesWithBody(t *testing.T) {
	a := assert.New(t)
	s := BuildRepeat(Lit("x"), RepeatOptions{Separator: Drop(Lit(","))})
	yield, err := run(t, s, lit("x"), lit(","), lit("x"), lit(","), lit("x"))
	a.NoError(err)
	a.Equal("xxx", yield)
}

func TestBuildRepeat_ZeroMatchesAllowedWhenMinZero(t *testing.T) {
	a := assert.New(t)
	s := BuildRepeat(Lit("x"), RepeatOptions{Separator: Lit(",")})
	yield, err := run(t, s)
	a.NoError(err)
	a.Equal("", yield)
}

func TestBuildRepeat_MinMatchesEnforced(t *testing.T) {
	a := assert.New(t)
	s := BuildRepeat(Lit("x"), RepeatOptions{Separator: Drop(Lit(",")), MinMatches: 2})
	_, err := run(t, s, lit("x"))
	a.Error(err)
}
