package demo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculator_EvaluatesAddAndMultiply(t *testing.T) {
	a := assert.New(t)
	cases := map[string]float64{
		"1 + 2":         3,
		"2 * 3 + 4":     10,
		"2 + 3 * 4":     14,
		"(2 + 3) * 4":   20,
		"-5 + 10":       5,
		"--5":           5,
		"1 * 2 * 3 * 4": 24,
	}
	for src, want := range cases {
		node, err := Calculator.Parse(src)
		a.NoError(err, src)
		a.Equal(want, node.Transform(), src)
	}
}

func TestCalculator_RejectsMalformedInput(t *testing.T) {
	a := assert.New(t)
	_, err := Calculator.Parse("1 + ")
	a.Error(err)
}

func TestCalculator_IgnoresSurroundingWhitespace(t *testing.T) {
	a := assert.New(t)
	node, err := Calculator.Parse("  1   +   2  ")
	a.NoError(err)
	a.Equal(3.0, node.Transform())
}
