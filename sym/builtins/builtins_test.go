package builtins

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecimalInteger_AcceptsSingleDigit(t *testing.T) {
	a := assert.New(t)
	// the original grammar's decimal pattern required at least two
	// digits ([1-9]\d+), which rejected single-digit numbers; this
	// pattern accepts them.
	matched, err := regexpFullMatch(DecimalInteger.Pattern(), "7")
	a.NoError(err)
	a.True(matched)
}

func TestDecimalInteger_RejectsLeadingZeroMultiDigit(t *testing.T) {
	a := assert.New(t)
	matched, err := regexpFullMatch(DecimalInteger.Pattern(), "07")
	a.NoError(err)
	a.False(matched)
}

func TestQuotedString_MatchesEscapedQuote(t *testing.T) {
	a := assert.New(t)
	matched, err := regexpFullMatch(DoubleQuotedString.Pattern(), `"a\"b"`)
	a.NoError(err)
	a.True(matched)
}

func TestCommaSeparated_BuildsAZeroOrMoreRepeat(t *testing.T) {
	a := assert.New(t)
	s := CommaSeparated(Identifier)
	a.NotNil(s)
}

// regexpFullMatch is a small test helper compiling pattern as a fully
// anchored standard-library regex, since builtins' patterns are plain
// POSIX-ish regex without dlclark/regexp2 extensions.
func regexpFullMatch(pattern, s string) (bool, error) {
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return false, err
	}
	return re.MatchString(s), nil
}
