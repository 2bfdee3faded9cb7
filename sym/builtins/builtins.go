// Package builtins provides a small set of ready-made terminals for the
// lexical classes almost every grammar needs: letter/digit runs,
// identifiers, integer literals and quoted strings.
package builtins

import (
	"fmt"
	"regexp"

	"github.com/sablewing/rdp/sym"
)

func mustRegexp(pattern string) *sym.Regexp {
	r, err := sym.NewRegexp(pattern)
	if err != nil {
		panic(err)
	}
	return r
}

var (
	// Letters matches one or more ASCII letters.
	Letters = mustRegexp(`[a-zA-Z]+`)

	// Digits matches one or more decimal digits.
	Digits = mustRegexp(`[0-9]+`)

	// HexDigits matches one or more hexadecimal digits.
	HexDigits = mustRegexp(`[0-9a-fA-F]+`)

	// OctDigits matches one or more octal digits.
	OctDigits = mustRegexp(`[0-7]+`)

	// Whitespace matches one or more whitespace characters, including
	// newlines.
	Whitespace = mustRegexp(`\s+`)

	// HorizontalWhitespace matches one or more spaces or tabs, excluding
	// newlines, for grammars that give line breaks their own meaning.
	HorizontalWhitespace = mustRegexp(`[ \t]+`)

	// Word matches a run of letters, digits and underscores.
	Word = mustRegexp(`[a-zA-Z0-9_]+`)

	// HyphenWord is Word with hyphens also allowed.
	HyphenWord = mustRegexp(`[a-zA-Z0-9_-]+`)

	// Identifier matches a C-style identifier.
	Identifier = mustRegexp(`[a-zA-Z_][a-zA-Z0-9_]*`)

	// HyphenIdentifier is Identifier with hyphens also allowed, as used
	// by kebab-case configuration keys and CLI flag names.
	HyphenIdentifier = mustRegexp(`[a-zA-Z_-][a-zA-Z0-9_-]*`)

	// DecimalInteger matches an unsigned base-10 integer literal.
	DecimalInteger = mustRegexp(`0|[1-9][0-9]*`)

	// HexadecimalInteger matches a 0x/0X-prefixed integer literal.
	HexadecimalInteger = mustRegexp(`0[xX][0-9a-fA-F]+`)

	// OctalInteger matches a 0o/0O-prefixed integer literal.
	OctalInteger = mustRegexp(`0[oO][0-7]+`)

	// Integer matches any of DecimalInteger, HexadecimalInteger or
	// OctalInteger, flattened so its node carries the matched lexeme
	// directly rather than nesting under whichever alternative matched.
	Integer = sym.Flatten(sym.Alt(HexadecimalInteger, OctalInteger, DecimalInteger))

	// DoubleQuotedString matches a "..." string literal with backslash
	// escaping.
	DoubleQuotedString = QuotedString('"', '\\')

	// SingleQuotedString matches a '...' string literal with backslash
	// escaping.
	SingleQuotedString = QuotedString('\'', '\\')
)

// QuotedString builds a Regexp matching a quote-delimited string literal:
// any run of characters other than quote or escape, or an escape
// character followed by anything, terminated by an unescaped quote.
func QuotedString(quote, escape byte) *sym.Regexp {
	q := regexp.QuoteMeta(string(quote))
	e := regexp.QuoteMeta(string(escape))
	pattern := fmt.Sprintf(`%s(?:%s.|[^%s%s])*%s`, q, e, q, e, q)
	return mustRegexp(pattern)
}

// CommaSeparated builds a Repeat of symbol over a comma separator, with
// no leading or trailing comma permitted and zero matches allowed.
func CommaSeparated(symbol sym.Symbol) sym.Symbol {
	return sym.BuildRepeat(symbol, sym.RepeatOptions{Separator: sym.Lit(",")})
}
