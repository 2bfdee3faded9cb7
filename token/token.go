// Package token defines the lexeme-with-position Token produced by a
// tokenizer, and the random-access Stream the parse engine consumes them
// through.
package token

import (
	"fmt"

	"github.com/sablewing/rdp/pos"
)

// Token is a single lexeme read from source text, together with the class
// that produced it and its starting position. The end position is derived
// on demand by advancing Start over Lexeme.
type Token struct {
	Class  Class
	Lexeme string
	Start  pos.Position
}

// End returns the position immediately after this token's lexeme.
func (t Token) End() pos.Position {
	return t.Start.Advance(t.Lexeme)
}

func (t Token) String() string {
	if t.Lexeme == "" {
		return t.Class.Human()
	}
	return fmt.Sprintf("%q", t.Lexeme)
}

// Split divides t at the given byte offset into t.Lexeme into two adjacent
// tokens of the same class: one holding the bytes before offset, one
// holding the bytes from offset onward. It is used by the indentation
// transform to peel a trailing newline plus leading whitespace off of a
// token that runs up against a line break.
func (t Token) Split(offset int) (before, after Token) {
	before = Token{Class: t.Class, Lexeme: t.Lexeme[:offset], Start: t.Start}
	after = Token{Class: t.Class, Lexeme: t.Lexeme[offset:], Start: t.Start.Advance(t.Lexeme[:offset])}
	return before, after
}

// Marker builds a zero-length token of the given class at position at, used
// by token transforms to synthesize INDENT/DEDENT/NEWLINE markers.
func Marker(class Class, at pos.Position) Token {
	return Token{Class: class, Lexeme: "", Start: at}
}

// EOT builds the sentinel end-of-text token at position at.
func EOT(at pos.Position) Token {
	return Token{Class: EndOfText, Lexeme: "", Start: at}
}
