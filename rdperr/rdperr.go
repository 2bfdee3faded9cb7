// Package rdperr defines the error taxonomy raised by the grammar builder,
// tokenizer, and parse engine: InvalidGrammar, TokenizeError, ParseError
// (with its UnexpectedToken subcategory), and LeftRecursion.
package rdperr

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-multierror"

	"github.com/sablewing/rdp/pos"
)

// InvalidGrammar is raised for structural problems discovered while building
// or finalizing a Grammar: an unresolved forward declaration, a Regexp whose
// pattern matches the empty string, a non-empty constraint applied to a
// marker or lookahead, or finalizing with no terminals at all.
type InvalidGrammar struct {
	msg  string
	wrap error
}

func (e *InvalidGrammar) Error() string {
	return "invalid grammar: " + e.msg
}

func (e *InvalidGrammar) Unwrap() error {
	return e.wrap
}

// NewInvalidGrammar creates an InvalidGrammar with the given message.
func NewInvalidGrammar(format string, a ...interface{}) error {
	return &InvalidGrammar{msg: fmt.Sprintf(format, a...)}
}

// GrammarProblems collects zero or more InvalidGrammar-worthy problems found
// during finalization. The zero value is ready to use. Err returns nil if
// nothing was ever added, and otherwise an *InvalidGrammar wrapping a
// github.com/hashicorp/go-multierror of every problem added (even when
// there is only one) — so callers always see every structural issue in the
// grammar at once instead of stopping at the first.
type GrammarProblems struct {
	errs *multierror.Error
}

// Add records a problem. format/a are passed to fmt.Sprintf.
func (p *GrammarProblems) Add(format string, a ...interface{}) {
	p.errs = multierror.Append(p.errs, fmt.Errorf(format, a...))
}

// Err returns the aggregated InvalidGrammar error, or nil if no problems
// were added.
func (p *GrammarProblems) Err() error {
	if p.errs == nil || p.errs.Len() == 0 {
		return nil
	}
	p.errs.ErrorFormat = func(errs []error) string {
		points := make([]string, len(errs))
		for i, err := range errs {
			points[i] = fmt.Sprintf("- %s", err)
		}
		return fmt.Sprintf("%d structural problem(s) found:\n%s", len(errs), joinLines(points))
	}
	return &InvalidGrammar{msg: p.errs.Error(), wrap: p.errs}
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}

// LeftRecursion is a form of InvalidGrammar detected while parsing: a
// symbol was requested again at the same token offset that is already on
// the engine's frame stack.
type LeftRecursion struct {
	Symbol string
	At     pos.Position
}

func (e *LeftRecursion) Error() string {
	return fmt.Sprintf("left recursion detected in %s at %s", e.Symbol, e.At)
}

// NewLeftRecursion creates a LeftRecursion error for the given symbol name
// and position.
func NewLeftRecursion(symbol string, at pos.Position) error {
	return &LeftRecursion{Symbol: symbol, At: at}
}

// TokenizeError is raised when the combined terminal regex fails to match at
// some offset, or when an indentation transform observes an inconsistent
// dedent level.
type TokenizeError struct {
	msg string
	At  pos.Position
}

func (e *TokenizeError) Error() string {
	return fmt.Sprintf("%s at %s", e.msg, e.At)
}

// NewTokenizeError builds a TokenizeError reporting that no terminal pattern
// matched at at, including a short sample of the unmatched input and, when
// that sample is truncated, the human-readable size of the remaining input.
func NewTokenizeError(at pos.Position, remaining string) error {
	sample := remaining
	const maxSample = 10
	truncated := false
	if len(sample) > maxSample {
		sample = sample[:maxSample]
		truncated = true
	}
	suffix := ""
	if truncated {
		suffix = fmt.Sprintf(" (%s remaining)", humanize.Bytes(uint64(len(remaining))))
	}
	return &TokenizeError{
		msg: fmt.Sprintf("unexpected input %q%s", sample, suffix),
		At:  at,
	}
}

// NewIndentationError builds a TokenizeError for an inconsistent dedent
// level: the indentation of a line did not match any enclosing indent level
// on the stack.
func NewIndentationError(at pos.Position) error {
	return &TokenizeError{msg: "unindent does not match any outer indentation level", At: at}
}

// ParseError is raised when a symbol fails to match at a given position. It
// is totally ordered by position, which the engine uses to select the
// longest-match error among OneOf's failing alternatives.
type ParseError struct {
	msg string
	At  pos.Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %s", e.msg, e.At)
}

// NewParseError creates a plain ParseError with a message and position.
func NewParseError(at pos.Position, format string, a ...interface{}) error {
	return &ParseError{msg: fmt.Sprintf(format, a...), At: at}
}

// Position returns the position at which a ParseError (or one of its
// subcategories) occurred. ok is false if err is not a rdperr position-
// bearing error.
func Position(err error) (p pos.Position, ok bool) {
	switch e := err.(type) {
	case *ParseError:
		return e.At, true
	case *UnexpectedToken:
		return e.At, true
	case *LeftRecursion:
		return e.At, true
	case *TokenizeError:
		return e.At, true
	}
	return pos.Position{}, false
}

// After returns whether a occurred strictly after b in the source, used by
// OneOf to select the longest-match error: on a tie, the later-declared
// alternative's error wins only if it is strictly further along, never on
// equal offset.
func After(a, b error) bool {
	pa, aok := Position(a)
	pb, bok := Position(b)
	if !aok || !bok {
		return false
	}
	return pa.Offset > pb.Offset
}

// UnexpectedToken is the subcategory of ParseError raised by a Terminal
// mismatch: it carries the expected symbol's human description and the
// offending token's lexeme.
type UnexpectedToken struct {
	ParseError
	Expected string
	Found    string
}

// NewUnexpectedToken builds an UnexpectedToken error.
func NewUnexpectedToken(at pos.Position, expected, found string) error {
	return &UnexpectedToken{
		ParseError: ParseError{
			msg: fmt.Sprintf("expected %s, found %s", expected, found),
			At:  at,
		},
		Expected: expected,
		Found:    found,
	}
}
