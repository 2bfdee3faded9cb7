// Package lex builds a single combined regular expression out of a
// grammar's terminal patterns and uses it to scan source text into tokens,
// one anchored match at a time. It uses github.com/dlclark/regexp2 rather
// than the standard library's regexp so that a Regexp terminal's pattern
// may use backreferences and lookaround the way hand-written tokenizers in
// this domain usually need to (quoted-string escaping, keyword-vs-identifier
// disambiguation, and so on).
package lex

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/rs/zerolog"

	"github.com/sablewing/rdp/pos"
	"github.com/sablewing/rdp/rdperr"
	"github.com/sablewing/rdp/token"
)

// Entry is one terminal's contribution to a Tokenizer: the class tokens of
// this kind are tagged with, the regex pattern that recognizes it, and the
// tokenizer tie-break priority it was declared with (higher wins). Entries
// with an empty Pattern are markers; they never participate in the
// combined regex and are skipped when building it (they only ever enter a
// token stream synthetically, via a transform).
type Entry struct {
	Class    token.Class
	Pattern  string
	Priority int
}

// Tokenizer scans source text by repeatedly matching one combined,
// alternation-of-named-groups regex anchored at the current byte offset.
// Entries are ordered by descending Priority before the combined regex is
// built, so a higher-priority terminal always wins a tie against a
// lower-priority one, since regex alternation always prefers its leftmost
// branch; entries with equal priority keep the relative order they were
// declared in.
type Tokenizer struct {
	re      *regexp2.Regexp
	classes map[string]token.Class
	log     zerolog.Logger
}

// New compiles entries into a Tokenizer. It returns an *rdperr.InvalidGrammar
// if entries contains no terminal with a non-empty pattern.
func New(entries []Entry, log zerolog.Logger) (*Tokenizer, error) {
	ordered := make([]Entry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority > ordered[j].Priority
	})

	var pattern strings.Builder
	classes := make(map[string]token.Class)

	pattern.WriteString(`\G(?:`)
	groupCount := 0
	for i, e := range ordered {
		if e.Pattern == "" {
			continue // marker: produced only by transforms
		}
		name := fmt.Sprintf("t%d", i)
		if groupCount > 0 {
			pattern.WriteByte('|')
		}
		pattern.WriteString("(?<")
		pattern.WriteString(name)
		pattern.WriteString(">")
		pattern.WriteString(e.Pattern)
		pattern.WriteString(")")
		classes[name] = e.Class
		groupCount++
	}
	pattern.WriteString(")")

	if groupCount == 0 {
		return nil, rdperr.NewInvalidGrammar("tokenizer needs at least one terminal with a pattern")
	}

	re, err := regexp2.Compile(pattern.String(), regexp2.None)
	if err != nil {
		return nil, rdperr.NewInvalidGrammar("composing terminal patterns: %s", err)
	}

	return &Tokenizer{re: re, classes: classes, log: log}, nil
}

// Scan produces a token.Source that lazily matches source starting at
// pos.Start, advancing one token at a time.
func (t *Tokenizer) Scan(source string) token.Source {
	return &scanner{t: t, source: source, at: pos.Start}
}

type scanner struct {
	t      *Tokenizer
	source string
	at     pos.Position
	err    error
}

func (s *scanner) Next() (token.Token, bool) {
	if s.err != nil {
		return token.EOT(s.at), false
	}
	if s.at.Offset >= len(s.source) {
		return token.EOT(s.at), false
	}

	match, err := s.t.re.FindStringMatchStartingAt(s.source, s.at.Offset)
	if err != nil {
		s.err = err
		return token.EOT(s.at), false
	}
	if match == nil || match.Index != s.at.Offset {
		s.err = rdperr.NewTokenizeError(s.at, s.source[s.at.Offset:])
		s.t.log.Warn().Int("offset", s.at.Offset).Msg("no terminal pattern matched")
		return token.EOT(s.at), false
	}

	name, lexeme, err := s.selectGroup(match)
	if err != nil {
		s.err = err
		return token.EOT(s.at), false
	}
	class := s.t.classes[name]
	tok := token.Token{Class: class, Lexeme: lexeme, Start: s.at}
	s.at = s.at.Advance(lexeme)
	s.t.log.Trace().Str("class", class.ID()).Str("lexeme", lexeme).Msg("scanned token")
	return tok, true
}

// selectGroup finds which named group of match actually participated.
// Exactly one alternative of the combined regex can match at an anchored
// position, since the alternatives are tried left-to-right and the first
// one that matches wins.
func (s *scanner) selectGroup(match *regexp2.Match) (name, lexeme string, err error) {
	for groupName := range s.t.classes {
		g := match.GroupByName(groupName)
		if g != nil && g.Length > 0 {
			return groupName, g.String(), nil
		}
	}
	return "", "", fmt.Errorf("internal error: matched %q but no terminal group participated", match.String())
}
