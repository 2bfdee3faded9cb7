// Package format pretty-prints a grammar's rules in a compact,
// human-readable notation: `::=` for definition, `,` for sequencing,
// `|` for alternation, `*(...)` and `+(...)` for repetition, `(...)?`
// for optionality, `(?>...)` for lookahead and `ɛ` for the empty match.
package format

import (
	"fmt"
	"strings"

	"github.com/sablewing/rdp/sym"
)

const ruleSeparator = "  ::=  "

// Rules renders every named rule reachable from a grammar (as returned
// by (*rdp.Grammar).Rules), one per line, aligned on the separator.
func Rules(rules []sym.Symbol) string {
	if len(rules) == 0 {
		return ""
	}
	maxlen := 0
	for _, r := range rules {
		if n := len(r.Name()); n > maxlen {
			maxlen = n
		}
	}
	var b strings.Builder
	for i, r := range rules {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%-*s%s%s", maxlen, r.Name(), ruleSeparator, Symbol(r))
	}
	return b.String()
}

// Symbol renders a single symbol's definition. A named child symbol
// (other than the one being rendered at the top level) is rendered as
// just its name, not expanded inline.
func Symbol(s sym.Symbol) string {
	return formatTop(s)
}

func formatTop(s sym.Symbol) string {
	return formatChild(s, 0)
}

func formatChild(s sym.Symbol, depth int) string {
	if _, isEpsilon := s.(*sym.Epsilon); !isEpsilon && s.Name() != "" && depth > 0 {
		return s.Name()
	}
	return formatByType(s, depth)
}

func formatByType(s sym.Symbol, depth int) string {
	switch v := s.(type) {
	case *sym.Terminal:
		return fmt.Sprintf("%q", v.Lexeme())
	case *sym.Regexp:
		return "r" + fmt.Sprintf("%q", v.Pattern())
	case *sym.Marker:
		return "<" + v.ID() + ">"
	case *sym.Epsilon:
		return "ɛ"
	case *sym.Sequence:
		return formatList(v.Children(), depth, ", ")
	case *sym.OneOf:
		return formatList(v.Children(), depth, " | ")
	case *sym.Repeat:
		return formatRepeat(v, depth)
	case *sym.Optional:
		return "(" + formatChild(v.Children()[0], depth+1) + ")?"
	case *sym.Lookahead:
		return "(?>" + formatChild(v.Children()[0], depth+1) + ")"
	case *sym.Alias:
		return formatChild(v.Children()[0], depth+1)
	case *sym.NonEmpty:
		return "+" + formatChild(v.Children()[0], depth+1)
	case *sym.Proxy:
		if t := v.Target(); t != nil {
			return formatChild(t, depth+1)
		}
		return "<unbound " + v.Name() + ">"
	default:
		return fmt.Sprintf("<%T>", v)
	}
}

func formatList(children []sym.Symbol, depth int, sep string) string {
	parts := make([]string, len(children))
	for i, c := range children {
		parts[i] = formatChild(c, depth+1)
	}
	return strings.Join(parts, sep)
}

func formatRepeat(r *sym.Repeat, depth int) string {
	body := formatChild(r.Children()[0], depth+1)
	if r.MinMatches() > 0 {
		return "+(" + body + ")"
	}
	return "*(" + body + ")"
}
