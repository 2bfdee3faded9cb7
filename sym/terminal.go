package sym

import (
	"fmt"
	"regexp"

	"github.com/sablewing/rdp/rdperr"
	"github.com/sablewing/rdp/token"
	"github.com/sablewing/rdp/tree"
)

// Terminal matches a single token equal by lexeme. Its pattern, used by
// the tokenizer, is the lexeme escaped as a literal regex. Terminal also
// implements token.Class directly, so a scanned Token's Class field can
// literally be the Terminal that matched it.
type Terminal struct {
	base
	lexeme   string
	priority int
}

// Lit builds a Terminal matching lexeme exactly. Each call returns a new
// instance; Terminals built for the same lexeme share one token class ID,
// so they match the same tokens.
func Lit(lexeme string) *Terminal {
	return &Terminal{lexeme: lexeme, priority: -1}
}

func (t *Terminal) b() *base { return &t.base }

func (t *Terminal) Lexeme() string { return t.lexeme }

func (t *Terminal) Priority() int { return t.priority }

// WithPriority returns a clone of t with the tokenizer tie-break priority
// set. Higher priority wins when more than one terminal could match the
// same prefix.
func (t *Terminal) WithPriority(p int) *Terminal {
	c := t.clone().(*Terminal)
	c.priority = p
	return c
}

func (t *Terminal) Pattern() string { return regexp.QuoteMeta(t.lexeme) }

// ID, Human and Equal implement token.Class.
func (t *Terminal) ID() string { return fmt.Sprintf("terminal:%q", t.lexeme) }

func (t *Terminal) Human() string {
	if t.name != "" {
		return t.name
	}
	return fmt.Sprintf("%q", t.lexeme)
}

func (t *Terminal) Equal(o interface{}) bool {
	oc, ok := o.(token.Class)
	if !ok {
		return false
	}
	return oc.ID() == t.ID()
}

func (t *Terminal) PreValue(tok *token.Token, _ []interface{}) interface{} {
	if tok == nil {
		return ""
	}
	return tok.Lexeme
}

func (t *Terminal) NewFrame() Frame { return &leafFrame{class: t} }

func (t *Terminal) Children() []Symbol { return nil }

// ResolveDefaultDrop sets t's drop flag to dropped, but only if no
// occurrence-level annotation (sym.Drop/sym.Keep) has already set it.
// Build calls this for every bare Terminal when a grammar's
// drop-terminals policy is enabled.
func (t *Terminal) ResolveDefaultDrop(dropped bool) {
	if t.drop == nil {
		t.drop = boolPtr(dropped)
	}
}

func (t *Terminal) clone() Symbol {
	c := *t
	c.base = t.base.copy()
	return &c
}

// Regexp is a terminal whose pattern is a user-supplied regular
// expression rather than a literal lexeme. Constructing one whose pattern
// can match the empty string is an InvalidGrammar error, since an
// empty-matching terminal would let the tokenizer spin without
// consuming input. The check compiles the pattern with the standard
// library's regexp package; a pattern that package cannot compile (for
// example one using lookaround or backreferences) is not checked.
type Regexp struct {
	base
	pattern  string
	priority int
}

// NewRegexp builds a Regexp terminal from pattern. It returns
// *rdperr.InvalidGrammar if pattern matches the empty string; a pattern
// the standard library's regexp cannot compile is accepted unchecked.
func NewRegexp(pattern string) (*Regexp, error) {
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err == nil && re.MatchString("") {
		return nil, rdperr.NewInvalidGrammar("regexp %q matches the empty string; use Epsilon instead", pattern)
	}
	return &Regexp{pattern: pattern, priority: -1}, nil
}

func (r *Regexp) b() *base { return &r.base }

func (r *Regexp) Pattern() string { return r.pattern }

func (r *Regexp) Priority() int { return r.priority }

func (r *Regexp) WithPriority(p int) *Regexp {
	c := r.clone().(*Regexp)
	c.priority = p
	return c
}

func (r *Regexp) ID() string { return fmt.Sprintf("regexp:%q", r.pattern) }

func (r *Regexp) Human() string {
	if r.name != "" {
		return r.name
	}
	return fmt.Sprintf("/%s/", r.pattern)
}

func (r *Regexp) Equal(o interface{}) bool {
	oc, ok := o.(token.Class)
	if !ok {
		return false
	}
	return oc.ID() == r.ID()
}

func (r *Regexp) PreValue(tok *token.Token, _ []interface{}) interface{} {
	if tok == nil {
		return ""
	}
	return tok.Lexeme
}

func (r *Regexp) NewFrame() Frame { return &leafFrame{class: r} }

func (r *Regexp) Children() []Symbol { return nil }

func (r *Regexp) clone() Symbol {
	c := *r
	c.base = r.base.copy()
	return &c
}

// Marker is a terminal with no lexical pattern: it never participates in
// the combined tokenizer regex and only ever enters a token stream
// synthetically, through a token transform (INDENT/DEDENT/NEWLINE).
type Marker struct {
	base
	id string
}

// NewMarker builds a Marker terminal identified by id, matching tokens of
// the given token.Class (normally one exported by a transform package).
func NewMarker(id string, class token.Class) *Marker {
	return &Marker{base: base{name: id}, id: class.ID()}
}

func (m *Marker) b() *base { return &m.base }

func (m *Marker) ID() string { return m.id }

func (m *Marker) Human() string {
	if m.name != "" {
		return m.name
	}
	return m.id
}

func (m *Marker) Equal(o interface{}) bool {
	oc, ok := o.(token.Class)
	return ok && oc.ID() == m.id
}

func (m *Marker) PreValue(tok *token.Token, _ []interface{}) interface{} {
	if tok == nil {
		return ""
	}
	return tok.Lexeme
}

func (m *Marker) NewFrame() Frame { return &leafFrame{class: m} }

func (m *Marker) Children() []Symbol { return nil }

func (m *Marker) clone() Symbol {
	c := *m
	c.base = m.base.copy()
	return &c
}

// leafFrame implements the shared matching behavior of Terminal, Regexp
// and Marker: read the next token, and succeed iff its class is the
// symbol itself.
type leafFrame struct {
	class interface {
		tree.Symbol
		token.Class
	}
}

func (f *leafFrame) Start(ctx Context) Step {
	offset := ctx.Tell()
	tok := ctx.Read()
	if !f.class.Equal(tok.Class) {
		return Fail(rdperr.NewUnexpectedToken(tok.Start, f.class.Human(), tok.String()))
	}
	return Done(tree.NewTerminal(f.class, tok, offset))
}

func (f *leafFrame) Resume(Context, *tree.Node) Step {
	panic("sym: leaf symbol frame resumed; it never requests a child")
}

func (f *leafFrame) Throw(_ Context, err error) Step {
	return Fail(err)
}

// Epsilon is the unique marker that always matches without consuming a
// token, yielding an empty node.
type Epsilon struct {
	base
}

// NewEpsilon builds a fresh Epsilon symbol. Most grammars need only one;
// rdp.Epsilon is the canonical instance.
func NewEpsilon() *Epsilon {
	return &Epsilon{base: base{name: "ε"}}
}

func (e *Epsilon) b() *base { return &e.base }

func (e *Epsilon) PreValue(*token.Token, []interface{}) interface{} { return nil }

func (e *Epsilon) NewFrame() Frame { return &epsilonFrame{sym: e} }

func (e *Epsilon) Children() []Symbol { return nil }

func (e *Epsilon) clone() Symbol {
	c := *e
	c.base = e.base.copy()
	return &c
}

type epsilonFrame struct {
	sym *Epsilon
}

func (f *epsilonFrame) Start(ctx Context) Step {
	return Done(tree.New(f.sym, ctx.Tell()))
}

func (f *epsilonFrame) Resume(Context, *tree.Node) Step {
	panic("sym: epsilon frame resumed; it never requests a child")
}

func (f *epsilonFrame) Throw(_ Context, err error) Step {
	return Fail(err)
}
