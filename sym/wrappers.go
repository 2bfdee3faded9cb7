package sym

import (
	"github.com/sablewing/rdp/rdperr"
	"github.com/sablewing/rdp/token"
	"github.com/sablewing/rdp/tree"
)

// wrapper is shared state for symbols that decorate exactly one inner
// symbol without building a node of their own: Optional, Lookahead,
// Proxy, Alias, NonEmpty.
type wrapper struct {
	base
	symbol Symbol
}

func (w *wrapper) PreValue(_ *token.Token, childValues []interface{}) interface{} {
	if len(childValues) == 0 {
		return nil
	}
	return childValues[0]
}

// Optional yields its body's node on success, or an empty sentinel node
// on failure; it never fails itself.
type Optional struct {
	wrapper
}

// NewOptional wraps symbol so that a failure to match is not an error.
func NewOptional(symbol Symbol) *Optional {
	return &Optional{wrapper{symbol: symbol}}
}

func (o *Optional) b() *base { return &o.base }

func (o *Optional) NewFrame() Frame { return &optionalFrame{sym: o} }

func (o *Optional) Children() []Symbol { return []Symbol{o.symbol} }

func (o *Optional) clone() Symbol {
	c := *o
	c.base = o.base.copy()
	return &c
}

type optionalFrame struct {
	sym *Optional
}

func (f *optionalFrame) Start(ctx Context) Step {
	return Want(f.sym.symbol)
}

func (f *optionalFrame) Resume(_ Context, child *tree.Node) Step {
	return Done(child)
}

func (f *optionalFrame) Throw(ctx Context, _ error) Step {
	return Done(emptySentinel(ctx.Tell()))
}

// Lookahead matches if its body would match, then rewinds the token
// stream, consuming nothing. Its own failure is not recoverable: if the
// body fails, Lookahead fails.
type Lookahead struct {
	wrapper
}

// NewLookahead wraps symbol as a non-consuming predicate.
func NewLookahead(symbol Symbol) *Lookahead {
	return &Lookahead{wrapper{symbol: symbol}}
}

func (l *Lookahead) b() *base { return &l.base }

func (l *Lookahead) NewFrame() Frame { return &lookaheadFrame{sym: l} }

func (l *Lookahead) Children() []Symbol { return []Symbol{l.symbol} }

func (l *Lookahead) clone() Symbol {
	c := *l
	c.base = l.base.copy()
	return &c
}

type lookaheadFrame struct {
	sym   *Lookahead
	start int
}

func (f *lookaheadFrame) Start(ctx Context) Step {
	f.start = ctx.Tell()
	return Want(f.sym.symbol)
}

func (f *lookaheadFrame) Resume(ctx Context, _ *tree.Node) Step {
	ctx.Seek(f.start)
	return Done(emptySentinel(f.start))
}

func (f *lookaheadFrame) Throw(_ Context, err error) Step {
	return Fail(err)
}

// Proxy is a forward-reference placeholder: a grammar author creates one
// with NewProxy where a rule is referenced before it is defined, and
// binds its target with Bind once the real definition exists. Proxy is fully transparent: the
// node it yields is its target's node, unchanged.
type Proxy struct {
	wrapper
}

// NewProxy returns an unbound Proxy. Bind must be called exactly once,
// before the grammar is used to parse anything, or evaluating it panics.
func NewProxy() *Proxy {
	return &Proxy{}
}

// Bind sets the symbol a Proxy forwards to.
func (p *Proxy) Bind(target Symbol) {
	p.symbol = target
}

// Target returns the symbol this Proxy forwards to, or nil if unbound.
func (p *Proxy) Target() Symbol { return p.symbol }

func (p *Proxy) b() *base { return &p.base }

func (p *Proxy) Name() string {
	if p.symbol != nil {
		return p.symbol.Name()
	}
	return p.base.Name()
}

func (p *Proxy) NewFrame() Frame {
	if p.symbol == nil {
		panic("sym: Proxy evaluated before its forward reference was bound")
	}
	return &proxyFrame{sym: p}
}

// Children returns the Proxy's target, or nil if it is still unbound.
func (p *Proxy) Children() []Symbol {
	if p.symbol == nil {
		return nil
	}
	return []Symbol{p.symbol}
}

func (p *Proxy) clone() Symbol {
	c := *p
	c.base = p.base.copy()
	return &c
}

type proxyFrame struct {
	sym *Proxy
}

func (f *proxyFrame) Start(ctx Context) Step {
	return Want(f.sym.symbol)
}

func (f *proxyFrame) Resume(_ Context, child *tree.Node) Step {
	return Done(child)
}

func (f *proxyFrame) Throw(_ Context, err error) Step {
	return Fail(err)
}

// Alias renames a symbol without altering how it parses: a node produced
// through an Alias carries the Alias as its symbol instead of the
// original, so the same rule can appear under different names in
// different contexts.
type Alias struct {
	wrapper
	aliasName string
}

// NewAlias returns an Alias of symbol under name.
func NewAlias(symbol Symbol, name string) *Alias {
	return &Alias{wrapper: wrapper{symbol: symbol}, aliasName: name}
}

func (a *Alias) b() *base { return &a.base }

func (a *Alias) Name() string { return a.aliasName }

func (a *Alias) NewFrame() Frame { return &aliasFrame{sym: a} }

func (a *Alias) Children() []Symbol { return []Symbol{a.symbol} }

func (a *Alias) clone() Symbol {
	c := *a
	c.base = a.base.copy()
	return &c
}

type aliasFrame struct {
	sym *Alias
}

func (f *aliasFrame) Start(ctx Context) Step {
	return Want(f.sym.symbol)
}

func (f *aliasFrame) Resume(_ Context, child *tree.Node) Step {
	if child.Symbol == Symbol(f.sym.symbol) {
		child.Symbol = f.sym
	}
	return Done(child)
}

func (f *aliasFrame) Throw(_ Context, err error) Step {
	return Fail(err)
}

// NonEmpty requires its body to have produced a non-empty node: at least
// one token or one child. It is the unary "non-empty match" annotation
// applied by a grammar's `+` prefix operator.
type NonEmpty struct {
	wrapper
}

// NewNonEmpty wraps symbol, failing if it matches but yields an empty
// node.
func NewNonEmpty(symbol Symbol) *NonEmpty {
	return &NonEmpty{wrapper{symbol: symbol}}
}

func (n *NonEmpty) b() *base { return &n.base }

func (n *NonEmpty) NewFrame() Frame { return &nonEmptyFrame{sym: n} }

func (n *NonEmpty) Children() []Symbol { return []Symbol{n.symbol} }

func (n *NonEmpty) clone() Symbol {
	c := *n
	c.base = n.base.copy()
	return &c
}

type nonEmptyFrame struct {
	sym *NonEmpty
}

func (f *nonEmptyFrame) Start(ctx Context) Step {
	return Want(f.sym.symbol)
}

func (f *nonEmptyFrame) Resume(ctx Context, child *tree.Node) Step {
	if isEmpty(child) {
		return Fail(rdperr.NewParseError(ctx.Peek().Start, "non-empty match expected for %s", f.sym.symbol.Name()))
	}
	return Done(child)
}

func (f *nonEmptyFrame) Throw(_ Context, err error) Step {
	return Fail(err)
}

// NonEmptyOf applies the unary "non-empty match" annotation to s,
// matching the per-variant behavior a grammar's `+` prefix operator has
// in the source language: terminals are already non-empty by
// construction and pass through unchanged, a Repeat gains a minimum of
// one match, and Marker/Lookahead — which can only ever produce an empty
// match — reject the annotation as a grammar error.
func NonEmptyOf(s Symbol) (Symbol, error) {
	switch v := s.(type) {
	case *Terminal, *Regexp:
		return s, nil
	case *Marker:
		return nil, rdperr.NewInvalidGrammar("marker %q cannot be made non-empty", v.Human())
	case *Epsilon:
		return nil, rdperr.NewInvalidGrammar("epsilon cannot be made non-empty")
	case *Lookahead:
		return nil, rdperr.NewInvalidGrammar("lookahead cannot be made non-empty")
	case *Repeat:
		if v.minMatches > 0 {
			return v, nil
		}
		c := v.clone().(*Repeat)
		c.minMatches = 1
		return c, nil
	default:
		return NewNonEmpty(s), nil
	}
}
