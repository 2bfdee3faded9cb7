package sym

import (
	"github.com/sablewing/rdp/rdperr"
	"github.com/sablewing/rdp/token"
	"github.com/sablewing/rdp/tree"
)

// compound is the shared state of Sequence and OneOf: an ordered list of
// child symbols, plus whether this occurrence is "grouped" — parenthesized
// explicitly rather than produced by chaining the `+`/`|` combinators,
// which matters only for how further chaining associates.
type compound struct {
	base
	symbols []Symbol
	grouped bool
}

// Sequence succeeds iff every child symbol succeeds in order, in a single
// node holding each (non-dropped, non-flattened-away) child.
type Sequence struct {
	compound
}

// Seq builds a Sequence over symbols, evaluated left to right.
func Seq(symbols ...Symbol) *Sequence {
	return &Sequence{compound{symbols: symbols}}
}

func (s *Sequence) b() *base { return &s.base }

func (s *Sequence) PreValue(_ *token.Token, childValues []interface{}) interface{} {
	return childValues
}

func (s *Sequence) NewFrame() Frame { return &sequenceFrame{sym: s} }

func (s *Sequence) Children() []Symbol { return append([]Symbol(nil), s.symbols...) }

func (s *Sequence) clone() Symbol {
	c := *s
	c.base = s.base.copy()
	c.symbols = append([]Symbol(nil), s.symbols...)
	return &c
}

// Then appends other to a fresh, ungrouped Sequence: if s is itself an
// ungrouped Sequence this extends it in place of nesting, matching how
// a chain of `+` combinators reads as one flat sequence.
func (s *Sequence) Then(other Symbol) *Sequence {
	if !s.grouped {
		return &Sequence{compound{symbols: append(append([]Symbol(nil), s.symbols...), other)}}
	}
	return Seq(s, other)
}

type sequenceFrame struct {
	sym  *Sequence
	node *tree.Node
	next int
}

func (f *sequenceFrame) Start(ctx Context) Step {
	f.node = tree.New(f.sym, ctx.Tell())
	if len(f.sym.symbols) == 0 {
		return Done(f.node)
	}
	return Want(f.sym.symbols[0])
}

func (f *sequenceFrame) Resume(ctx Context, child *tree.Node) Step {
	f.node.Append(child)
	f.next++
	if f.next >= len(f.sym.symbols) {
		return Done(f.node)
	}
	return Want(f.sym.symbols[f.next])
}

func (f *sequenceFrame) Throw(_ Context, err error) Step {
	return Fail(err)
}

// OneOf succeeds with the first alternative that succeeds. On total
// failure it reports the error from whichever alternative consumed the
// most input: the longest-match policy.
type OneOf struct {
	compound
}

// Alt builds a OneOf trying symbols left to right.
func Alt(symbols ...Symbol) *OneOf {
	return &OneOf{compound{symbols: symbols}}
}

func (o *OneOf) b() *base { return &o.base }

func (o *OneOf) PreValue(_ *token.Token, childValues []interface{}) interface{} {
	if len(childValues) == 0 {
		return nil
	}
	return childValues[0]
}

func (o *OneOf) NewFrame() Frame { return &oneOfFrame{sym: o} }

func (o *OneOf) Children() []Symbol { return append([]Symbol(nil), o.symbols...) }

func (o *OneOf) clone() Symbol {
	c := *o
	c.base = o.base.copy()
	c.symbols = append([]Symbol(nil), o.symbols...)
	return &c
}

// Or appends other to a fresh, ungrouped OneOf: if o is itself an
// ungrouped OneOf this extends it rather than nesting, matching how a
// chain of `|` combinators reads as one flat alternation.
func (o *OneOf) Or(other Symbol) *OneOf {
	if !o.grouped {
		return &OneOf{compound{symbols: append(append([]Symbol(nil), o.symbols...), other)}}
	}
	return Alt(o, other)
}

type oneOfFrame struct {
	sym       *OneOf
	node      *tree.Node
	next      int
	bestErr   error
	bestIsSet bool
}

func (f *oneOfFrame) Start(ctx Context) Step {
	f.node = tree.New(f.sym, ctx.Tell())
	if len(f.sym.symbols) == 0 {
		return Fail(rdperr.NewParseError(ctx.Peek().Start, "%s has no alternatives", f.sym.Name()))
	}
	return Want(f.sym.symbols[0])
}

func (f *oneOfFrame) Resume(_ Context, child *tree.Node) Step {
	f.node.Append(child)
	return Done(f.node)
}

func (f *oneOfFrame) Throw(_ Context, err error) Step {
	if !f.bestIsSet || rdperr.After(err, f.bestErr) {
		f.bestErr = err
		f.bestIsSet = true
	}
	f.next++
	if f.next < len(f.sym.symbols) {
		return Want(f.sym.symbols[f.next])
	}
	return Fail(f.bestErr)
}
