package sym

import (
	"github.com/sablewing/rdp/rdperr"
	"github.com/sablewing/rdp/token"
	"github.com/sablewing/rdp/tree"
)

// Repeat matches its body symbol zero or more times, greedily: it keeps
// requesting another match until one fails, then succeeds as long as it
// has collected at least minMatches of them.
type Repeat struct {
	base
	symbol     Symbol
	minMatches int
}

// Many matches symbol zero or more times.
func Many(symbol Symbol) *Repeat {
	return &Repeat{symbol: symbol}
}

// AtLeastOne matches symbol one or more times.
func AtLeastOne(symbol Symbol) *Repeat {
	return &Repeat{symbol: symbol, minMatches: 1}
}

func (r *Repeat) b() *base { return &r.base }

func (r *Repeat) PreValue(_ *token.Token, childValues []interface{}) interface{} {
	return childValues
}

// MinMatches returns the minimum number of body matches this Repeat
// requires.
func (r *Repeat) MinMatches() int { return r.minMatches }

func (r *Repeat) NewFrame() Frame { return &repeatFrame{sym: r} }

func (r *Repeat) Children() []Symbol { return []Symbol{r.symbol} }

func (r *Repeat) clone() Symbol {
	c := *r
	c.base = r.base.copy()
	return &c
}

type repeatFrame struct {
	sym          *Repeat
	node         *tree.Node
	n            int
	attemptStart int
}

func (f *repeatFrame) Start(ctx Context) Step {
	f.node = tree.New(f.sym, ctx.Tell())
	f.attemptStart = ctx.Tell()
	return Want(f.sym.symbol)
}

func (f *repeatFrame) Resume(ctx Context, child *tree.Node) Step {
	progressed := ctx.Tell() != f.attemptStart
	f.node.Append(child)
	f.n++
	if !progressed {
		// the body matched without consuming a token (an Epsilon or an
		// all-optional sequence); looping again would never terminate.
		return f.finish(ctx)
	}
	f.attemptStart = ctx.Tell()
	return Want(f.sym.symbol)
}

func (f *repeatFrame) Throw(ctx Context, _ error) Step {
	return f.finish(ctx)
}

func (f *repeatFrame) finish(ctx Context) Step {
	if f.n < f.sym.minMatches {
		return Fail(rdperr.NewParseError(ctx.Peek().Start, "too few matches of %s", f.sym.symbol.Name()))
	}
	return Done(f.node)
}

// RepeatOptions configures BuildRepeat's composition of separator,
// leading and trailing behavior around a repeated body.
type RepeatOptions struct {
	// Separator, if non-nil, must appear between consecutive matches of
	// the body.
	Separator Symbol

	// Leading permits (and consumes) one Separator before the first
	// body match.
	Leading bool

	// Trailing permits (and consumes) one dangling Separator after the
	// last body match.
	Trailing bool

	// MinMatches is the minimum number of body matches required.
	MinMatches int
}

// BuildRepeat composes symbol + separator handling the way a hand-written
// grammar would: without a separator it is a plain Repeat requiring
// MinMatches body matches; with one, the separator and body alternate, a
// dangling trailing separator is permitted only when requested, and zero
// matches succeed (yielding an empty, dropped node) only when MinMatches is
// zero.
func BuildRepeat(symbol Symbol, opts RepeatOptions) Symbol {
	if opts.Separator == nil {
		if opts.MinMatches > 0 {
			return &Repeat{symbol: symbol, minMatches: opts.MinMatches}
		}
		return Many(symbol)
	}

	tailMin := opts.MinMatches - 1
	if tailMin < 0 {
		tailMin = 0
	}
	tail := &Repeat{symbol: Flatten(Seq(opts.Separator, symbol)), minMatches: tailMin}

	r := Seq(group(symbol), Flatten(tail))
	var result Symbol = r
	if opts.Leading {
		result = Seq(NewOptional(opts.Separator), Flatten(result))
	}
	if opts.Trailing {
		result = Seq(Flatten(result), NewOptional(opts.Separator))
	}
	if opts.MinMatches > 0 {
		return result
	}
	return Alt(Flatten(result), Drop(sharedEpsilon))
}

// group marks a compound symbol as already grouped, so that further
// chaining via Then/Or nests it instead of splicing into it.
func group(s Symbol) Symbol {
	switch g := s.(type) {
	case *Sequence:
		c := g.clone().(*Sequence)
		c.grouped = true
		return c
	case *OneOf:
		c := g.clone().(*OneOf)
		c.grouped = true
		return c
	default:
		return s
	}
}

// sharedEpsilon backs the dropped empty alternative BuildRepeat uses when
// a separated repetition is allowed to match nothing at all.
var sharedEpsilon = NewEpsilon()
