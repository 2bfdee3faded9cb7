// Package sym implements the grammar symbol algebra: terminals, sequences,
// alternatives, repetitions, and the structural/transform annotations that
// decorate them. Each symbol type also implements the evaluation protocol
// the parse engine drives: a Frame that suspends by requesting a child
// parse and resumes with either the child's node or a thrown error, never
// by native recursion.
package sym

import (
	"github.com/sablewing/rdp/token"
	"github.com/sablewing/rdp/tree"
)

// Context is the slice of the engine a Frame needs: reading the next
// token, and inspecting or rewinding the stream's logical position.
type Context interface {
	Read() token.Token
	Peek() token.Token
	Tell() int
	Seek(offset int)
}

// Step is the result of driving a Frame once. Exactly one field is set:
// Request names a child symbol the frame wants parsed next; Node is the
// frame's finished result; Err is a parse error the frame failed with.
type Step struct {
	Request Symbol
	Node    *tree.Node
	Err     error
}

// Want builds a Step requesting that s be parsed next.
func Want(s Symbol) Step { return Step{Request: s} }

// Done builds a Step yielding a finished node.
func Done(n *tree.Node) Step { return Step{Node: n} }

// Fail builds a Step propagating a parse error.
func Fail(err error) Step { return Step{Err: err} }

// Frame holds one symbol occurrence's evaluation state across suspension
// points. A fresh Frame is created by Symbol.NewFrame each time the
// engine pushes that symbol onto its stack.
type Frame interface {
	// Start begins evaluation, returning the first step.
	Start(ctx Context) Step

	// Resume continues evaluation after a previously requested child
	// symbol succeeded, producing child.
	Resume(ctx Context, child *tree.Node) Step

	// Throw continues evaluation after a previously requested child
	// symbol failed with err.
	Throw(ctx Context, err error) Step
}

// Symbol is a grammar element: a terminal or a composition of other
// symbols. Concrete symbol types live only in this package, so Symbol
// carries an unexported method to seal the interface.
type Symbol interface {
	tree.Symbol

	// NewFrame starts a fresh evaluation of this symbol occurrence.
	NewFrame() Frame

	// Children returns this symbol's immediate sub-symbols, for grammar
	// traversal (terminal collection, Proxy resolution, pretty-printing).
	// Leaf symbols return nil.
	Children() []Symbol

	clone() Symbol
}

// base holds the state every symbol variant shares: its declared name (set
// by Named), the flatten/drop
// structural flags, and its transform function.
type base struct {
	name      string
	flatten   bool
	drop      *bool
	transform func(interface{}) interface{}
}

func (b *base) Name() string {
	return b.name
}

func (b *base) Flattened() bool {
	return b.flatten
}

func (b *base) Dropped() bool {
	return b.drop != nil && *b.drop
}

func (b *base) ApplyTransform(pre interface{}) interface{} {
	if b.transform == nil {
		return pre
	}
	return b.transform(pre)
}

func (b base) copy() base {
	return base{name: b.name, flatten: b.flatten, drop: b.drop, transform: b.transform}
}

// emptySentinel is the node produced wherever the source language yields
// an "empty match" with no real symbol of its own: a failed Optional, a
// successful Lookahead. Its nil Symbol makes tree.Node.Append discard it
// unconditionally.
func emptySentinel(offset int) *tree.Node {
	return tree.New(nil, offset)
}

func isEmpty(n *tree.Node) bool {
	return n.Token == nil && len(n.Children) == 0
}

// boolPtr is a convenience for building the tri-state drop flag.
func boolPtr(b bool) *bool { return &b }

// basePtr is implemented by every concrete symbol type, giving the
// annotation helpers below access to the shared base fields without a
// type switch over every variant.
type basePtr interface {
	b() *base
}

func setFlatten(s Symbol, v bool) {
	if bp, ok := s.(basePtr); ok {
		bp.b().flatten = v
	}
}

func setDrop(s Symbol, v bool) {
	if bp, ok := s.(basePtr); ok {
		bp.b().drop = boolPtr(v)
	}
}

func setName(s Symbol, name string) {
	if bp, ok := s.(basePtr); ok {
		bp.b().name = name
	}
}

func setTransform(s Symbol, fn func(interface{}) interface{}) {
	if bp, ok := s.(basePtr); ok {
		bp.b().transform = fn
	}
}

// Flatten returns a copy of s with its flatten flag set. Flags are
// per-occurrence: annotating one use of a rule never affects other uses.
func Flatten(s Symbol) Symbol {
	c := s.clone()
	setFlatten(c, true)
	return c
}

// Drop returns a copy of s with its drop flag set to true.
func Drop(s Symbol) Symbol {
	c := s.clone()
	setDrop(c, true)
	return c
}

// Keep returns a copy of s with its drop flag set to false, overriding a
// grammar's default drop-terminals policy for this occurrence.
func Keep(s Symbol) Symbol {
	c := s.clone()
	setDrop(c, false)
	return c
}

// WithTransform returns a copy of s whose node value, once the parse
// tree reaches this symbol during Node.Transform, is passed through fn
// rather than used as-is.
func WithTransform(s Symbol, fn func(interface{}) interface{}) Symbol {
	c := s.clone()
	setTransform(c, fn)
	return c
}

// Named binds name to s. If s is already named, Named instead returns an
// Alias: a transparent renaming that leaves s's own name intact.
func Named(s Symbol, name string) Symbol {
	if s.Name() != "" {
		return NewAlias(s, name)
	}
	setName(s, name)
	return s
}
