// Package tree implements the parse tree node: construction, the
// structural drop/flatten rewrite applied at insertion time, and the
// bottom-up transform pass that turns a finished tree into a user value.
package tree

import (
	"fmt"
	"strings"

	"github.com/sablewing/rdp/token"
)

const (
	levelEmpty            = "        "
	levelOngoing          = "  |     "
	levelPrefix           = "  |%s: "
	levelPrefixLast       = `  \%s: `
	levelPrefixPadChar    = '-'
	levelPrefixPadAmount  = 3
)

// Symbol is the subset of sym.Symbol that a Node needs to apply the
// structural rewrite and the transform pass. tree does not import sym;
// sym's concrete symbol types satisfy this interface structurally, which
// keeps the two packages from depending on each other.
type Symbol interface {
	// Name is the symbol's declared name, or "" if unnamed, for
	// diagnostics.
	Name() string

	// Dropped reports whether a node produced by this symbol should be
	// discarded when appended to a parent.
	Dropped() bool

	// Flattened reports whether a node produced by this symbol should
	// have its children spliced into its parent in place of itself.
	Flattened() bool

	// PreValue computes a symbol-kind-specific raw value from a node's
	// token (nil for non-terminals) and its already-transformed
	// children, before the symbol's own transform function is applied.
	PreValue(tok *token.Token, childValues []interface{}) interface{}

	// ApplyTransform runs the symbol's transform function (identity by
	// default) over a PreValue result.
	ApplyTransform(pre interface{}) interface{}
}

// Node is one parse tree node: the symbol that produced it, the token it
// covers (only set for terminal nodes), its children in match order, a
// parent back-reference set on append, and the minimum token offset
// covered by the subtree rooted here.
type Node struct {
	Symbol    Symbol
	Token     *token.Token
	Children  []*Node
	Parent    *Node
	MinOffset int
}

// New creates a node for symbol, starting at the given token offset. The
// node has no children and no parent until Append is called on it or by
// it.
func New(symbol Symbol, startOffset int) *Node {
	return &Node{Symbol: symbol, MinOffset: startOffset}
}

// NewTerminal creates a terminal node wrapping tok.
func NewTerminal(symbol Symbol, tok token.Token, startOffset int) *Node {
	n := New(symbol, startOffset)
	n.Token = &tok
	return n
}

// Append adds child to n's children list, applying the structural
// rewrite: a nil-symbol or dropped child is discarded; a flattened
// child has each of its own children appended in its place (recursively,
// so a chain of flattened children collapses in one pass); anything else
// is appended directly, with its parent pointer set to n and n's
// covered-offset widened to include it.
func (n *Node) Append(child *Node) {
	if child == nil {
		return
	}
	if child.Symbol == nil || child.Symbol.Dropped() {
		return
	}
	if child.Symbol.Flattened() {
		for _, grandchild := range child.Children {
			n.Append(grandchild)
		}
		return
	}

	child.Parent = n
	n.Children = append(n.Children, child)
	if child.MinOffset < n.MinOffset {
		n.MinOffset = child.MinOffset
	}
}

// Transform applies the bottom-up value synthesis pass described for the
// symbol algebra: each child is transformed first, then the node's
// symbol computes a pre-value from the (possibly nil) token and the
// child values, and finally the symbol's own transform function is
// applied to that pre-value.
func (n *Node) Transform() interface{} {
	childValues := make([]interface{}, len(n.Children))
	for i, c := range n.Children {
		childValues[i] = c.Transform()
	}
	pre := n.Symbol.PreValue(n.Token, childValues)
	return n.Symbol.ApplyTransform(pre)
}

// Yield concatenates the lexemes of every terminal leaf in the subtree,
// left to right. Dropped and flattened nodes never appear in the tree in
// the first place, so this walk alone reconstructs the matched text.
func (n *Node) Yield() string {
	var sb strings.Builder
	n.writeYield(&sb)
	return sb.String()
}

func (n *Node) writeYield(sb *strings.Builder) {
	if n.Token != nil {
		sb.WriteString(n.Token.Lexeme)
	}
	for _, c := range n.Children {
		c.writeYield(sb)
	}
}

// Copy returns a deep copy of the subtree rooted at n. The copy's
// Parent is nil; callers that splice it elsewhere are responsible for
// re-parenting it.
func (n *Node) Copy() *Node {
	cp := &Node{Symbol: n.Symbol, Token: n.Token, MinOffset: n.MinOffset}
	cp.Children = make([]*Node, len(n.Children))
	for i, c := range n.Children {
		childCopy := c.Copy()
		childCopy.Parent = cp
		cp.Children[i] = childCopy
	}
	return cp
}

// Equal reports whether n and o have the same shape: same symbol name,
// same token (if any), and recursively equal children in the same order.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Symbol.Name() != o.Symbol.Name() {
		return false
	}
	if (n.Token == nil) != (o.Token == nil) {
		return false
	}
	if n.Token != nil && (n.Token.Lexeme != o.Token.Lexeme || !n.Token.Class.Equal(o.Token.Class)) {
		return false
	}
	if len(n.Children) != len(o.Children) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Equal(o.Children[i]) {
			return false
		}
	}
	return true
}

// String returns a prettified, indented representation of the subtree
// suitable for line-by-line comparison in tests.
func (n *Node) String() string {
	return n.leveledString("", "")
}

func (n *Node) leveledString(firstPrefix, contPrefix string) string {
	var sb strings.Builder
	sb.WriteString(firstPrefix)
	if n.Token != nil {
		sb.WriteString(fmt.Sprintf("(%s %q)", n.Symbol.Name(), n.Token.Lexeme))
	} else {
		sb.WriteString(fmt.Sprintf("( %s )", n.Symbol.Name()))
	}

	for i, c := range n.Children {
		sb.WriteRune('\n')
		var cFirst, cCont string
		if i+1 < len(n.Children) {
			cFirst = contPrefix + levelPrefixFor(false, "")
			cCont = contPrefix + levelOngoing
		} else {
			cFirst = contPrefix + levelPrefixFor(true, "")
			cCont = contPrefix + levelEmpty
		}
		sb.WriteString(c.leveledString(cFirst, cCont))
	}
	return sb.String()
}

func levelPrefixFor(last bool, msg string) string {
	for len([]rune(msg)) < levelPrefixPadAmount {
		msg = string(levelPrefixPadChar) + msg
	}
	if last {
		return fmt.Sprintf(levelPrefixLast, msg)
	}
	return fmt.Sprintf(levelPrefix, msg)
}
