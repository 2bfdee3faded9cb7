package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sablewing/rdp/token"
)

// stubSymbol is a minimal Symbol for exercising Node in isolation, without
// depending on the sym package.
type stubSymbol struct {
	name      string
	dropped   bool
	flattened bool
	transform func(interface{}) interface{}
}

func (s *stubSymbol) Name() string      { return s.name }
func (s *stubSymbol) Dropped() bool     { return s.dropped }
func (s *stubSymbol) Flattened() bool   { return s.flattened }
func (s *stubSymbol) PreValue(_ *token.Token, childValues []interface{}) interface{} {
	return childValues
}
func (s *stubSymbol) ApplyTransform(pre interface{}) interface{} {
	if s.transform == nil {
		return pre
	}
	return s.transform(pre)
}

func TestAppend_DiscardsNilSymbolChild(t *testing.T) {
	a := assert.New(t)
	parent := New(&stubSymbol{name: "p"}, 0)
	parent.Append(New(nil, 0))
	a.Empty(parent.Children)
}

func TestAppend_DiscardsDroppedChild(t *testing.T) {
	a := assert.New(t)
	parent := New(&stubSymbol{name: "p"}, 0)
	parent.Append(New(&stubSymbol{name: "c", dropped: true}, 0))
	a.Empty(parent.Children)
}

func TestAppend_SplicesFlattenedChildrenRecursively(t *testing.T) {
	a := assert.New(t)
	parent := New(&stubSymbol{name: "p"}, 0)

	grandchild1 := New(&stubSymbol{name: "g1"}, 0)
	grandchild2 := New(&stubSymbol{name: "g2"}, 1)
	flatChild := New(&stubSymbol{name: "f", flattened: true}, 0)
	flatChild.Append(grandchild1)
	flatChild.Append(grandchild2)

	parent.Append(flatChild)

	a.Len(parent.Children, 2)
	a.Equal("g1", parent.Children[0].Symbol.Name())
	a.Equal("g2", parent.Children[1].Symbol.Name())
	a.Same(parent, parent.Children[0].Parent)
}

func TestAppend_OwnFlattenFlagNeverAppliesToRoot(t *testing.T) {
	a := assert.New(t)
	// a node that is itself never appended anywhere (the parse root) keeps
	// its own children regardless of its Flattened() flag: flatten only
	// decides what happens when the node is later appended to a parent.
	root := New(&stubSymbol{name: "r", flattened: true}, 0)
	root.Append(New(&stubSymbol{name: "c"}, 0))
	a.Len(root.Children, 1)
}

func TestAppend_WidensMinOffset(t *testing.T) {
	a := assert.New(t)
	parent := New(&stubSymbol{name: "p"}, 5)
	parent.Append(New(&stubSymbol{name: "c"}, 2))
	a.Equal(2, parent.MinOffset)
}

func TestTransform_BottomUpOrderAndOwnTransform(t *testing.T) {
	a := assert.New(t)
	leafSym := &stubSymbol{name: "leaf", transform: func(v interface{}) interface{} {
		return len(v.([]interface{}))
	}}
	parentSym := &stubSymbol{name: "parent", transform: func(v interface{}) interface{} {
		sum := 0
		for _, c := range v.([]interface{}) {
			sum += c.(int)
		}
		return sum
	}}

	root := New(parentSym, 0)
	root.Append(New(leafSym, 0))
	root.Append(New(leafSym, 0))

	a.Equal(0, root.Transform())
}

func TestYield_ConcatenatesTerminalLexemesInOrder(t *testing.T) {
	a := assert.New(t)
	root := New(&stubSymbol{name: "r"}, 0)
	root.Append(NewTerminal(&stubSymbol{name: "a"}, token.Token{Lexeme: "foo"}, 0))
	root.Append(NewTerminal(&stubSymbol{name: "b"}, token.Token{Lexeme: "bar"}, 1))
	a.Equal("foobar", root.Yield())
}

func TestCopy_DeepCopiesAndReparents(t *testing.T) {
	a := assert.New(t)
	root := New(&stubSymbol{name: "r"}, 0)
	root.Append(New(&stubSymbol{name: "c"}, 0))

	cp := root.Copy()
	a.Nil(cp.Parent)
	a.Len(cp.Children, 1)
	a.Same(cp, cp.Children[0].Parent)
	a.NotSame(root.Children[0], cp.Children[0])
}

func TestEqual_ComparesShapeNotIdentity(t *testing.T) {
	a := assert.New(t)
	build := func() *Node {
		root := New(&stubSymbol{name: "r"}, 0)
		root.Append(New(&stubSymbol{name: "c"}, 0))
		return root
	}
	a.True(build().Equal(build()))
}
