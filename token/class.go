package token

import "strings"

// Class identifies the kind of a Token: which terminal (or synthetic
// marker) produced it. Two classes are equal iff their IDs are equal.
type Class interface {
	// ID uniquely identifies the class within a grammar's terminal set.
	ID() string

	// Human is a human-readable name, used in error messages.
	Human() string

	// Equal reports whether o is a Class with the same ID.
	Equal(o interface{}) bool
}

type simpleClass string

func (c simpleClass) ID() string { return strings.ToLower(string(c)) }
func (c simpleClass) Human() string { return string(c) }
func (c simpleClass) Equal(o interface{}) bool {
	other, ok := o.(Class)
	if !ok {
		return false
	}
	return other.ID() == c.ID()
}

// EndOfText is the class of the sentinel token returned once a Stream is
// exhausted.
const EndOfText = simpleClass("$")

// NewClass builds a Class whose ID is the lower-cased id and whose Human
// name is exactly as given.
func NewClass(id, human string) Class {
	return classImpl{id: strings.ToLower(id), human: human}
}

type classImpl struct {
	id, human string
}

func (c classImpl) ID() string    { return c.id }
func (c classImpl) Human() string { return c.human }
func (c classImpl) Equal(o interface{}) bool {
	other, ok := o.(Class)
	if !ok {
		return false
	}
	return other.ID() == c.id
}
