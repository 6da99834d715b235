package types

import (
	"io"

	"heapdb/pkg/primitives"
)

// Field is a single typed value inside a tuple.
type Field interface {
	// Serialize writes the field in its on-disk form. An IntField writes
	// Type().Size() bytes; a StringField writes 4+MaxSize bytes, which
	// equals Type().Size() only when MaxSize is StringMaxSize.
	Serialize(w io.Writer) error

	// Compare evaluates `this op other`. Comparing against a field of a
	// different type yields false for every operation.
	Compare(op primitives.Predicate, other Field) (bool, error)

	Type() Type

	Equals(other Field) bool

	Hash() primitives.HashCode

	String() string
}
