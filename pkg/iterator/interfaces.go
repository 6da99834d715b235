package iterator

import "heapdb/pkg/tuple"

// TupleIterator captures the iteration methods shared by DbIterator and
// DbFileIterator, so helpers can work with either.
type TupleIterator interface {
	// HasNext checks if there are more tuples available without consuming
	// them. Idempotent between calls to Next.
	HasNext() (bool, error)

	// Next retrieves and returns the next tuple, advancing the position.
	Next() (*tuple.Tuple, error)
}

// DbIterator is the contract for all operators in the execution engine:
// pull-based producers of tuples composed into a tree.
//
// Lifecycle: Open must be called before iteration; Next or HasNext on a
// closed iterator fails with ErrNotOpened. Close releases child resources
// and is safe to call on a partially-opened tree. Rewind restarts the
// sequence from the beginning.
type DbIterator interface {
	TupleIterator

	Open() error

	Rewind() error

	Close() error

	// GetTupleDesc returns the schema of the tuples this iterator
	// produces. Callable regardless of iterator state.
	GetTupleDesc() *tuple.TupleDescription
}

// Operator extends DbIterator with the tree-shape contract: every operator
// has a fixed arity (scan 0, filter 1, aggregate 1, join 2) and exposes
// its children for plan inspection and rewriting.
type Operator interface {
	DbIterator

	GetChildren() []DbIterator

	// SetChildren replaces the operator's children. Passing a slice of the
	// wrong length fails.
	SetChildren(children []DbIterator) error
}

// DbFileIterator is the lower-level iteration contract used by storage
// files. It has the same lifecycle as DbIterator but carries no schema;
// that is managed a level up.
type DbFileIterator interface {
	TupleIterator

	Open() error

	Rewind() error

	Close() error
}
