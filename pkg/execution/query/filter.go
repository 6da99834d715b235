package query

import (
	"fmt"

	"heapdb/pkg/iterator"
	"heapdb/pkg/tuple"
)

// Filter passes through the child's tuples that satisfy its predicate,
// preserving the child's order.
type Filter struct {
	base      *iterator.BaseIterator
	predicate *Predicate
	child     iterator.DbIterator
}

func NewFilter(predicate *Predicate, child iterator.DbIterator) (*Filter, error) {
	if predicate == nil {
		return nil, fmt.Errorf("predicate cannot be nil")
	}
	if child == nil {
		return nil, fmt.Errorf("child operator cannot be nil")
	}

	f := &Filter{
		predicate: predicate,
		child:     child,
	}
	f.base = iterator.NewBaseIterator(f.readNext)
	return f, nil
}

func (f *Filter) readNext() (*tuple.Tuple, error) {
	for {
		hasNext, err := f.child.HasNext()
		if err != nil {
			return nil, err
		}
		if !hasNext {
			return nil, nil
		}

		t, err := f.child.Next()
		if err != nil {
			return nil, err
		}

		passes, err := f.predicate.Filter(t)
		if err != nil {
			return nil, fmt.Errorf("predicate evaluation failed: %w", err)
		}

		if passes {
			return t, nil
		}
	}
}

// Open opens the child first, then marks this operator ready.
func (f *Filter) Open() error {
	if err := f.child.Open(); err != nil {
		return err
	}

	f.base.MarkOpened()
	return nil
}

// Close marks this operator closed, then releases the child.
func (f *Filter) Close() error {
	if err := f.base.Close(); err != nil {
		return err
	}
	return f.child.Close()
}

func (f *Filter) Rewind() error {
	if err := f.child.Rewind(); err != nil {
		return err
	}

	f.base.ClearCache()
	return nil
}

func (f *Filter) HasNext() (bool, error) {
	return f.base.HasNext()
}

func (f *Filter) Next() (*tuple.Tuple, error) {
	return f.base.Next()
}

// GetTupleDesc returns the child's schema; filtering does not reshape
// tuples.
func (f *Filter) GetTupleDesc() *tuple.TupleDescription {
	return f.child.GetTupleDesc()
}

func (f *Filter) GetChildren() []iterator.DbIterator {
	return []iterator.DbIterator{f.child}
}

func (f *Filter) SetChildren(children []iterator.DbIterator) error {
	if len(children) != 1 {
		return fmt.Errorf("filter expects exactly 1 child, got %d", len(children))
	}
	f.child = children[0]
	return nil
}
