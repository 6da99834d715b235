package join

import (
	"errors"
	"fmt"

	"heapdb/pkg/iterator"
	"heapdb/pkg/tuple"
)

// Join is a nested-loops join producing one row at a time. It caches the
// current left tuple and walks the right child for matches, rewinding the
// right child each time the left advances. Output rows are the left fields
// followed by the right fields, ordered lexicographically by (left
// position, right position).
type Join struct {
	base      *iterator.BaseIterator
	predicate *JoinPredicate
	left      iterator.DbIterator
	right     iterator.DbIterator

	currentLeft *tuple.Tuple
}

func NewJoin(predicate *JoinPredicate, left, right iterator.DbIterator) (*Join, error) {
	if predicate == nil {
		return nil, fmt.Errorf("join predicate cannot be nil")
	}
	if left == nil {
		return nil, fmt.Errorf("left child cannot be nil")
	}
	if right == nil {
		return nil, fmt.Errorf("right child cannot be nil")
	}

	j := &Join{
		predicate: predicate,
		left:      left,
		right:     right,
	}
	j.base = iterator.NewBaseIterator(j.readNext)
	return j, nil
}

func (j *Join) readNext() (*tuple.Tuple, error) {
	for {
		if j.currentLeft == nil {
			hasNext, err := j.left.HasNext()
			if err != nil {
				return nil, err
			}
			if !hasNext {
				return nil, nil
			}

			j.currentLeft, err = j.left.Next()
			if err != nil {
				return nil, err
			}
		}

		for {
			hasNext, err := j.right.HasNext()
			if err != nil {
				return nil, err
			}
			if !hasNext {
				break
			}

			rightTuple, err := j.right.Next()
			if err != nil {
				return nil, err
			}

			matches, err := j.predicate.Filter(j.currentLeft, rightTuple)
			if err != nil {
				return nil, err
			}

			if matches {
				return tuple.CombineTuples(j.currentLeft, rightTuple)
			}
		}

		// Right side exhausted for this left tuple: advance left, replay
		// right from the start.
		j.currentLeft = nil
		if err := j.right.Rewind(); err != nil {
			return nil, err
		}
	}
}

// Open opens the left child, then the right child, then marks this
// operator ready.
func (j *Join) Open() error {
	if err := j.left.Open(); err != nil {
		return err
	}

	if err := j.right.Open(); err != nil {
		return err
	}

	j.base.MarkOpened()
	return nil
}

// Close marks this operator closed, then releases both children in
// reverse open order.
func (j *Join) Close() error {
	var errs []error

	if err := j.base.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := j.right.Close(); err != nil {
		errs = append(errs, fmt.Errorf("right child close: %w", err))
	}
	if err := j.left.Close(); err != nil {
		errs = append(errs, fmt.Errorf("left child close: %w", err))
	}

	return errors.Join(errs...)
}

func (j *Join) Rewind() error {
	if err := j.left.Rewind(); err != nil {
		return err
	}
	if err := j.right.Rewind(); err != nil {
		return err
	}

	j.currentLeft = nil
	j.base.ClearCache()
	return nil
}

func (j *Join) HasNext() (bool, error) {
	return j.base.HasNext()
}

func (j *Join) Next() (*tuple.Tuple, error) {
	return j.base.Next()
}

// GetTupleDesc returns the concatenation of the children's schemas: left
// fields first, then right fields.
func (j *Join) GetTupleDesc() *tuple.TupleDescription {
	return tuple.Combine(j.left.GetTupleDesc(), j.right.GetTupleDesc())
}

func (j *Join) GetChildren() []iterator.DbIterator {
	return []iterator.DbIterator{j.left, j.right}
}

func (j *Join) SetChildren(children []iterator.DbIterator) error {
	if len(children) != 2 {
		return fmt.Errorf("join expects exactly 2 children, got %d", len(children))
	}
	j.left = children[0]
	j.right = children[1]
	return nil
}

func (j *Join) Predicate() *JoinPredicate {
	return j.predicate
}
