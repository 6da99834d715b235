package iterator

import (
	"errors"

	"heapdb/pkg/tuple"
)

var (
	// ErrNotOpened is returned when HasNext or Next is called before Open
	// or after Close.
	ErrNotOpened = errors.New("iterator not opened")

	// ErrNoMoreTuples is returned by Next once the sequence is exhausted.
	ErrNoMoreTuples = errors.New("no more tuples")
)

// ReadNextFunc produces the next tuple from the underlying source, or nil
// once the source is exhausted.
type ReadNextFunc func() (*tuple.Tuple, error)

// BaseIterator implements the lookahead caching and open/close state shared
// by every operator. An operator embeds one and supplies its fetch-next
// logic as a ReadNextFunc.
type BaseIterator struct {
	nextTuple    *tuple.Tuple
	opened       bool
	readNextFunc ReadNextFunc
}

func NewBaseIterator(readNextFunc ReadNextFunc) *BaseIterator {
	return &BaseIterator{
		readNextFunc: readNextFunc,
	}
}

// HasNext checks whether a next tuple is available, caching one tuple of
// lookahead. Idempotent between calls to Next.
func (it *BaseIterator) HasNext() (bool, error) {
	if !it.opened {
		return false, ErrNotOpened
	}

	if it.nextTuple == nil {
		var err error
		it.nextTuple, err = it.readNextFunc()
		if err != nil {
			return false, err
		}
	}
	return it.nextTuple != nil, nil
}

// Next returns the next tuple, consuming the cached lookahead if present.
func (it *BaseIterator) Next() (*tuple.Tuple, error) {
	if !it.opened {
		return nil, ErrNotOpened
	}

	if it.nextTuple == nil {
		var err error
		it.nextTuple, err = it.readNextFunc()
		if err != nil {
			return nil, err
		}
		if it.nextTuple == nil {
			return nil, ErrNoMoreTuples
		}
	}

	result := it.nextTuple
	it.nextTuple = nil
	return result, nil
}

// MarkOpened marks the iterator ready for iteration. Operators call this
// after their children are open.
func (it *BaseIterator) MarkOpened() {
	it.opened = true
	it.nextTuple = nil
}

// ClearCache drops the cached lookahead tuple. Operators call this from
// Rewind after resetting their children.
func (it *BaseIterator) ClearCache() {
	it.nextTuple = nil
}

// Close drops the cache and marks the iterator closed. Safe to call more
// than once.
func (it *BaseIterator) Close() error {
	it.nextTuple = nil
	it.opened = false
	return nil
}
