package iterator

import (
	"fmt"

	"heapdb/pkg/tuple"
)

// TupleListIterator is a DbIterator over an in-memory slice of tuples. It
// backs materialized results such as aggregation output and is handy as a
// leaf in tests.
type TupleListIterator struct {
	base   *BaseIterator
	td     *tuple.TupleDescription
	tuples []*tuple.Tuple
	index  int
}

func NewTupleListIterator(td *tuple.TupleDescription, tuples []*tuple.Tuple) (*TupleListIterator, error) {
	if td == nil {
		return nil, fmt.Errorf("tuple description cannot be nil")
	}

	for _, t := range tuples {
		if !t.TupleDesc.Equals(td) {
			return nil, fmt.Errorf("tuple schema %s does not match iterator schema %s",
				t.TupleDesc.String(), td.String())
		}
	}

	it := &TupleListIterator{
		td:     td,
		tuples: tuples,
	}
	it.base = NewBaseIterator(it.readNext)
	return it, nil
}

func (it *TupleListIterator) readNext() (*tuple.Tuple, error) {
	if it.index >= len(it.tuples) {
		return nil, nil
	}

	t := it.tuples[it.index]
	it.index++
	return t, nil
}

func (it *TupleListIterator) Open() error {
	it.index = 0
	it.base.MarkOpened()
	return nil
}

func (it *TupleListIterator) HasNext() (bool, error) {
	return it.base.HasNext()
}

func (it *TupleListIterator) Next() (*tuple.Tuple, error) {
	return it.base.Next()
}

func (it *TupleListIterator) Rewind() error {
	it.index = 0
	it.base.ClearCache()
	return nil
}

func (it *TupleListIterator) Close() error {
	return it.base.Close()
}

func (it *TupleListIterator) GetTupleDesc() *tuple.TupleDescription {
	return it.td
}
