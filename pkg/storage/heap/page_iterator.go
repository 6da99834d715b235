package heap

import (
	"heapdb/pkg/iterator"
	"heapdb/pkg/tuple"
)

// HeapPageIterator walks the populated tuples of a single page in slot
// order. It snapshots the tuple references at creation: mutations to other
// pages never invalidate it, and mutations to this page after creation are
// simply not observed. It is not restartable.
type HeapPageIterator struct {
	tuples []*tuple.Tuple
	index  int
}

func NewHeapPageIterator(hp *HeapPage) *HeapPageIterator {
	hp.mutex.RLock()
	defer hp.mutex.RUnlock()

	snapshot := make([]*tuple.Tuple, 0, hp.numSlots)
	for slot := 0; slot < hp.numSlots; slot++ {
		if hp.isSlotUsed(slot) && hp.tuples[slot] != nil {
			snapshot = append(snapshot, hp.tuples[slot])
		}
	}

	return &HeapPageIterator{
		tuples: snapshot,
	}
}

func (it *HeapPageIterator) HasNext() (bool, error) {
	return it.index < len(it.tuples), nil
}

func (it *HeapPageIterator) Next() (*tuple.Tuple, error) {
	if it.index >= len(it.tuples) {
		return nil, iterator.ErrNoMoreTuples
	}

	t := it.tuples[it.index]
	it.index++
	return t, nil
}

// Close drops the snapshot. The iterator cannot be reused afterwards.
func (it *HeapPageIterator) Close() {
	it.tuples = nil
	it.index = 0
}
