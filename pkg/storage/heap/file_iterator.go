package heap

import (
	"heapdb/pkg/concurrency/transaction"
	"heapdb/pkg/iterator"
	"heapdb/pkg/storage/page"
	"heapdb/pkg/tuple"
)

// HeapFileIterator scans all tuples of a heap file in page order. It is a
// small state machine: Closed until Open, then walking (page number, page
// iterator) pairs until the last page is exhausted.
//
// The page count is captured at Open, so growth of the file during a scan
// is not observed until the next Rewind.
type HeapFileIterator struct {
	file *HeapFile
	tid  *transaction.TransactionID
	pool page.BufferPool

	numPages    int
	currentPage int
	pageIter    *HeapPageIterator
	opened      bool
}

func NewHeapFileIterator(file *HeapFile, tid *transaction.TransactionID, pool page.BufferPool) *HeapFileIterator {
	return &HeapFileIterator{
		file: file,
		tid:  tid,
		pool: pool,
	}
}

// Open captures the current page count and positions the iterator before
// the first page.
func (it *HeapFileIterator) Open() error {
	numPages, err := it.file.NumPages()
	if err != nil {
		return err
	}

	it.numPages = numPages
	it.currentPage = -1
	it.pageIter = nil
	it.opened = true

	return it.advancePage()
}

// advancePage loads page iterators until one with a remaining tuple is
// found or the captured page range is exhausted.
func (it *HeapFileIterator) advancePage() error {
	for it.currentPage+1 < it.numPages {
		it.currentPage++

		pid := NewHeapPageID(it.file.GetID(), it.currentPage)
		pg, err := it.pool.GetPage(it.tid, pid, page.ReadOnly)
		if err != nil {
			return err
		}

		heapPage, ok := pg.(*HeapPage)
		if !ok {
			continue
		}

		pageIter := heapPage.Iterator()
		hasNext, err := pageIter.HasNext()
		if err != nil {
			return err
		}
		if hasNext {
			it.pageIter = pageIter
			return nil
		}
	}

	it.pageIter = nil
	return nil
}

func (it *HeapFileIterator) HasNext() (bool, error) {
	if !it.opened {
		return false, iterator.ErrNotOpened
	}

	if it.pageIter == nil {
		return false, nil
	}

	hasNext, err := it.pageIter.HasNext()
	if err != nil {
		return false, err
	}
	if hasNext {
		return true, nil
	}

	if err := it.advancePage(); err != nil {
		return false, err
	}
	return it.pageIter != nil, nil
}

func (it *HeapFileIterator) Next() (*tuple.Tuple, error) {
	hasNext, err := it.HasNext()
	if err != nil {
		return nil, err
	}
	if !hasNext {
		return nil, iterator.ErrNoMoreTuples
	}

	return it.pageIter.Next()
}

// Rewind restarts the scan from page zero, recapturing the page count.
func (it *HeapFileIterator) Rewind() error {
	if err := it.Close(); err != nil {
		return err
	}
	return it.Open()
}

// Close releases the page iterator reference and returns to the closed
// state. Safe to call more than once.
func (it *HeapFileIterator) Close() error {
	if it.pageIter != nil {
		it.pageIter.Close()
		it.pageIter = nil
	}
	it.opened = false
	return nil
}
