package heap

import (
	"fmt"

	"github.com/phuslu/log"

	"heapdb/pkg/concurrency/transaction"
	"heapdb/pkg/iterator"
	"heapdb/pkg/logging"
	"heapdb/pkg/primitives"
	"heapdb/pkg/storage/page"
	"heapdb/pkg/tuple"
)

// HeapFile is an unordered collection of pages backing one table, stored
// in a single OS file. It implements the page.DbFile interface. Pages are
// tightly packed: page i lives at byte offset i*PageSize(), with no file
// header or trailer.
type HeapFile struct {
	*page.BaseFile
	tupleDesc *tuple.TupleDescription
	logger    *log.Logger
}

// NewHeapFile opens (creating if necessary) the heap file at the given
// path. The table id is the stable hash of the absolute path.
func NewHeapFile(filePath primitives.Filepath, td *tuple.TupleDescription) (*HeapFile, error) {
	if td == nil {
		return nil, fmt.Errorf("tuple description cannot be nil")
	}

	baseFile, err := page.NewBaseFile(filePath)
	if err != nil {
		return nil, err
	}

	return &HeapFile{
		BaseFile:  baseFile,
		tupleDesc: td,
		logger:    logging.CreateDebugLogger(),
	}, nil
}

func (hf *HeapFile) GetTupleDesc() *tuple.TupleDescription {
	return hf.tupleDesc
}

// ReadPage reads the page image from disk and decodes it. This performs
// physical I/O and is normally invoked through the buffer pool. A short
// read or an out-of-range page number is an error.
func (hf *HeapFile) ReadPage(pid tuple.PageID) (page.Page, error) {
	heapPageID, err := hf.validatePageID(pid)
	if err != nil {
		return nil, err
	}

	pageData, err := hf.ReadPageData(heapPageID.PageNo())
	if err != nil {
		return nil, err
	}

	return NewHeapPage(heapPageID, pageData, hf.tupleDesc)
}

func (hf *HeapFile) validatePageID(pid tuple.PageID) (*HeapPageID, error) {
	if pid == nil {
		return nil, fmt.Errorf("page id cannot be nil")
	}

	heapPageID, ok := pid.(*HeapPageID)
	if !ok {
		return nil, fmt.Errorf("invalid page id type for heap file")
	}

	if heapPageID.GetTableID() != hf.GetID() {
		return nil, fmt.Errorf("page id table %d does not match file %d",
			heapPageID.GetTableID(), hf.GetID())
	}

	return heapPageID, nil
}

// WritePage serializes the page and writes it at its page number. Writing
// at index NumPages appends the page to the file.
func (hf *HeapFile) WritePage(p page.Page) error {
	if p == nil {
		return fmt.Errorf("page cannot be nil")
	}

	return hf.WritePageData(p.GetID().PageNo(), p.GetPageData())
}

// AddTuple inserts t into the first page with a free slot, walking pages
// through the buffer pool with read-write intent. When every page is full
// a fresh zeroed page is allocated at index NumPages and written through
// to disk before the insert; allocation is serialized by the file lock.
// The single mutated page is returned, marked dirty with tid.
func (hf *HeapFile) AddTuple(tid *transaction.TransactionID, t *tuple.Tuple, pool page.BufferPool) ([]page.Page, error) {
	if t == nil {
		return nil, fmt.Errorf("tuple cannot be nil")
	}
	if !t.TupleDesc.Equals(hf.tupleDesc) {
		return nil, ErrSchemaMismatch
	}

	numPages, err := hf.NumPages()
	if err != nil {
		return nil, err
	}

	for i := 0; i < numPages; i++ {
		pid := NewHeapPageID(hf.GetID(), i)
		pg, err := pool.GetPage(tid, pid, page.ReadWrite)
		if err != nil {
			return nil, err
		}

		heapPage, ok := pg.(*HeapPage)
		if !ok {
			return nil, fmt.Errorf("page %s is not a heap page", pid)
		}

		if heapPage.GetNumEmptySlots() == 0 {
			continue
		}

		if err := heapPage.InsertTuple(t); err != nil {
			return nil, err
		}
		heapPage.MarkDirty(true, tid)
		return []page.Page{heapPage}, nil
	}

	pageNo, err := hf.AllocateNewPage()
	if err != nil {
		return nil, err
	}
	hf.logger.Debug().Uint64("table", uint64(hf.GetID())).Int("page", pageNo).Msg("allocated heap page")

	pid := NewHeapPageID(hf.GetID(), pageNo)
	pg, err := pool.GetPage(tid, pid, page.ReadWrite)
	if err != nil {
		return nil, err
	}

	heapPage, ok := pg.(*HeapPage)
	if !ok {
		return nil, fmt.Errorf("page %s is not a heap page", pid)
	}

	if err := heapPage.InsertTuple(t); err != nil {
		return nil, err
	}
	heapPage.MarkDirty(true, tid)
	return []page.Page{heapPage}, nil
}

// RemoveTuple deletes t from the page referenced by its record id, fetched
// through the buffer pool with read-write intent.
func (hf *HeapFile) RemoveTuple(tid *transaction.TransactionID, t *tuple.Tuple, pool page.BufferPool) (page.Page, error) {
	if t == nil || t.RecordID == nil {
		return nil, ErrNotOnPage
	}

	if t.RecordID.PageID.GetTableID() != hf.GetID() {
		return nil, ErrNotOnPage
	}

	pg, err := pool.GetPage(tid, t.RecordID.PageID, page.ReadWrite)
	if err != nil {
		return nil, err
	}

	heapPage, ok := pg.(*HeapPage)
	if !ok {
		return nil, fmt.Errorf("page %s is not a heap page", t.RecordID.PageID)
	}

	if err := heapPage.DeleteTuple(t); err != nil {
		return nil, err
	}

	heapPage.MarkDirty(true, tid)
	return heapPage, nil
}

// Iterator returns a sequential scan over every tuple in the file, in page
// order. Pages are fetched through the pool with read-only permission.
func (hf *HeapFile) Iterator(tid *transaction.TransactionID, pool page.BufferPool) iterator.DbFileIterator {
	return NewHeapFileIterator(hf, tid, pool)
}
