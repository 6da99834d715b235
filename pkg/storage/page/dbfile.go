package page

import (
	"heapdb/pkg/concurrency/transaction"
	"heapdb/pkg/iterator"
	"heapdb/pkg/primitives"
	"heapdb/pkg/tuple"
)

// Permissions is the access level a transaction requests on a page.
type Permissions int

const (
	ReadOnly Permissions = iota
	ReadWrite
)

func (p Permissions) String() string {
	if p == ReadWrite {
		return "READ_WRITE"
	}
	return "READ_ONLY"
}

// BufferPool is the page-access collaborator. All page reads and mutations
// flow through it; it owns caching and page lifetime. GetPage is
// idempotent within a transaction and may fail with a transaction-aborted
// error.
type BufferPool interface {
	GetPage(tid *transaction.TransactionID, pid tuple.PageID, perm Permissions) (Page, error)
}

// DbFile is a table's on-disk representation: an addressable collection of
// pages plus the tuple-level write path. ReadPage and WritePage perform
// physical I/O and are normally invoked by the buffer pool; AddTuple,
// RemoveTuple and Iterator route their page access through the pool.
type DbFile interface {
	ReadPage(pid tuple.PageID) (Page, error)

	WritePage(p Page) error

	// AddTuple inserts t into the first page with room, allocating a new
	// page if the file is full. Returns the pages mutated (always exactly
	// one), marked dirty with tid.
	AddTuple(tid *transaction.TransactionID, t *tuple.Tuple, pool BufferPool) ([]Page, error)

	// RemoveTuple deletes t from its page, located via t.RecordID.
	RemoveTuple(tid *transaction.TransactionID, t *tuple.Tuple, pool BufferPool) (Page, error)

	// Iterator scans every tuple in the file in page order, fetching pages
	// through the pool with read-only permission.
	Iterator(tid *transaction.TransactionID, pool BufferPool) iterator.DbFileIterator

	GetID() primitives.TableID

	GetTupleDesc() *tuple.TupleDescription

	NumPages() (int, error)
}
