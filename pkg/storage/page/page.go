package page

import (
	"heapdb/pkg/concurrency/transaction"
	"heapdb/pkg/tuple"
)

// Page is one fixed-size unit of disk I/O and caching, as seen by the
// buffer pool.
type Page interface {
	// GetID returns the page's identity within its table.
	GetID() tuple.PageID

	// GetPageData serializes the page into exactly PageSize() bytes.
	GetPageData() []byte

	// IsDirty returns the id of the transaction that last dirtied the
	// page, or nil if the page is clean.
	IsDirty() *transaction.TransactionID

	// MarkDirty sets or clears the dirty state. Clearing also drops the
	// dirtying transaction id.
	MarkDirty(dirty bool, tid *transaction.TransactionID)

	// GetBeforeImage reconstructs a page from the last stable snapshot.
	GetBeforeImage() (Page, error)

	// SetBeforeImage overwrites the snapshot with the current serialized
	// form.
	SetBeforeImage()
}
