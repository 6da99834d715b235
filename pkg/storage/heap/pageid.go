package heap

import (
	"fmt"

	"heapdb/pkg/primitives"
	"heapdb/pkg/tuple"
)

// HeapPageID identifies one page of a heap file: the owning table and the
// zero-based page number within the file.
type HeapPageID struct {
	tableID primitives.TableID
	pageNum int
}

func NewHeapPageID(tableID primitives.TableID, pageNum int) *HeapPageID {
	return &HeapPageID{
		tableID: tableID,
		pageNum: pageNum,
	}
}

func (hpid *HeapPageID) GetTableID() primitives.TableID {
	return hpid.tableID
}

func (hpid *HeapPageID) PageNo() int {
	return hpid.pageNum
}

// Equals checks structural equality with another page id.
func (hpid *HeapPageID) Equals(other tuple.PageID) bool {
	otherHeap, ok := other.(*HeapPageID)
	if !ok || otherHeap == nil {
		return false
	}
	return hpid.tableID == otherHeap.tableID && hpid.pageNum == otherHeap.pageNum
}

func (hpid *HeapPageID) String() string {
	return fmt.Sprintf("HeapPageID(table=%d, page=%d)", hpid.tableID, hpid.pageNum)
}
