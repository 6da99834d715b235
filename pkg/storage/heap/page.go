package heap

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"heapdb/pkg/concurrency/transaction"
	"heapdb/pkg/storage/page"
	"heapdb/pkg/tuple"
	"heapdb/pkg/types"
)

// HeapPage holds the decoded form of one heap file page and implements the
// page.Page interface.
//
// On-disk layout:
//
//	[header bitmap: ceil(N/8) bytes][N slots of tupleSize bytes][zero padding]
//
// where N = floor(pageSize*8 / (tupleSize*8 + 1)). Bit k of header byte
// k/8, counting from the least significant bit, is 1 iff slot k holds a
// tuple. Populated slots carry the serialized fields in schema order;
// empty slots are zero bytes.
type HeapPage struct {
	pid       *HeapPageID
	tupleDesc *tuple.TupleDescription
	header    []byte
	tuples    []*tuple.Tuple
	numSlots  int

	dirtier *transaction.TransactionID
	mutex   sync.RWMutex

	// oldData is the byte snapshot of the last stable state. Only the
	// reference swap is guarded; the buffer itself is never mutated once
	// published.
	oldData   []byte
	oldDataMu sync.Mutex
}

// NewHeapPage decodes a page from its raw image. The data must be exactly
// PageSize() bytes, typically obtained from HeapFile.ReadPage or
// CreateEmptyPageData.
func NewHeapPage(pid *HeapPageID, data []byte, td *tuple.TupleDescription) (*HeapPage, error) {
	if pid == nil {
		return nil, fmt.Errorf("page id cannot be nil")
	}
	if td == nil {
		return nil, fmt.Errorf("tuple description cannot be nil")
	}
	if len(data) != page.PageSize() {
		return nil, fmt.Errorf("invalid page data size: expected %d, got %d", page.PageSize(), len(data))
	}

	hp := &HeapPage{
		pid:       pid,
		tupleDesc: td,
		numSlots:  slotsPerPage(td),
	}

	hp.header = make([]byte, headerSize(hp.numSlots))
	hp.tuples = make([]*tuple.Tuple, hp.numSlots)

	if err := hp.parsePageData(data); err != nil {
		return nil, err
	}

	hp.SetBeforeImage()
	return hp, nil
}

// CreateEmptyPageData returns the byte image of a page with no tuples.
func CreateEmptyPageData() []byte {
	return make([]byte, page.PageSize())
}

// slotsPerPage computes how many tuple slots fit on a page: each slot
// costs tupleSize*8 bits of data plus one header bit.
func slotsPerPage(td *tuple.TupleDescription) int {
	tupleBits := int(td.GetSize())*8 + 1
	return page.PageSize() * 8 / tupleBits
}

func headerSize(numSlots int) int {
	return (numSlots + 7) / 8
}

func (hp *HeapPage) parsePageData(data []byte) error {
	copy(hp.header, data[:len(hp.header)])

	tupleSize := int(hp.tupleDesc.GetSize())
	reader := bytes.NewReader(data[len(hp.header):])

	for slot := 0; slot < hp.numSlots; slot++ {
		if !hp.isSlotUsed(slot) {
			// The slot's byte region carries no meaningful data.
			if _, err := reader.Seek(int64(tupleSize), io.SeekCurrent); err != nil {
				return fmt.Errorf("failed to skip empty slot %d: %w", slot, err)
			}
			continue
		}

		t := tuple.NewTuple(hp.tupleDesc)
		for j := 0; j < hp.tupleDesc.NumFields(); j++ {
			fieldType, err := hp.tupleDesc.TypeAtIndex(j)
			if err != nil {
				return err
			}

			field, err := types.ParseField(reader, fieldType)
			if err != nil {
				return fmt.Errorf("failed to parse field %d of slot %d: %w", j, slot, err)
			}

			if err := t.SetField(j, field); err != nil {
				return err
			}
		}

		t.RecordID = tuple.NewRecordID(hp.pid, slot)
		hp.tuples[slot] = t
	}

	return nil
}

func (hp *HeapPage) GetID() tuple.PageID {
	return hp.pid
}

func (hp *HeapPage) GetTupleDesc() *tuple.TupleDescription {
	return hp.tupleDesc
}

// NumSlots returns the fixed slot capacity of this page.
func (hp *HeapPage) NumSlots() int {
	return hp.numSlots
}

// GetPageData serializes the page into exactly PageSize() bytes: the
// header bitmap, each slot's field bytes (or zeros when empty), and
// trailing zero padding.
func (hp *HeapPage) GetPageData() []byte {
	hp.mutex.RLock()
	defer hp.mutex.RUnlock()

	tupleSize := int(hp.tupleDesc.GetSize())
	buf := bytes.NewBuffer(make([]byte, 0, page.PageSize()))

	buf.Write(hp.header)

	emptySlot := make([]byte, tupleSize)
	for slot := 0; slot < hp.numSlots; slot++ {
		if !hp.isSlotUsed(slot) || hp.tuples[slot] == nil {
			buf.Write(emptySlot)
			continue
		}

		for j := 0; j < hp.tupleDesc.NumFields(); j++ {
			field, err := hp.tuples[slot].GetField(j)
			if err != nil || field == nil {
				continue
			}
			_ = field.Serialize(buf)
		}
	}

	padding := make([]byte, page.PageSize()-buf.Len())
	buf.Write(padding)

	return buf.Bytes()
}

// InsertTuple stores t in the lowest-indexed empty slot, sets the slot bit
// and assigns the tuple's record id. The caller is expected to follow a
// persisted mutation with MarkDirty.
func (hp *HeapPage) InsertTuple(t *tuple.Tuple) error {
	hp.mutex.Lock()
	defer hp.mutex.Unlock()

	if t == nil {
		return fmt.Errorf("tuple cannot be nil")
	}

	if !t.TupleDesc.Equals(hp.tupleDesc) {
		return ErrSchemaMismatch
	}

	for slot := 0; slot < hp.numSlots; slot++ {
		if hp.isSlotUsed(slot) {
			continue
		}

		hp.tuples[slot] = t
		hp.setSlotUsed(slot, true)
		t.RecordID = tuple.NewRecordID(hp.pid, slot)
		return nil
	}

	return ErrPageFull
}

// DeleteTuple clears the slot referenced by t's record id and drops the
// stored tuple.
func (hp *HeapPage) DeleteTuple(t *tuple.Tuple) error {
	hp.mutex.Lock()
	defer hp.mutex.Unlock()

	if t == nil || t.RecordID == nil {
		return ErrNotOnPage
	}

	if !t.RecordID.PageID.Equals(hp.pid) {
		return ErrNotOnPage
	}

	slot := t.RecordID.TupleNum
	if slot < 0 || slot >= hp.numSlots {
		return ErrNotOnPage
	}

	if !hp.isSlotUsed(slot) {
		return ErrSlotEmpty
	}

	hp.setSlotUsed(slot, false)
	hp.tuples[slot] = nil
	t.RecordID = nil
	return nil
}

// MarkDirty records tid as the dirtying transaction, or clears the dirty
// state when dirty is false.
func (hp *HeapPage) MarkDirty(dirty bool, tid *transaction.TransactionID) {
	hp.mutex.Lock()
	defer hp.mutex.Unlock()

	if dirty {
		hp.dirtier = tid
	} else {
		hp.dirtier = nil
	}
}

// IsDirty returns the dirtying transaction id, or nil when the page is
// clean.
func (hp *HeapPage) IsDirty() *transaction.TransactionID {
	hp.mutex.RLock()
	defer hp.mutex.RUnlock()
	return hp.dirtier
}

// GetBeforeImage reconstructs a page from the stable snapshot. The
// snapshot reference is read inside the critical section; decoding happens
// outside it, which is safe because a published buffer is never mutated,
// only replaced.
func (hp *HeapPage) GetBeforeImage() (page.Page, error) {
	hp.oldDataMu.Lock()
	oldDataRef := hp.oldData
	hp.oldDataMu.Unlock()

	return NewHeapPage(hp.pid, oldDataRef, hp.tupleDesc)
}

// SetBeforeImage replaces the stable snapshot with the current serialized
// form.
func (hp *HeapPage) SetBeforeImage() {
	data := hp.GetPageData()

	hp.oldDataMu.Lock()
	hp.oldData = data
	hp.oldDataMu.Unlock()
}

// GetNumEmptySlots counts the slots whose header bit is clear.
func (hp *HeapPage) GetNumEmptySlots() int {
	hp.mutex.RLock()
	defer hp.mutex.RUnlock()

	empty := 0
	for slot := 0; slot < hp.numSlots; slot++ {
		if !hp.isSlotUsed(slot) {
			empty++
		}
	}
	return empty
}

// IsSlotUsed reports whether slot holds a tuple.
func (hp *HeapPage) IsSlotUsed(slot int) bool {
	hp.mutex.RLock()
	defer hp.mutex.RUnlock()
	return hp.isSlotUsed(slot)
}

func (hp *HeapPage) isSlotUsed(slot int) bool {
	if slot < 0 || slot >= hp.numSlots {
		return false
	}
	return hp.header[slot/8]&(1<<(slot%8)) != 0
}

func (hp *HeapPage) setSlotUsed(slot int, used bool) {
	if used {
		hp.header[slot/8] |= 1 << (slot % 8)
	} else {
		hp.header[slot/8] &^= 1 << (slot % 8)
	}
}

// Iterator returns an iterator over the populated tuples in slot order.
// The populated set is snapshotted at creation, so later mutation of this
// page is not reflected; obtain a fresh iterator to rescan.
func (hp *HeapPage) Iterator() *HeapPageIterator {
	return NewHeapPageIterator(hp)
}

func (hp *HeapPage) String() string {
	return fmt.Sprintf("HeapPage(%s, slots=%d, empty=%d)", hp.pid, hp.numSlots, hp.GetNumEmptySlots())
}
