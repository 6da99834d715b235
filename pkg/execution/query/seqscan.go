package query

import (
	"fmt"

	"heapdb/pkg/concurrency/transaction"
	"heapdb/pkg/iterator"
	"heapdb/pkg/primitives"
	"heapdb/pkg/storage/page"
	"heapdb/pkg/tuple"
)

// TableProvider resolves table ids to files and schemas. It decouples the
// scan operator from the concrete catalog implementation.
type TableProvider interface {
	GetDbFile(tableID primitives.TableID) (page.DbFile, error)
	GetTupleDesc(tableID primitives.TableID) (*tuple.TupleDescription, error)
}

// SequentialScan reads every tuple of a table in storage order. It is the
// leaf of an operator tree; page access goes through the buffer pool with
// read-only permission.
type SequentialScan struct {
	base     *iterator.BaseIterator
	tid      *transaction.TransactionID
	tableID  primitives.TableID
	provider TableProvider
	pool     page.BufferPool

	tupleDesc *tuple.TupleDescription
	fileIter  iterator.DbFileIterator
}

func NewSeqScan(tid *transaction.TransactionID, tableID primitives.TableID, provider TableProvider, pool page.BufferPool) (*SequentialScan, error) {
	if provider == nil {
		return nil, fmt.Errorf("table provider cannot be nil")
	}
	if pool == nil {
		return nil, fmt.Errorf("buffer pool cannot be nil")
	}

	td, err := provider.GetTupleDesc(tableID)
	if err != nil {
		return nil, fmt.Errorf("failed to get schema for table %d: %w", tableID, err)
	}

	ss := &SequentialScan{
		tid:       tid,
		tableID:   tableID,
		provider:  provider,
		pool:      pool,
		tupleDesc: td,
	}
	ss.base = iterator.NewBaseIterator(ss.readNext)
	return ss, nil
}

func (ss *SequentialScan) readNext() (*tuple.Tuple, error) {
	if ss.fileIter == nil {
		return nil, nil
	}

	hasNext, err := ss.fileIter.HasNext()
	if err != nil {
		return nil, err
	}
	if !hasNext {
		return nil, nil
	}

	return ss.fileIter.Next()
}

// Open obtains the table's file iterator and opens it, then marks this
// operator ready.
func (ss *SequentialScan) Open() error {
	file, err := ss.provider.GetDbFile(ss.tableID)
	if err != nil {
		return fmt.Errorf("failed to get db file for table %d: %w", ss.tableID, err)
	}

	ss.fileIter = file.Iterator(ss.tid, ss.pool)
	if err := ss.fileIter.Open(); err != nil {
		return err
	}

	ss.base.MarkOpened()
	return nil
}

func (ss *SequentialScan) Close() error {
	if err := ss.base.Close(); err != nil {
		return err
	}

	if ss.fileIter != nil {
		if err := ss.fileIter.Close(); err != nil {
			return err
		}
		ss.fileIter = nil
	}
	return nil
}

func (ss *SequentialScan) Rewind() error {
	if ss.fileIter == nil {
		return iterator.ErrNotOpened
	}

	if err := ss.fileIter.Rewind(); err != nil {
		return err
	}

	ss.base.ClearCache()
	return nil
}

func (ss *SequentialScan) HasNext() (bool, error) {
	return ss.base.HasNext()
}

func (ss *SequentialScan) Next() (*tuple.Tuple, error) {
	return ss.base.Next()
}

func (ss *SequentialScan) GetTupleDesc() *tuple.TupleDescription {
	return ss.tupleDesc
}

// GetChildren returns an empty slice; a scan is a leaf operator.
func (ss *SequentialScan) GetChildren() []iterator.DbIterator {
	return nil
}

func (ss *SequentialScan) SetChildren(children []iterator.DbIterator) error {
	if len(children) != 0 {
		return fmt.Errorf("sequential scan expects no children, got %d", len(children))
	}
	return nil
}
