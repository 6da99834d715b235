package memory

import (
	"fmt"
	"sync"

	"github.com/phuslu/log"

	"heapdb/pkg/concurrency/transaction"
	"heapdb/pkg/logging"
	"heapdb/pkg/primitives"
	"heapdb/pkg/storage/page"
	"heapdb/pkg/tuple"
)

// DefaultPageCount is the default capacity of the page store in pages.
const DefaultPageCount = 50

// PageStore is the buffer pool: a bounded in-memory page table through
// which all page access flows. It reads pages through the owning DbFile on
// a miss and hands back the cached instance on a hit, so repeated requests
// within a transaction observe the same page.
//
// Eviction is no-steal: dirty pages are never evicted. When the pool is
// full and every page is dirty, the requesting transaction is aborted.
type PageStore struct {
	mutex        sync.Mutex
	cache        *lruPageCache
	capacity     int
	tableManager *TableManager
	logger       *log.Logger
}

func NewPageStore(tm *TableManager, capacity int) *PageStore {
	if capacity <= 0 {
		capacity = DefaultPageCount
	}

	return &PageStore{
		cache:        newLRUPageCache(),
		capacity:     capacity,
		tableManager: tm,
		logger:       logging.CreateDebugLogger(),
	}
}

// GetPage retrieves a page on behalf of a transaction. Idempotent within a
// transaction: as long as the page stays cached, the same instance is
// returned on every call.
func (p *PageStore) GetPage(tid *transaction.TransactionID, pid tuple.PageID, perm page.Permissions) (page.Page, error) {
	if pid == nil {
		return nil, fmt.Errorf("page id cannot be nil")
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()

	key := keyFor(pid)
	if pg, exists := p.cache.Get(key); exists {
		return pg, nil
	}

	if p.cache.Size() >= p.capacity {
		if err := p.evictPage(tid); err != nil {
			return nil, err
		}
	}

	dbFile, err := p.tableManager.GetDbFile(pid.GetTableID())
	if err != nil {
		return nil, err
	}

	pg, err := dbFile.ReadPage(pid)
	if err != nil {
		return nil, fmt.Errorf("failed to read page %s: %w", pid, err)
	}

	p.cache.Put(key, pg)
	return pg, nil
}

// evictPage drops the least recently used clean page. Must be called with
// the store lock held.
func (p *PageStore) evictPage(tid *transaction.TransactionID) error {
	key, _, found := p.cache.Victim(func(pg page.Page) bool {
		return pg.IsDirty() == nil
	})

	if !found {
		return &TransactionAbortedError{
			TID:    tid,
			Reason: "buffer pool full and every page is dirty",
		}
	}

	p.cache.Remove(key)
	p.logger.Debug().Uint64("table", uint64(key.tableID)).Int("page", key.pageNo).Msg("evicted page")
	return nil
}

// InsertTuple adds t to the named table, delegating page selection to the
// table's DbFile. Mutated pages come back dirty and cached.
func (p *PageStore) InsertTuple(tid *transaction.TransactionID, tableID primitives.TableID, t *tuple.Tuple) error {
	dbFile, err := p.tableManager.GetDbFile(tableID)
	if err != nil {
		return err
	}

	_, err = dbFile.AddTuple(tid, t, p)
	return err
}

// DeleteTuple removes t from the table that owns it, located through the
// tuple's record id.
func (p *PageStore) DeleteTuple(tid *transaction.TransactionID, t *tuple.Tuple) error {
	if t == nil || t.RecordID == nil {
		return fmt.Errorf("tuple must have a valid record id")
	}

	dbFile, err := p.tableManager.GetDbFile(t.RecordID.PageID.GetTableID())
	if err != nil {
		return err
	}

	_, err = dbFile.RemoveTuple(tid, t, p)
	return err
}

// FlushPage writes the named page to disk if dirty and marks it clean.
func (p *PageStore) FlushPage(pid tuple.PageID) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	pg, exists := p.cache.Get(keyFor(pid))
	if !exists {
		return nil
	}

	return p.flushLocked(pg)
}

// FlushAllPages writes every dirty cached page to disk. Intended for
// checkpoints and tests, not the normal path.
func (p *PageStore) FlushAllPages() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	for _, pg := range p.cache.Pages() {
		if err := p.flushLocked(pg); err != nil {
			return err
		}
	}
	return nil
}

func (p *PageStore) flushLocked(pg page.Page) error {
	if pg.IsDirty() == nil {
		return nil
	}

	dbFile, err := p.tableManager.GetDbFile(pg.GetID().GetTableID())
	if err != nil {
		return err
	}

	if err := dbFile.WritePage(pg); err != nil {
		return err
	}

	pg.MarkDirty(false, nil)
	pg.SetBeforeImage()
	p.logger.Debug().Str("page", pg.GetID().String()).Msg("flushed page")
	return nil
}

// DiscardPage drops a page from the cache without writing it, losing any
// in-memory changes. Used by recovery collaborators to roll back.
func (p *PageStore) DiscardPage(pid tuple.PageID) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.cache.Remove(keyFor(pid))
}

// CachedPageCount reports how many pages are currently resident.
func (p *PageStore) CachedPageCount() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return p.cache.Size()
}
