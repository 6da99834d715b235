package memory

import (
	"container/list"

	"heapdb/pkg/primitives"
	"heapdb/pkg/storage/page"
	"heapdb/pkg/tuple"
)

// pageKey is the value identity of a page, usable as a map key.
type pageKey struct {
	tableID primitives.TableID
	pageNo  int
}

func keyFor(pid tuple.PageID) pageKey {
	return pageKey{
		tableID: pid.GetTableID(),
		pageNo:  pid.PageNo(),
	}
}

type cacheEntry struct {
	key  pageKey
	page page.Page
}

// lruPageCache is a strict LRU page table. It deliberately does not evict
// on its own; the PageStore picks victims so the no-steal policy (never
// evict a dirty page) stays in one place. Not safe for concurrent use;
// the PageStore serializes access.
type lruPageCache struct {
	items map[pageKey]*list.Element
	order *list.List
}

func newLRUPageCache() *lruPageCache {
	return &lruPageCache{
		items: make(map[pageKey]*list.Element),
		order: list.New(),
	}
}

// Get returns the cached page and refreshes its recency.
func (c *lruPageCache) Get(key pageKey) (page.Page, bool) {
	elem, exists := c.items[key]
	if !exists {
		return nil, false
	}

	c.order.MoveToFront(elem)
	return elem.Value.(*cacheEntry).page, true
}

// Put inserts or replaces a page at the front of the recency order.
func (c *lruPageCache) Put(key pageKey, p page.Page) {
	if elem, exists := c.items[key]; exists {
		elem.Value.(*cacheEntry).page = p
		c.order.MoveToFront(elem)
		return
	}

	c.items[key] = c.order.PushFront(&cacheEntry{key: key, page: p})
}

func (c *lruPageCache) Remove(key pageKey) {
	if elem, exists := c.items[key]; exists {
		c.order.Remove(elem)
		delete(c.items, key)
	}
}

func (c *lruPageCache) Size() int {
	return len(c.items)
}

// Victim returns the least recently used page accepted by the filter.
func (c *lruPageCache) Victim(accept func(page.Page) bool) (pageKey, page.Page, bool) {
	for elem := c.order.Back(); elem != nil; elem = elem.Prev() {
		entry := elem.Value.(*cacheEntry)
		if accept(entry.page) {
			return entry.key, entry.page, true
		}
	}
	return pageKey{}, nil, false
}

// Pages returns the cached pages in no particular order.
func (c *lruPageCache) Pages() []page.Page {
	pages := make([]page.Page, 0, len(c.items))
	for _, elem := range c.items {
		pages = append(pages, elem.Value.(*cacheEntry).page)
	}
	return pages
}
