// Package ctxcache stores assembled context fragments by id for reuse across
// requests.
package ctxcache

import (
	"sync"
	"time"

	"raind/pkg/types"
)

// Stats summarizes cache contents.
type Stats struct {
	Items int
	Bytes int
}

// Cache is a mutex-guarded map of context items. It has no size bound; callers
// drop entries with Clear.
type Cache struct {
	mu    sync.Mutex
	items map[string]types.ContextItem
	now   func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New returns an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{items: make(map[string]types.ContextItem), now: time.Now}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Put stores content under id, replacing any previous entry. The access
// count starts at one.
func (c *Cache) Put(id, content string, md types.ContextMetadata) types.ContextItem {
	md.Tags = append([]string(nil), md.Tags...)
	item := types.ContextItem{
		ID:           id,
		Content:      content,
		Metadata:     md,
		LastAccessed: c.now(),
		AccessCount:  1,
	}
	c.mu.Lock()
	c.items[id] = item
	c.mu.Unlock()
	return copyItem(item)
}

// Get returns a copy of the item and refreshes its access accounting.
func (c *Cache) Get(id string) (types.ContextItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.items[id]
	if !ok {
		return types.ContextItem{}, false
	}
	item.AccessCount++
	item.LastAccessed = c.now()
	c.items[id] = item
	return copyItem(item), true
}

// Clear removes every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.items)
}

// Len returns the number of cached items.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Stats reports the item count and total content bytes.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := Stats{Items: len(c.items)}
	for _, it := range c.items {
		s.Bytes += len(it.Content)
	}
	return s
}

func copyItem(it types.ContextItem) types.ContextItem {
	it.Metadata.Tags = append([]string(nil), it.Metadata.Tags...)
	return it
}
