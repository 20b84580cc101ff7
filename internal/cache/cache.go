package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/4oBuko/tag-browser/pkg/tagsapi"
	"golang.org/x/sync/singleflight"
)

// Key identifies one fetched page of tags.
type Key struct {
	Filter string
	Page   int
}

func (k Key) String() string {
	return fmt.Sprintf("%d:%s", k.Page, k.Filter)
}

type Entry struct {
	Page      tagsapi.TagPage
	FetchedAt time.Time
}

type FetchFunc func(ctx context.Context, key Key) (tagsapi.TagPage, error)

// Cache keeps successful page results by key. Failures are never stored.
type Cache struct {
	mu         sync.Mutex
	entries    map[Key]Entry
	ttl        time.Duration
	maxEntries int
	group      singleflight.Group
	now        func() time.Time
}

func New(ttl time.Duration, maxEntries int) *Cache {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &Cache{
		entries:    make(map[Key]Entry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (c *Cache) Get(key Key) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return Entry{}, false
	}
	if c.ttl > 0 && c.now().Sub(entry.FetchedAt) > c.ttl {
		delete(c.entries, key)
		return Entry{}, false
	}
	return entry, true
}

func (c *Cache) Put(key Key, page tagsapi.TagPage) Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictOldest()
	}
	entry := Entry{Page: page, FetchedAt: c.now()}
	c.entries[key] = entry
	return entry
}

func (c *Cache) evictOldest() {
	var oldestKey Key
	var oldest time.Time
	first := true
	for k, e := range c.entries {
		if first || e.FetchedAt.Before(oldest) {
			oldestKey, oldest, first = k, e.FetchedAt, false
		}
	}
	if !first {
		delete(c.entries, oldestKey)
	}
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Load returns the cached entry for key or fetches it. Concurrent loads of
// the same key share one fetch.
func (c *Cache) Load(ctx context.Context, key Key, fetch FetchFunc) (Entry, error) {
	if entry, ok := c.Get(key); ok {
		return entry, nil
	}
	result, err, _ := c.group.Do(key.String(), func() (any, error) {
		if entry, ok := c.Get(key); ok {
			return entry, nil
		}
		page, err := fetch(ctx, key)
		if err != nil {
			return nil, err
		}
		return c.Put(key, page), nil
	})
	if err != nil {
		return Entry{}, err
	}
	return result.(Entry), nil
}
