package resilience

import (
	"sync"
	"time"
)

// cacheEntry is one cached response body with its expiry.
type cacheEntry struct {
	data    []byte
	expires time.Time
}

// Cache is a TTL response cache keyed by URL. It exists so a flapping feed
// can be served its last good body instead of hammering the upstream.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration

	now func() time.Time
}

// NewCache creates a cache with the given TTL.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached body for the URL if it is still fresh.
func (c *Cache) Get(url string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[url]
	if !ok || c.now().After(e.expires) {
		return nil, false
	}
	return e.data, true
}

// Set stores a response body for the URL.
func (c *Cache) Set(url string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[url] = cacheEntry{
		data:    append([]byte(nil), data...),
		expires: c.now().Add(c.ttl),
	}
}

// Prune drops expired entries. The coordinator calls this once per cycle.
func (c *Cache) Prune() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for url, e := range c.entries {
		if now.After(e.expires) {
			delete(c.entries, url)
		}
	}
}

// Len returns the number of entries, fresh or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
