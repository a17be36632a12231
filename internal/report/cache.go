package report

import (
	"sync"
	"time"
)

// Cache is a time-boxed memo for rendered view payloads, standing in for the
// short-lived chart/aggregate caching of the dashboard. Entries expire after
// the ttl; any inventory mutation calls Invalidate.
type Cache struct {
	ttl time.Duration

	mu      sync.Mutex
	entries map[string]cacheEntry
	now     func() time.Time
}

type cacheEntry struct {
	value any
	at    time.Time
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{ttl: ttl, entries: make(map[string]cacheEntry), now: time.Now}
}

// Get returns the memoized value for key, calling fill to compute it when
// absent or stale. A ttl <= 0 disables memoization entirely.
func (c *Cache) Get(key string, fill func() (any, error)) (any, error) {
	if c.ttl <= 0 {
		return fill()
	}
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && c.now().Sub(e.at) < c.ttl {
		c.mu.Unlock()
		return e.value, nil
	}
	c.mu.Unlock()

	v, err := fill()
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.entries[key] = cacheEntry{value: v, at: c.now()}
	c.mu.Unlock()
	return v, nil
}

// Invalidate drops every memoized entry.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}
