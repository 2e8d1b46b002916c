package api

import (
	"strings"
	"sync"
	"time"
)

// DefaultCacheTTL is how long a cached GET response stays servable.
const DefaultCacheTTL = 5 * time.Minute

type cacheEntry struct {
	body     []byte
	storedAt time.Time
}

// responseCache holds the most recent successful GET bodies, keyed by
// method+endpoint. Expired entries are evicted lazily on lookup.
type responseCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
	now     func() time.Time
}

func newResponseCache(ttl time.Duration) *responseCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	return &responseCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

func cacheKey(method, endpoint string) string {
	return method + " " + endpoint
}

func (c *responseCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	if c.now().Sub(entry.storedAt) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}

	return entry.body, true
}

func (c *responseCache) Set(key string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{body: body, storedAt: c.now()}
}

// InvalidatePrefix drops every entry whose endpoint path starts with prefix.
// Returns the number of entries removed.
func (c *responseCache) InvalidatePrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key := range c.entries {
		_, endpoint, found := strings.Cut(key, " ")
		if found && strings.HasPrefix(endpoint, prefix) {
			delete(c.entries, key)
			removed++
		}
	}

	return removed
}

func (c *responseCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
