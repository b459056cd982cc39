package llm

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// cacheEntry represents a cached tag.
type cacheEntry struct {
	expiry time.Time
	tag    string
}

// tagCache remembers tags for identical document text for the lifetime of
// the process. Expired entries are dropped on lookup.
type tagCache struct {
	entries map[string]cacheEntry
	now     func() time.Time
	ttl     time.Duration
	mu      sync.Mutex
}

// newTagCache creates a cache with the given TTL; zero means 15 minutes.
func newTagCache(ttl time.Duration) *tagCache {
	if ttl == 0 {
		ttl = 15 * time.Minute
	}
	return &tagCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// cacheKey hashes the submitted text.
func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func (c *tagCache) get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if c.now().After(entry.expiry) {
		delete(c.entries, key)
		return "", false
	}
	return entry.tag, true
}

func (c *tagCache) set(key, tag string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{tag: tag, expiry: c.now().Add(c.ttl)}
}

func (c *tagCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
