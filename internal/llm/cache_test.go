package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTagCache(t *testing.T) {
	t.Run("basic operations", func(t *testing.T) {
		cache := newTagCache(5 * time.Minute)

		_, found := cache.get("non-existent")
		assert.False(t, found)

		cache.set("key1", "Invoices")
		got, found := cache.get("key1")
		assert.True(t, found)
		assert.Equal(t, "Invoices", got)
		assert.Equal(t, 1, cache.size())
	})

	t.Run("expiration", func(t *testing.T) {
		now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		cache := newTagCache(time.Minute)
		cache.now = func() time.Time { return now }

		cache.set("key2", "Medical")
		_, found := cache.get("key2")
		assert.True(t, found)

		now = now.Add(2 * time.Minute)
		_, found = cache.get("key2")
		assert.False(t, found)
		assert.Equal(t, 0, cache.size())
	})

	t.Run("default ttl", func(t *testing.T) {
		assert.Equal(t, 15*time.Minute, newTagCache(0).ttl)
	})

	t.Run("key is stable and content based", func(t *testing.T) {
		assert.Equal(t, cacheKey("abc"), cacheKey("abc"))
		assert.NotEqual(t, cacheKey("abc"), cacheKey("abd"))
		assert.Len(t, cacheKey(""), 64)
	})
}
