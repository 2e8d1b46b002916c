package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResponseCacheExpiry(t *testing.T) {
	assert := assert.New(t)

	cache := newResponseCache(time.Minute)
	base := time.Now()
	cache.now = func() time.Time { return base }

	key := cacheKey(http.MethodGet, "/admin/users")
	cache.Set(key, []byte(`{"success":true}`))

	body, ok := cache.Get(key)
	assert.True(ok)
	assert.JSONEq(`{"success":true}`, string(body))

	// Just inside the TTL.
	cache.now = func() time.Time { return base.Add(59 * time.Second) }
	_, ok = cache.Get(key)
	assert.True(ok)

	// Past the TTL the entry is evicted lazily.
	cache.now = func() time.Time { return base.Add(61 * time.Second) }
	_, ok = cache.Get(key)
	assert.False(ok)
	assert.Zero(cache.Len())
}

func TestResponseCacheInvalidatePrefix(t *testing.T) {
	assert := assert.New(t)

	cache := newResponseCache(time.Minute)
	cache.Set(cacheKey(http.MethodGet, "/admin/moves"), []byte("a"))
	cache.Set(cacheKey(http.MethodGet, "/admin/moves?page=2"), []byte("b"))
	cache.Set(cacheKey(http.MethodGet, "/admin/moves/7"), []byte("c"))
	cache.Set(cacheKey(http.MethodGet, "/admin/users"), []byte("d"))

	removed := cache.InvalidatePrefix("/admin/moves")
	assert.Equal(3, removed)

	_, ok := cache.Get(cacheKey(http.MethodGet, "/admin/users"))
	assert.True(ok)
	assert.Equal(1, cache.Len())
}

func TestCacheKeySeparatesMethods(t *testing.T) {
	assert.NotEqual(t,
		cacheKey(http.MethodGet, "/admin/users"),
		cacheKey(http.MethodPost, "/admin/users"))
}
