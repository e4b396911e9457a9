package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache is the hot tier for verification results. Entries carry
// their own TTL; go-cache sweeps expired ones on the cleanup interval.
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache creates a memory cache. defaultTTL applies to entries
// stored with a zero TTL, which is how the layered cache promotes disk
// hits without re-deriving their remaining lifetime.
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		store: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get returns the cached result bytes for a verification key
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	if val, found := c.store.Get(key); found {
		return val.([]byte), true
	}
	return nil, false
}

// Set stores result bytes under a verification key. A zero TTL uses the
// cache's default lifetime.
func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	c.store.Set(key, value, ttl)
	return nil
}

// Delete removes one verification result
func (c *MemoryCache) Delete(key string) error {
	c.store.Delete(key)
	return nil
}

// Clear drops every cached result
func (c *MemoryCache) Clear() error {
	c.store.Flush()
	return nil
}
