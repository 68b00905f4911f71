package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCache is a bounded in-process cache with a process-long lifetime.
//
// It deliberately performs no eviction: once an entry is stored it stays
// until the process exits, mirroring how an interpreter keeps an imported
// module resident. The bound caps memory use instead — when the cache is
// full, Set calls for new keys are accepted but the value is not retained.
// Overwrites of existing keys always succeed.
//
// TTL values passed to Set are ignored; entries never expire.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string][]byte
	max     int
}

// DefaultMaxEntries bounds a MemoryCache created with max <= 0.
const DefaultMaxEntries = 256

// NewMemoryCache creates a memory cache holding at most max entries.
// If max <= 0, [DefaultMaxEntries] is used.
func NewMemoryCache(max int) *MemoryCache {
	if max <= 0 {
		max = DefaultMaxEntries
	}
	return &MemoryCache{
		entries: make(map[string][]byte),
		max:     max,
	}
}

// Get retrieves a value from the cache.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	data, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	return data, true, nil
}

// Set stores a value. New keys are dropped once the cache is full;
// existing keys are always updated. The ttl parameter is ignored.
func (c *MemoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.max {
		return nil
	}
	c.entries[key] = data
	return nil
}

// Delete removes a value from the cache.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

// Len returns the number of entries currently held.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close does nothing for memory cache.
func (c *MemoryCache) Close() error {
	return nil
}

// Ensure MemoryCache implements Cache.
var _ Cache = (*MemoryCache)(nil)
