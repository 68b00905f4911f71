// Package cache provides pluggable cache backends for liblens.
//
// Two kinds of data pass through this package:
//
//   - HTTP responses from the package index, cached with a TTL in a
//     [FileCache] or [RedisCache] so repeated lookups don't hammer PyPI.
//   - Parsed library modules, held in a bounded [MemoryCache] for the life
//     of the process. This models the import-once behavior of a language
//     runtime as an explicit, intentional cache rather than an incidental
//     side effect: entries are keyed by normalized library name, never
//     expire, and are never evicted.
//
// All backends implement the [Cache] interface and are safe for concurrent
// use unless documented otherwise.
package cache

import (
	"context"
	"time"
)

// Cache is the interface implemented by all cache backends.
type Cache interface {
	// Get retrieves a value by key. The second return value reports
	// whether the key was found; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value under key. A ttl of 0 means the entry never
	// expires. Backends may silently decline to store (see MemoryCache).
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}
