package cache

import (
	"context"
	"time"
)

// Store is the key/value cache consumed by the cached service decorators.
// Any store with per-key TTL and pattern deletion satisfies it; the redis
// subpackage provides the shared cross-process implementation and the
// memory subpackage an in-process one.
//
// The store is shared between instances: no caller may assume exclusive
// ownership of a key, since any instance can evict any key at any time
// through the invalidation subscriber.
type Store interface {
	// Get returns the value stored under key, or (nil, nil) on a miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Remove deletes a key. Removing an absent key is a no-op.
	Remove(ctx context.Context, key string) error

	// RemoveByPattern deletes all keys matching a glob pattern.
	RemoveByPattern(ctx context.Context, pattern string) error

	// RemoveByPrefix deletes all keys starting with prefix.
	RemoveByPrefix(ctx context.Context, prefix string) error

	// Exists reports whether key is present.
	Exists(ctx context.Context, key string) (bool, error)

	// TTL returns the remaining lifetime of key. Mirrors Redis semantics:
	// negative when the key does not exist or has no expiration.
	TTL(ctx context.Context, key string) (time.Duration, error)

	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error
}
