// Package cached wraps the domain services with cache-aside decorators.
// Each decorator implements the same interface as the service it wraps:
// reads are served from the cache store or fall through and populate it,
// writes delegate first and then fix up every key that could now be stale,
// finishing with a cross-instance invalidation event.
//
// The decorators are strictly additive. They never turn a domain success
// into a failure or a failure into a success; any cache store trouble is
// logged and degrades to a miss or a skipped eviction.
package cached

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/daniil-5/hotelbooking/cache"
	"github.com/daniil-5/hotelbooking/invalidation"
)

// Expiration holds the per-entity-class TTLs from config.
type Expiration struct {
	Booking      time.Duration
	Availability time.Duration
	Hotel        time.Duration
	User         time.Duration
	Search       time.Duration
}

// cacheSet marshals v and stores it under key. Failures are logged and
// swallowed.
func cacheSet(ctx context.Context, store cache.Store, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Cache marshal failed for %s: %v", key, err)
		return
	}
	if err := store.Set(ctx, key, data, ttl); err != nil {
		log.Printf("Cache write failed for %s: %v", key, err)
	}
}

// cacheGet loads key into v and reports a hit. Any store or decode failure
// is treated as a miss so the caller falls through to the domain service.
func cacheGet(ctx context.Context, store cache.Store, key string, v any) bool {
	data, err := store.Get(ctx, key)
	if err != nil {
		log.Printf("Cache read failed for %s, treating as miss: %v", key, err)
		return false
	}
	if data == nil {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Printf("Cache decode failed for %s, treating as miss: %v", key, err)
		return false
	}
	return true
}

// cacheRemove evicts keys, logging and continuing on failure. Evicting an
// absent key is a no-op.
func cacheRemove(ctx context.Context, store cache.Store, keys ...string) {
	for _, key := range keys {
		if err := store.Remove(ctx, key); err != nil {
			log.Printf("Cache eviction failed for %s: %v", key, err)
		}
	}
}

// cacheRemovePrefix evicts a whole key family.
func cacheRemovePrefix(ctx context.Context, store cache.Store, prefix string) {
	if err := store.RemoveByPrefix(ctx, prefix); err != nil {
		log.Printf("Cache eviction failed for prefix %s: %v", prefix, err)
	}
}

// publishInvalidation tells peer instances to drop their copy. Called only
// after all local cache mutation is done, so a peer that refills right away
// reads the fresh value this instance just wrote.
func publishInvalidation(ctx context.Context, pub invalidation.Publisher, entityType, entityID string) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, entityType, entityID); err != nil {
		log.Printf("Failed to publish invalidation for %s:%s: %v", entityType, entityID, err)
	}
}
