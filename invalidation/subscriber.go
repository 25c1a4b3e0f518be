package invalidation

import (
	"context"
	"log"

	"github.com/daniil-5/hotelbooking/cache"
)

// Subscriber is the long-running per-process eviction loop. On each event
// it derives the canonical primary key and removes it from the local cache
// store handle. Secondary keys (by-email, by-username, list caches) are
// left alone: the instance that performed the write already evicted them
// locally, and other instances repopulate them on the next miss with
// TTL-bounded staleness.
//
// The subscriber holds no state between events. If the transport drops,
// Run returns and the host process supervisor restarts it; events missed
// during the outage are covered by TTL expiry.
type Subscriber struct {
	listener Listener
	store    cache.Store
}

func NewSubscriber(listener Listener, store cache.Store) *Subscriber {
	return &Subscriber{listener: listener, store: store}
}

// Run blocks until the context is cancelled or the listener channel is
// closed. Eviction failures are logged and never stop the loop.
func (s *Subscriber) Run(ctx context.Context) error {
	log.Println("Invalidation subscriber started")

	for {
		select {
		case <-ctx.Done():
			log.Println("Invalidation subscriber stopped")
			return nil
		case event, ok := <-s.listener.Events():
			if !ok {
				log.Println("Invalidation listener channel closed")
				return nil
			}
			s.evict(ctx, event)
		}
	}
}

func (s *Subscriber) evict(ctx context.Context, event Event) {
	key := cache.PrimaryKey(event.EntityType, event.EntityID)
	if err := s.store.Remove(ctx, key); err != nil {
		log.Printf("Failed to evict %s after invalidation event: %v", key, err)
	}
}
