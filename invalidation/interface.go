package invalidation

import "context"

// Publisher announces a successful local write to peer instances.
// Publishing is fire-and-forget: zero listening subscribers is a valid,
// silent state.
type Publisher interface {
	Publish(ctx context.Context, entityType, entityID string) error
}

// Listener delivers invalidation events published by peer instances.
// The channel is closed when the underlying transport shuts down.
type Listener interface {
	Events() <-chan Event
	Close() error
}

// NopPublisher is used when cross-instance invalidation is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, string) error {
	return nil
}
