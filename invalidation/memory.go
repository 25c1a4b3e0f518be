package invalidation

import (
	"context"
	"sync"
)

// MemoryBroker routes invalidation events between listeners in the same
// process without network transport. It backs the test suites and
// single-instance deployments where invalidation is a local concern.
type MemoryBroker struct {
	mu        sync.Mutex
	closed    bool
	listeners []*memoryListener
	published []Event
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{}
}

// Publish fans the event out to every registered listener. A listener with
// a full buffer drops the event, matching the best-effort contract.
func (b *MemoryBroker) Publish(_ context.Context, entityType, entityID string) error {
	event := Event{EntityType: entityType, EntityID: entityID}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}

	b.published = append(b.published, event)
	for _, l := range b.listeners {
		select {
		case l.events <- event:
		default:
		}
	}
	return nil
}

// NewListener registers a listener. Each listener receives every event
// published after registration.
func (b *MemoryBroker) NewListener() Listener {
	l := &memoryListener{
		broker: b,
		events: make(chan Event, 64),
	}

	b.mu.Lock()
	b.listeners = append(b.listeners, l)
	b.mu.Unlock()

	return l
}

// Published returns a copy of every event published so far; used by tests.
func (b *MemoryBroker) Published() []Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Event, len(b.published))
	copy(out, b.published)
	return out
}

// Close closes every listener channel.
func (b *MemoryBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	for _, l := range b.listeners {
		close(l.events)
	}
	b.listeners = nil
	return nil
}

type memoryListener struct {
	broker *MemoryBroker
	events chan Event
}

func (l *memoryListener) Events() <-chan Event {
	return l.events
}

func (l *memoryListener) Close() error {
	b := l.broker
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, reg := range b.listeners {
		if reg == l {
			b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
			close(l.events)
			break
		}
	}
	return nil
}
