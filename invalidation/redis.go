package invalidation

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

// RedisBus carries invalidation events over a single named Redis pub/sub
// channel. It typically shares the client of the redis cache store.
type RedisBus struct {
	client  *redis.Client
	channel string
}

func NewRedisBus(client *redis.Client, channel string) *RedisBus {
	return &RedisBus{client: client, channel: channel}
}

// Publish sends the event fire-and-forget. Redis pub/sub drops messages
// when nobody is subscribed, which is the intended best-effort semantics.
func (b *RedisBus) Publish(ctx context.Context, entityType, entityID string) error {
	payload := Event{EntityType: entityType, EntityID: entityID}.Encode()
	return b.client.Publish(ctx, b.channel, payload).Err()
}

// Listen subscribes to the channel and returns a Listener feeding parsed
// events. Malformed payloads are logged and skipped.
func (b *RedisBus) Listen(ctx context.Context) (Listener, error) {
	sub := b.client.Subscribe(ctx, b.channel)

	// Wait for the subscription to be confirmed before reporting success.
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, err
	}

	l := &redisListener{
		sub:    sub,
		events: make(chan Event, 64),
	}
	go l.pump()

	return l, nil
}

type redisListener struct {
	sub    *redis.PubSub
	events chan Event
}

func (l *redisListener) pump() {
	defer close(l.events)

	for msg := range l.sub.Channel() {
		event, err := ParseEvent(msg.Payload)
		if err != nil {
			log.Printf("Skipping invalidation message: %v", err)
			continue
		}
		l.events <- event
	}
}

func (l *redisListener) Events() <-chan Event {
	return l.events
}

func (l *redisListener) Close() error {
	return l.sub.Close()
}
