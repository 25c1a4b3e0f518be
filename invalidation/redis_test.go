package invalidation

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func newTestBus(t *testing.T) *RedisBus {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:6379", DB: 15})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("skip: redis not available: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return NewRedisBus(client, "cache-invalidation-test")
}

func TestRedisBusDeliversEvents(t *testing.T) {
	bus := newTestBus(t)
	ctx := context.Background()

	listener, err := bus.Listen(ctx)
	if err != nil {
		t.Fatalf("Listen error: %v", err)
	}
	defer listener.Close()

	if err := bus.Publish(ctx, "booking", "b1"); err != nil {
		t.Fatalf("Publish error: %v", err)
	}

	select {
	case event := <-listener.Events():
		if event.EntityType != "booking" || event.EntityID != "b1" {
			t.Fatalf("unexpected event: %+v", event)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("event never arrived")
	}
}

func TestRedisBusPublishWithoutSubscribers(t *testing.T) {
	bus := newTestBus(t)

	// Nobody is listening; publish must still succeed silently.
	if err := bus.Publish(context.Background(), "hotel", "h1"); err != nil {
		t.Fatalf("Publish error: %v", err)
	}
}
