package redis

import (
	"context"
	"testing"
	"time"
)

// newTestStore connects to a local Redis or skips the test.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore("127.0.0.1:6379", "", 15, 250*time.Millisecond)
	if err != nil {
		t.Skipf("skip: redis not available: %v", err)
	}
	t.Cleanup(func() {
		store.Client().FlushDB(context.Background())
	})
	return store
}

func TestRedisRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "booking:id:b1", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	data, err := store.Get(ctx, "booking:id:b1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if string(data) != "v" {
		t.Fatalf("expected v, got %q", data)
	}

	if ok, _ := store.Exists(ctx, "booking:id:b1"); !ok {
		t.Fatal("key should exist")
	}

	ttl, err := store.TTL(ctx, "booking:id:b1")
	if err != nil {
		t.Fatalf("TTL error: %v", err)
	}
	if ttl <= 0 || ttl > time.Minute {
		t.Fatalf("unexpected ttl %v", ttl)
	}
}

func TestRedisMissReturnsNilNil(t *testing.T) {
	store := newTestStore(t)

	data, err := store.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("miss must not error: %v", err)
	}
	if data != nil {
		t.Fatalf("expected nil on miss, got %q", data)
	}
}

func TestRedisRemoveByPrefix(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.Set(ctx, "hotels:search:a", []byte("1"), time.Minute)
	store.Set(ctx, "hotels:search:b", []byte("2"), time.Minute)
	store.Set(ctx, "hotel:id:h1", []byte("3"), time.Minute)

	if err := store.RemoveByPrefix(ctx, "hotels:search:"); err != nil {
		t.Fatalf("RemoveByPrefix error: %v", err)
	}

	if ok, _ := store.Exists(ctx, "hotels:search:a"); ok {
		t.Fatal("prefixed key should be gone")
	}
	if ok, _ := store.Exists(ctx, "hotel:id:h1"); !ok {
		t.Fatal("key outside the prefix must survive")
	}
}

func TestRedisRemoveIsIdempotent(t *testing.T) {
	store := newTestStore(t)

	if err := store.Remove(context.Background(), "never-set"); err != nil {
		t.Fatalf("removing an absent key must be a no-op, got %v", err)
	}
}
