package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store implements cache.Store on top of a shared Redis instance.
type Store struct {
	client    *redis.Client
	opTimeout time.Duration
}

func NewStore(redisURL, password string, db int, opTimeout time.Duration) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: password,
		DB:       db,
	})

	// Test connection
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if opTimeout <= 0 {
		opTimeout = 250 * time.Millisecond
	}

	return &Store{client: client, opTimeout: opTimeout}, nil
}

// Client exposes the underlying connection so the invalidation transport
// can share it.
func (s *Store) Client() *redis.Client {
	return s.client
}

// withTimeout bounds a single cache operation so a slow Redis degrades to
// a miss instead of stalling the request.
func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opTimeout)
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}
	return data, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *Store) Remove(ctx context.Context, key string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.client.Del(ctx, key).Err()
}

func (s *Store) RemoveByPattern(ctx context.Context, pattern string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	keys, err := s.client.Keys(ctx, pattern).Result()
	if err != nil {
		return err
	}

	if len(keys) > 0 {
		return s.client.Del(ctx, keys...).Err()
	}

	return nil
}

func (s *Store) RemoveByPrefix(ctx context.Context, prefix string) error {
	return s.RemoveByPattern(ctx, prefix+"*")
}

func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	n, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) TTL(ctx context.Context, key string) (time.Duration, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.client.TTL(ctx, key).Result()
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.client.Ping(ctx).Err()
}
