// Package redis implements kvstore.Store on Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MoaeadAlhosami/STREETWEER/pkg/database"
)

// DefaultPrefix namespaces every key written by the store.
const DefaultPrefix = "storefront:"

// Store implements kvstore.Store using Redis strings.
type Store struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// New creates a Redis-backed store. A zero ttl keeps keys forever.
func New(client redis.UniversalClient, prefix string, ttl time.Duration) *Store {
	return &Store{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (s *Store) key(k string) string {
	return s.prefix + k
}

// Get implements kvstore.Store.
func (s *Store) Get(ctx context.Context, key string) (value string, ok bool, err error) {
	ctx, end := database.TraceOp(ctx, database.SystemRedis, "kv.Get", "GET "+s.key(key))
	defer func() { end(err) }()

	value, err = s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, true, nil
}

// Set implements kvstore.Store. The TTL is refreshed on every write.
func (s *Store) Set(ctx context.Context, key, value string) (err error) {
	ctx, end := database.TraceOp(ctx, database.SystemRedis, "kv.Set", "SET "+s.key(key))
	defer func() { end(err) }()

	if err = s.client.Set(ctx, s.key(key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete implements kvstore.Store.
func (s *Store) Delete(ctx context.Context, key string) (err error) {
	ctx, end := database.TraceOp(ctx, database.SystemRedis, "kv.Delete", "DEL "+s.key(key))
	defer func() { end(err) }()

	if err = s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// Ping checks connectivity for readiness probes.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
