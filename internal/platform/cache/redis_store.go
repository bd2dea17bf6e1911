package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// scanBatch is the COUNT hint used when flushing a namespace.
const scanBatch = 200

// RedisStore is a Store backed by Redis. Keys are prefixed with the namespace
// so Flush only touches this store's entries.
type RedisStore struct {
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore builds a RedisStore. If ttl is 0, it defaults to 5 minutes.
// If namespace is empty, it uses "cache".
func NewRedisStore(rdb *redis.Client, ttl time.Duration, namespace string) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if namespace == "" {
		namespace = "cache"
	}
	return &RedisStore{rdb: rdb, ttl: ttl, namespace: namespace}
}

// Get returns the cached bytes for key.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	b, err := s.rdb.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("redis get failed", "key", key, "error", err)
		}
		return nil, false
	}
	return b, true
}

// Set stores value with the store TTL.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte) {
	if err := s.rdb.Set(ctx, s.key(key), value, s.ttl).Err(); err != nil {
		slog.Warn("redis set failed", "key", key, "error", err)
	}
}

// Delete removes keys from the namespace.
func (s *RedisStore) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.key(k)
	}
	if err := s.rdb.Del(ctx, full...).Err(); err != nil {
		slog.Warn("redis delete failed", "keys", keys, "error", err)
	}
}

// Flush deletes every key under the namespace using SCAN.
func (s *RedisStore) Flush(ctx context.Context) {
	if err := s.deleteByPattern(ctx, s.namespace+":*"); err != nil {
		slog.Warn("redis flush failed", "namespace", s.namespace, "error", err)
	}
}

// Clear flushes the namespace with a background context.
func (s *RedisStore) Clear() {
	s.Flush(context.Background())
}

func (s *RedisStore) key(k string) string {
	return fmt.Sprintf("%s:%s", s.namespace, k)
}

// deleteByPattern deletes all keys matching pattern using SCAN.
func (s *RedisStore) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := s.rdb.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			return nil
		}
	}
}
