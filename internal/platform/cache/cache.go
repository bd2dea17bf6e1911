// Package cache provides the TTL key-value stores used in front of the
// persistence layer. Each store owns one namespace and one TTL.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// DefaultTTL is applied when a store is built with a non-positive TTL.
const DefaultTTL = 5 * time.Minute

// Store is a namespaced TTL cache. Implementations are fail-safe: backend
// errors are logged and reported as misses so the caller falls back to
// the database.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool)
	// Set stores value under key with the store's TTL.
	Set(ctx context.Context, key string, value []byte)
	// Delete removes the given keys.
	Delete(ctx context.Context, keys ...string)
	// Flush removes every key in the store's namespace.
	Flush(ctx context.Context)
	// Clear is Flush without a caller context, for tests and teardown.
	Clear()
}

// GetJSON reads key and decodes it into a T. A corrupted entry is deleted
// and reported as a miss.
func GetJSON[T any](ctx context.Context, s Store, key string) (T, bool) {
	var out T
	b, ok := s.Get(ctx, key)
	if !ok || len(b) == 0 {
		return out, false
	}
	if err := json.Unmarshal(b, &out); err != nil {
		slog.Warn("dropping corrupted cache entry", "key", key, "error", err)
		s.Delete(ctx, key)
		var zero T
		return zero, false
	}
	return out, true
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		slog.Warn("cache encode failed", "key", key, "error", err)
		return
	}
	s.Set(ctx, key, b)
}
