// Package di provides dependency injection factories for creating application components.
package di

import (
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"jobnaut/internal/platform/cache"
)

// Cache namespaces for the services that may share Redis.
const (
	NamespaceJob      = "job"
	NamespaceSavedJob = "savedjob"
)

// NewCacheStore creates the cache for one entity service.
// If Redis is available, it returns a Redis-backed store shared across
// instances. Otherwise, it falls back to a per-process memory store.
func NewCacheStore(rdb *redis.Client, ttl time.Duration, namespace string) cache.Store {
	if rdb != nil {
		return cache.NewRedisStore(rdb, ttl, "jobnaut:"+namespace)
	}
	slog.Debug("using in-memory cache", "namespace", namespace)
	return cache.NewMemoryStore(ttl)
}
