package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore is a process-local Store. Entries are not shared between
// instances and are lost on restart.
type MemoryStore struct {
	c *gocache.Cache
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore builds a MemoryStore. If ttl is 0, it defaults to 5 minutes.
// Expired entries are purged every two TTLs.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{c: gocache.New(ttl, 2*ttl)}
}

// Get returns a copy of the value stored under key.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	v, ok := s.c.Get(key)
	if !ok {
		return nil, false
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, false
	}
	return append([]byte(nil), b...), true
}

// Set stores a copy of value with the default TTL.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte) {
	s.c.SetDefault(key, append([]byte(nil), value...))
}

// Delete removes keys.
func (s *MemoryStore) Delete(_ context.Context, keys ...string) {
	for _, k := range keys {
		s.c.Delete(k)
	}
}

// Flush removes every entry.
func (s *MemoryStore) Flush(_ context.Context) {
	s.c.Flush()
}

// Clear removes every entry.
func (s *MemoryStore) Clear() {
	s.c.Flush()
}

// Len returns the number of entries, including expired ones not yet purged.
func (s *MemoryStore) Len() int {
	return s.c.ItemCount()
}
