package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore keeps entries for the lifetime of the process
type MemoryStore struct {
	cache *gocache.Cache
}

// NewMemoryStore creates a memory store
func NewMemoryStore(defaultTTL time.Duration, cleanupInterval time.Duration) *MemoryStore {
	return &MemoryStore{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get returns the value stored under key
func (s *MemoryStore) Get(key string) ([]byte, bool) {
	if val, found := s.cache.Get(key); found {
		if b, ok := val.([]byte); ok {
			return b, true
		}
	}
	return nil, false
}

// Set stores value; a zero ttl uses the store default
func (s *MemoryStore) Set(key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = gocache.DefaultExpiration
	}
	s.cache.Set(key, value, ttl)
	return nil
}

// Delete removes key
func (s *MemoryStore) Delete(key string) error {
	s.cache.Delete(key)
	return nil
}

// Clear removes everything
func (s *MemoryStore) Clear() error {
	s.cache.Flush()
	return nil
}

// Len returns the number of unexpired entries
func (s *MemoryStore) Len() int {
	return s.cache.ItemCount()
}
