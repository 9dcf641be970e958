package cache

import (
	"errors"
	"time"
)

// LayeredStore checks memory before disk and writes through to both
type LayeredStore struct {
	memory Store
	disk   Store
}

// NewLayeredStore combines a memory store in front of a disk store at diskDir
func NewLayeredStore(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *LayeredStore {
	return &LayeredStore{
		memory: NewMemoryStore(memoryTTL, 10*time.Minute),
		disk:   NewDiskStore(diskDir, diskTTL),
	}
}

// Get returns the value from memory, or from disk promoting it to memory
func (s *LayeredStore) Get(key string) ([]byte, bool) {
	if val, found := s.memory.Get(key); found {
		return val, true
	}

	if val, found := s.disk.Get(key); found {
		_ = s.memory.Set(key, val, 0)
		return val, true
	}

	return nil, false
}

// Set stores value in both layers
func (s *LayeredStore) Set(key string, value []byte, ttl time.Duration) error {
	if err := s.memory.Set(key, value, ttl); err != nil {
		return err
	}
	return s.disk.Set(key, value, ttl)
}

// Delete removes key from both layers
func (s *LayeredStore) Delete(key string) error {
	return errors.Join(s.memory.Delete(key), s.disk.Delete(key))
}

// Clear empties both layers
func (s *LayeredStore) Clear() error {
	return errors.Join(s.memory.Clear(), s.disk.Clear())
}
