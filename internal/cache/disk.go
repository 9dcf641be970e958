package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const entrySuffix = ".entry"

// DiskStore persists entries as one JSON file per key, so incremental state
// survives between runs
type DiskStore struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

// NewDiskStore creates a disk store rooted at dir
func NewDiskStore(dir string, ttl time.Duration) *DiskStore {
	return &DiskStore{
		dir: dir,
		ttl: ttl,
		now: time.Now,
	}
}

type diskEntry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Get returns the value stored under key. Expired and unreadable entries are
// removed and reported as missing.
func (s *DiskStore) Get(key string) ([]byte, bool) {
	path := s.path(key)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var entry diskEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		_ = os.Remove(path)
		return nil, false
	}

	if !entry.ExpiresAt.IsZero() && s.now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false
	}

	return entry.Data, true
}

// Set stores value. The entry is written to a temporary file and renamed so
// a concurrent Get never sees half an entry.
func (s *DiskStore) Set(key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = s.ttl
	}

	entry := diskEntry{Data: value}
	if ttl > 0 {
		entry.ExpiresAt = s.now().Add(ttl)
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create cache file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close cache file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("commit cache file: %w", err)
	}

	return nil
}

// Delete removes key. A missing key is not an error.
func (s *DiskStore) Delete(key string) error {
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Clear removes every entry file but leaves the directory and anything else
// in it alone
func (s *DiskStore) Clear() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read cache dir: %w", err)
	}

	var errs []error
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), entrySuffix) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *DiskStore) path(key string) string {
	return filepath.Join(s.dir, key+entrySuffix)
}
