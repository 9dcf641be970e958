// Package cache remembers converted inputs so incremental runs can skip
// files whose content and options have not changed.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"time"
)

// Store is a byte-oriented key/value store with expiry
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// InputKey returns the store key for an input path. Relative and absolute
// spellings of the same file map to the same key.
func InputKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	hash := sha256.Sum256([]byte(path))
	return "v1-" + hex.EncodeToString(hash[:])
}

// Fingerprint identifies one input's content converted under one set of
// options. Any option that changes the output must be part of opts.
func Fingerprint(content []byte, opts ...string) string {
	h := sha256.New()
	h.Write(content)
	for _, o := range opts {
		h.Write([]byte{0})
		h.Write([]byte(o))
	}
	return hex.EncodeToString(h.Sum(nil))
}
