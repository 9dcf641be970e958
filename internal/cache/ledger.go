package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Record is what the ledger remembers about one converted input
type Record struct {
	Fingerprint string    `json:"fingerprint"`
	Output      string    `json:"output"`
	ShapeCount  int       `json:"shape_count"`
	ConvertedAt time.Time `json:"converted_at"`
}

// Ledger tracks the last successful conversion of each input
type Ledger struct {
	store Store
	ttl   time.Duration
}

// NewLedger creates a ledger over store. A zero ttl uses the store default.
func NewLedger(store Store, ttl time.Duration) *Ledger {
	return &Ledger{store: store, ttl: ttl}
}

// Lookup returns the record for input when its fingerprint still matches
// and the output it produced is still on disk
func (l *Ledger) Lookup(input, fingerprint string) (*Record, bool) {
	data, ok := l.store.Get(InputKey(input))
	if !ok {
		return nil, false
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, false
	}
	if rec.Fingerprint != fingerprint {
		return nil, false
	}
	if _, err := os.Stat(rec.Output); err != nil {
		return nil, false
	}

	return &rec, true
}

// Remember stores rec as the latest conversion of input
func (l *Ledger) Remember(input string, rec Record) error {
	if rec.ConvertedAt.IsZero() {
		rec.ConvertedAt = time.Now().UTC()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	if err := l.store.Set(InputKey(input), data, l.ttl); err != nil {
		return fmt.Errorf("store record: %w", err)
	}
	return nil
}

// Forget drops whatever the ledger knows about input
func (l *Ledger) Forget(input string) error {
	return l.store.Delete(InputKey(input))
}
