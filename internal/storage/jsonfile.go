package storage

import (
	"encoding/json"
	"os"
	"sync"
)

// Collection persists a record slice as a single JSON array file. Every write
// replaces the whole file; there is no append log. Writers within the process
// are serialized, external writers are last-write-wins.
type Collection[T any] struct {
	path string
	mu   sync.Mutex
}

func NewCollection[T any](path string) *Collection[T] {
	return &Collection[T]{path: path}
}

// ReadAll returns the persisted records. A missing or unparsable file yields
// an empty slice, never an error — the gallery starts empty rather than down.
func (c *Collection[T]) ReadAll() ([]T, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return []T{}, nil
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return []T{}, nil
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// WriteAll replaces the persisted collection.
func (c *Collection[T]) WriteAll(records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return os.WriteFile(c.path, data, 0o644)
}
