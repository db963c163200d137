// Package storage provides the local key/value persistence layer.
package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

// Store defines a flat overwrite key/value store.
type Store interface {
	// Get retrieves the raw value stored under key.
	// Returns the data and true if present, otherwise nil and false.
	Get(key string) ([]byte, bool)

	// Set stores data under key, replacing any previous value.
	Set(key string, data []byte) error

	// Delete removes the value stored under key. Deleting a missing key is not an error.
	Delete(key string) error

	// Close releases resources held by the store.
	Close() error
}

// Load returns the value stored under key decoded from JSON, or def when
// nothing is stored or the stored text cannot be decoded.
func Load[T any](s Store, key string, def T) T {
	data, found := s.Get(key)
	if !found {
		return def
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		slog.Warn("discarding unreadable stored value", "key", key, "error", err)
		return def
	}

	return v
}

// Save serializes v to JSON and stores it under key unconditionally.
func Save[T any](s Store, key string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode value for %s: %w", key, err)
	}
	if err := s.Set(key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
