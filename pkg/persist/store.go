package persist

import (
	"context"
	"encoding/json"
	"fmt"
)

// KeyValueStore handles raw persisted slots.
type KeyValueStore interface {
	// Get returns the value stored under key.
	// ok is false and err is nil when the key has never been written.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set creates or overwrites the value under key.
	Set(ctx context.Context, key string, value []byte) error

	// Close releases the resources held by the backend.
	Close() error
}

// Load reads and decodes the value stored under key.
// It returns the zero value and ok == false when nothing is stored.
func Load[T any](ctx context.Context, kv KeyValueStore, key string) (T, bool, error) {
	var v T
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return v, false, fmt.Errorf("persist: load %q: %w", key, err)
	}
	if !ok {
		return v, false, nil
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false, fmt.Errorf("persist: decode %q: %w", key, err)
	}
	return v, true, nil
}

// Save encodes value and writes it under key.
func Save[T any](ctx context.Context, kv KeyValueStore, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("persist: encode %q: %w", key, err)
	}
	if err := kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("persist: save %q: %w", key, err)
	}
	return nil
}
