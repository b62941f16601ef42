// Package fs provides a file-backed key-value backend.
package fs

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/bft-labs/postboard/internal/ports"
)

const fileExt = ".json"

var _ ports.KeyValueStore = (*KVFileStore)(nil)

// KVFileStore implements ports.KeyValueStore with one file per key.
type KVFileStore struct {
	dir string
}

// NewKVFileStore creates a store rooted at dir.
// The directory is created on first write.
func NewKVFileStore(dir string) *KVFileStore {
	return &KVFileStore{dir: dir}
}

// Get reads the value stored under key.
// Returns ok == false and a nil error if no file exists for key.
func (s *KVFileStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// Set persists value atomically.
// Uses atomic write (write to temp file, then rename) to prevent corruption.
func (s *KVFileStore) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return fmt.Errorf("fs: empty key")
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}

	path := s.Path(key)
	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, value, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Path returns the file holding key.
// Keys are path-escaped so that any key maps to a single file inside dir.
func (s *KVFileStore) Path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key)+fileExt)
}

// Close is a no-op.
func (s *KVFileStore) Close() error { return nil }
