// Package filekv implements store.KVStore on a single local JSON file, the
// default persistent store for the generation history.
//
// The file holds one JSON object mapping keys to values. Every Set rewrites
// the whole file through a temporary file and a rename, so a crash leaves
// either the old or the new content on disk.
package filekv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/store"
)

const backendName = "file"

// Store is a file-backed store.KVStore. It is safe for concurrent use within
// one process; separate processes sharing a file are not coordinated.
type Store struct {
	path string
	mu   sync.Mutex
}

var _ store.KVStore = (*Store)(nil)

// New creates a Store persisting to path. The parent directory is created if
// needed; the file itself is created on the first Set.
func New(path string) (*Store, error) {
	if path == "" {
		return nil, store.NewStoreError(backendName, "open", "", "path cannot be empty", store.ErrNotInitialized)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, store.NewStoreError(backendName, "open", "", "failed to create directory", err)
	}
	return &Store{path: path}, nil
}

// Path returns the file the store writes to.
func (s *Store) Path() string {
	return s.path
}

// Get implements store.KVStore. A corrupt file is reported as an error.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, store.NewStoreError(backendName, "get", key, "key cannot be empty", store.ErrInvalidKey)
	}
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return "", false, store.NewStoreError(backendName, "get", key, "failed to read store file", err)
	}

	v, ok := values[key]
	return v, ok, nil
}

// Set implements store.KVStore. A corrupt file is replaced.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return store.NewStoreError(backendName, "set", key, "key cannot be empty", store.ErrInvalidKey)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		values = make(map[string]string)
	}
	values[key] = value

	if err := s.write(values); err != nil {
		return store.NewStoreError(backendName, "set", key, "failed to write store file", err)
	}
	return nil
}

// read loads the file. A missing file is an empty store.
func (s *Store) read() (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return make(map[string]string), nil
		}
		return nil, err
	}

	values := make(map[string]string)
	if len(raw) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidValue, err)
	}
	return values, nil
}

func (s *Store) write(values map[string]string) error {
	raw, err := json.Marshal(values)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
