package store

import (
	"context"
	"sync"
)

// MemoryStore is a KVStore held in process memory. Nothing survives a
// restart.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

var _ KVStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get implements KVStore.
func (m *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, NewStoreError("memory", "get", key, "key cannot be empty", ErrInvalidKey)
	}
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements KVStore.
func (m *MemoryStore) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return NewStoreError("memory", "set", key, "key cannot be empty", ErrInvalidKey)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
