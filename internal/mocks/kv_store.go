package mocks

import (
	"context"
	"sync"

	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/store"
)

// MockKVStore implements store.KVStore for testing. Without overrides it
// behaves like an in-memory store and records every write.
type MockKVStore struct {
	// GetFn and SetFn allow test cases to override behavior
	GetFn func(ctx context.Context, key string) (string, bool, error)
	SetFn func(ctx context.Context, key, value string) error

	mu     sync.Mutex
	values map[string]string
	sets   []KVWrite
}

// KVWrite records one Set call.
type KVWrite struct {
	Key   string
	Value string
}

var _ store.KVStore = (*MockKVStore)(nil)

// NewMockKVStore creates a MockKVStore pre-populated with values.
func NewMockKVStore(values map[string]string) *MockKVStore {
	m := &MockKVStore{values: make(map[string]string, len(values))}
	for k, v := range values {
		m.values[k] = v
	}
	return m
}

// Get implements store.KVStore.
func (m *MockKVStore) Get(ctx context.Context, key string) (string, bool, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, key)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements store.KVStore. The write is recorded even when SetFn fails.
func (m *MockKVStore) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	m.sets = append(m.sets, KVWrite{Key: key, Value: value})
	m.mu.Unlock()

	if m.SetFn != nil {
		return m.SetFn(ctx, key, value)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
	return nil
}

// Writes returns every Set call received so far.
func (m *MockKVStore) Writes() []KVWrite {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]KVWrite(nil), m.sets...)
}

// Value returns the stored value for key, ignoring GetFn.
func (m *MockKVStore) Value(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}
