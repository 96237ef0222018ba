package mocks

import (
	"context"
	"sync"

	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/generation"
)

// MockBackend implements generation.Backend for testing
type MockBackend struct {
	// CompleteFn allows test cases to mock the Complete behavior
	CompleteFn func(ctx context.Context, req generation.Request) (string, error)

	// Default response values
	Response string
	Err      error

	mu       sync.Mutex
	requests []generation.Request
}

var _ generation.Backend = (*MockBackend)(nil)

// Name implements generation.Backend.
func (m *MockBackend) Name() string { return "mock" }

// Complete implements generation.Backend.
func (m *MockBackend) Complete(ctx context.Context, req generation.Request) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.CompleteFn != nil {
		return m.CompleteFn(ctx, req)
	}
	return m.Response, m.Err
}

// Requests returns a copy of every request received so far.
func (m *MockBackend) Requests() []generation.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]generation.Request(nil), m.requests...)
}
