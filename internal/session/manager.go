package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/generation"
)

// Manager is the registry of sessions keyed by browser session ID.
type Manager struct {
	generator generation.Generator
	history   HistoryStore
	logger    *slog.Logger
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithClock replaces the time source used for idle tracking.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewManager creates a Manager whose sessions share gen and hist.
func NewManager(gen generation.Generator, hist HistoryStore, logger *slog.Logger, opts ...ManagerOption) (*Manager, error) {
	if gen == nil {
		return nil, errors.New("session: generator cannot be nil")
	}
	if hist == nil {
		return nil, errors.New("session: history store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	m := &Manager{
		generator: gen,
		history:   hist,
		logger:    logger.With(slog.String("component", "session_manager")),
		now:       time.Now,
		sessions:  make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Get returns the session for id, creating an idle one on first use.
func (m *Manager) Get(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		return s
	}
	s := newSession(id, m.generator, m.history, m.logger, m.now)
	m.sessions[id] = s
	m.logger.Debug("session created", "session_id", id)
	return s
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Prune drops sessions untouched for longer than maxIdle. Sessions with a
// generation in flight are kept. It returns the number removed.
func (m *Manager) Prune(maxIdle time.Duration) int {
	cutoff := m.now().Add(-maxIdle)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if s.idleSince(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		m.logger.Info("pruned idle sessions", "removed", removed, "remaining", len(m.sessions))
	}
	return removed
}

// RunPruner calls Prune every interval until ctx is done.
func (m *Manager) RunPruner(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Prune(maxIdle)
		}
	}
}
