// Package history keeps the bounded, newest-first log of past generations
// and persists it as one JSON array under a single key of a store.KVStore.
//
// Persistence is best effort. Read failures at load time yield an empty log,
// and write failures are logged while the in-memory log keeps the change.
// Neither is ever returned to the caller.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/domain"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/store"
	"github.com/google/uuid"
)

// DefaultKey is the storage key holding the serialized log.
const DefaultKey = "tubetext_history"

// ErrEntryNotFound indicates that no history entry has the requested ID.
var ErrEntryNotFound = fmt.Errorf("%w: history entry", store.ErrNotFound)

// Store is the history log. It is safe for concurrent use.
type Store struct {
	kv       store.KVStore
	key      string
	capacity int
	now      func() time.Time
	newID    func() (string, error)
	logger   *slog.Logger

	// writeMu serializes mutations with their writes so the persisted log
	// never lags behind an older snapshot.
	writeMu sync.Mutex
	mu      sync.RWMutex
	entries []domain.HistoryEntry
}

// Option configures a Store.
type Option func(*Store)

// WithCapacity sets the maximum number of entries kept. Values below 1 are
// ignored.
func WithCapacity(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// WithKey sets the storage key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithClock replaces the time source used for entry timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator replaces the entry ID allocator.
func WithIDGenerator(newID func() (string, error)) Option {
	return func(s *Store) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// newUUIDv7 allocates a time-ordered unique ID.
func newUUIDv7() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// New creates a Store over kv and loads the persisted log once.
func New(ctx context.Context, kv store.KVStore, logger *slog.Logger, opts ...Option) (*Store, error) {
	if kv == nil {
		return nil, errors.New("history: kv store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{
		kv:       kv,
		key:      DefaultKey,
		capacity: domain.DefaultHistoryCapacity,
		now:      time.Now,
		newID:    newUUIDv7,
		logger:   logger.With(slog.String("component", "history_store")),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.Load(ctx)
	return s, nil
}

// Capacity returns the maximum number of entries kept.
func (s *Store) Capacity() int {
	return s.capacity
}

// Load replaces the in-memory log with the persisted one and returns it.
// A missing key yields an empty log; unreadable or unparsable data is
// logged and also yields an empty log.
func (s *Store) Load(ctx context.Context) []domain.HistoryEntry {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	entries := s.read(ctx)

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()

	return cloneEntries(entries)
}

func (s *Store) read(ctx context.Context) []domain.HistoryEntry {
	raw, found, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to read history, starting empty",
			"key", s.key,
			"error", err)
		return []domain.HistoryEntry{}
	}
	if !found || raw == "" {
		return []domain.HistoryEntry{}
	}

	var decoded []domain.HistoryEntry
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		s.logger.WarnContext(ctx, "failed to parse history, starting empty",
			"key", s.key,
			"error", store.NewStoreError("history", "load", s.key, "corrupt data", fmt.Errorf("%w: %v", store.ErrInvalidValue, err)))
		return []domain.HistoryEntry{}
	}

	entries := make([]domain.HistoryEntry, 0, len(decoded))
	dropped := 0
	for _, e := range decoded {
		if e.ID == "" {
			dropped++
			continue
		}
		entries = append(entries, normalizeEntry(e))
	}
	if dropped > 0 {
		s.logger.WarnContext(ctx, "dropped history entries without id", "count", dropped)
	}
	if len(entries) > s.capacity {
		entries = entries[:s.capacity]
	}
	return entries
}

// normalizeEntry fills fields that older or hand-edited data may lack.
func normalizeEntry(e domain.HistoryEntry) domain.HistoryEntry {
	if e.Document.Flashcards == nil {
		e.Document.Flashcards = []domain.Flashcard{}
	}
	if e.Document.Quiz == nil {
		e.Document.Quiz = []domain.QuizQuestion{}
	}
	if e.Title == "" {
		e.Title = e.Document.Title()
	}
	return e
}

// List returns a copy of the log, newest first.
func (s *Store) List() []domain.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneEntries(s.entries)
}

// Get returns the entry with the given ID.
func (s *Store) Get(id string) (domain.HistoryEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.ID == id {
			return e.Clone(), true
		}
	}
	return domain.HistoryEntry{}, false
}

// Save records a successful generation at the head of the log, evicting the
// oldest entries beyond capacity, and persists the whole log. The returned
// entry is in the log even when persistence fails.
func (s *Store) Save(
	ctx context.Context,
	doc domain.GeneratedDocument,
	sourceURL string,
	transcript string,
	requestedQuestionCount int,
) domain.HistoryEntry {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	id, err := s.newID()
	if err != nil {
		// uuid.NewV7 only fails when the random source does
		s.logger.ErrorContext(ctx, "failed to allocate history id, falling back to v4", "error", err)
		id = uuid.NewString()
	}

	entry := domain.HistoryEntry{
		ID:                     id,
		Timestamp:              s.now().UnixMilli(),
		SourceURL:              sourceURL,
		Transcript:             transcript,
		RequestedQuestionCount: requestedQuestionCount,
		Document:               doc,
		Title:                  doc.Title(),
	}
	entry = normalizeEntry(entry).Clone()

	s.mu.Lock()
	next := make([]domain.HistoryEntry, 0, s.capacity)
	next = append(next, entry)
	for _, e := range s.entries {
		if len(next) == s.capacity {
			break
		}
		next = append(next, e)
	}
	evicted := len(s.entries) + 1 - len(next)
	s.entries = next
	snapshot := cloneEntries(next)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "saved history entry",
		"entry_id", entry.ID,
		"title", entry.Title,
		"entries", len(snapshot),
		"evicted", evicted)

	s.persist(ctx, snapshot)
	return entry.Clone()
}

// Remove deletes the entry with the given ID and persists the log. An
// unknown ID changes nothing and writes nothing.
func (s *Store) Remove(ctx context.Context, id string) []domain.HistoryEntry {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	idx := -1
	for i, e := range s.entries {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		snapshot := cloneEntries(s.entries)
		s.mu.Unlock()
		return snapshot
	}

	next := make([]domain.HistoryEntry, 0, len(s.entries)-1)
	next = append(next, s.entries[:idx]...)
	next = append(next, s.entries[idx+1:]...)
	s.entries = next
	snapshot := cloneEntries(next)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "removed history entry", "entry_id", id, "entries", len(snapshot))

	s.persist(ctx, snapshot)
	return snapshot
}

// persist writes the whole log. Failures are logged, never returned.
func (s *Store) persist(ctx context.Context, entries []domain.HistoryEntry) {
	raw, err := json.Marshal(entries)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to encode history",
			"error", store.NewStoreError("history", "encode", s.key, "marshal failed", err))
		return
	}

	if err := s.kv.Set(ctx, s.key, string(raw)); err != nil {
		s.logger.WarnContext(ctx, "failed to persist history, keeping in-memory log",
			"key", s.key,
			"entries", len(entries),
			"error", err)
	}
}

func cloneEntries(entries []domain.HistoryEntry) []domain.HistoryEntry {
	out := make([]domain.HistoryEntry, len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	return out
}
