// Package session holds the per-browser generation state machine.
//
// A Session moves Idle -> Requesting -> {Succeeded, Failed}. Only one
// generation may be in flight per session. Reset returns to Idle at any
// time; a result that arrives after a reset is discarded rather than shown.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/domain"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/generation"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/history"
)

// State is the lifecycle position of a Session.
type State string

const (
	StateIdle       State = "idle"
	StateRequesting State = "requesting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// GenerationFailedMessage is the single message shown for any generation error.
const GenerationFailedMessage = "Failed to generate content from the transcript. " +
	"The model may be unavailable or the input might be invalid."

var (
	// ErrGenerationInFlight is returned by Submit and Restore while a
	// generation is outstanding.
	ErrGenerationInFlight = errors.New("a generation is already in progress")

	// ErrResultDiscarded is returned by Submit when the session was reset
	// while its generation was in flight.
	ErrResultDiscarded = errors.New("generation result discarded after reset")
)

// HistoryStore is the subset of *history.Store a Session needs.
type HistoryStore interface {
	Save(ctx context.Context, doc domain.GeneratedDocument, sourceURL, transcript string, requestedQuestionCount int) domain.HistoryEntry
	Get(id string) (domain.HistoryEntry, bool)
}

var _ HistoryStore = (*history.Store)(nil)

// Input is what the user submits for generation.
type Input struct {
	SourceURL     string
	Transcript    string
	QuestionCount int
}

// View is a read-only snapshot of a Session, shaped for the JSON API.
type View struct {
	State         State                     `json:"state"`
	Document      *domain.GeneratedDocument `json:"document,omitempty"`
	SourceURL     string                    `json:"sourceUrl,omitempty"`
	VideoID       string                    `json:"videoId,omitempty"`
	Title         string                    `json:"title,omitempty"`
	EntryID       string                    `json:"entryId,omitempty"`
	Transcript    string                    `json:"transcript,omitempty"`
	QuestionCount int                       `json:"questionCount"`
	Error         string                    `json:"error,omitempty"`
}

// Session is one browser's generation state. It is safe for concurrent use.
type Session struct {
	id        string
	generator generation.Generator
	history   HistoryStore
	logger    *slog.Logger
	now       func() time.Time

	mu sync.Mutex
	// epoch increments on every Submit and Reset; a generation whose epoch
	// is stale on return is discarded.
	epoch         uint64
	state         State
	document      *domain.GeneratedDocument
	sourceURL     string
	transcript    string
	questionCount int
	entryID       string
	errMessage    string
	lastSeen      time.Time
}

func newSession(id string, gen generation.Generator, hist HistoryStore, logger *slog.Logger, now func() time.Time) *Session {
	return &Session{
		id:            id,
		generator:     gen,
		history:       hist,
		logger:        logger.With(slog.String("session_id", id)),
		now:           now,
		state:         StateIdle,
		questionCount: domain.DefaultQuestionCount,
		lastSeen:      now(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Snapshot returns the current view.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = s.now()
	return s.viewLocked()
}

// Submit validates in and, if valid, runs one generation. On success the
// document is saved to history and displayed. The returned View reflects the
// state after the call, and the error is non-nil whenever the session did not
// end in StateSucceeded.
func (s *Session) Submit(ctx context.Context, in Input) (View, error) {
	if in.QuestionCount == 0 {
		in.QuestionCount = domain.DefaultQuestionCount
	}

	s.mu.Lock()
	s.lastSeen = s.now()
	if s.state == StateRequesting {
		view := s.viewLocked()
		s.mu.Unlock()
		return view, ErrGenerationInFlight
	}

	s.sourceURL = in.SourceURL
	s.transcript = in.Transcript
	s.questionCount = in.QuestionCount
	s.document = nil
	s.entryID = ""

	if err := validateInput(in); err != nil {
		s.state = StateFailed
		s.errMessage = err.Error()
		view := s.viewLocked()
		s.mu.Unlock()
		return view, err
	}

	s.epoch++
	epoch := s.epoch
	s.state = StateRequesting
	s.errMessage = ""
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "generation started", "question_count", in.QuestionCount)

	doc, genErr := s.generator.Generate(ctx, in.Transcript, in.QuestionCount)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.epoch != epoch {
		s.logger.InfoContext(ctx, "discarding generation result after reset", "error", genErr)
		return s.viewLocked(), ErrResultDiscarded
	}

	if genErr != nil {
		s.state = StateFailed
		s.errMessage = GenerationFailedMessage
		var validationErr *domain.ValidationError
		if errors.As(genErr, &validationErr) {
			s.errMessage = validationErr.Error()
		}
		s.logger.ErrorContext(ctx, "generation failed", "error", genErr)
		return s.viewLocked(), genErr
	}

	// The write outlives a cancelled request so a completed generation is
	// still recorded.
	entry := s.history.Save(context.WithoutCancel(ctx), *doc, in.SourceURL, in.Transcript, in.QuestionCount)

	s.state = StateSucceeded
	s.document = doc.Clone()
	s.entryID = entry.ID
	s.logger.InfoContext(ctx, "generation succeeded",
		"entry_id", entry.ID,
		"title", entry.Title,
		"quiz_questions", len(doc.Quiz),
		"flashcards", len(doc.Flashcards))

	return s.viewLocked(), nil
}

// Reset returns the session to StateIdle. A generation in flight keeps
// running upstream, but its result is discarded when it arrives.
func (s *Session) Reset() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRequesting {
		s.logger.Info("reset while generation in flight")
	}

	s.epoch++
	s.lastSeen = s.now()
	s.state = StateIdle
	s.document = nil
	s.sourceURL = ""
	s.transcript = ""
	s.questionCount = domain.DefaultQuestionCount
	s.entryID = ""
	s.errMessage = ""
	return s.viewLocked()
}

// Restore displays a stored history entry without calling the generator.
func (s *Session) Restore(entryID string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = s.now()

	if s.state == StateRequesting {
		return s.viewLocked(), ErrGenerationInFlight
	}

	entry, ok := s.history.Get(entryID)
	if !ok {
		return s.viewLocked(), history.ErrEntryNotFound
	}

	s.state = StateSucceeded
	s.document = entry.Document.Clone()
	s.sourceURL = entry.SourceURL
	s.transcript = entry.Transcript
	s.questionCount = entry.RequestedQuestionCount
	if s.questionCount == 0 {
		s.questionCount = domain.DefaultQuestionCount
	}
	s.entryID = entry.ID
	s.errMessage = ""
	return s.viewLocked(), nil
}

func (s *Session) viewLocked() View {
	v := View{
		State:         s.state,
		Document:      s.document.Clone(),
		SourceURL:     s.sourceURL,
		VideoID:       domain.ExtractVideoID(s.sourceURL),
		EntryID:       s.entryID,
		Transcript:    s.transcript,
		QuestionCount: s.questionCount,
		Error:         s.errMessage,
	}
	if s.document != nil {
		v.Title = s.document.Title()
	}
	return v
}

func (s *Session) idleSince(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state != StateRequesting && s.lastSeen.Before(cutoff)
}

func validateInput(in Input) error {
	if err := domain.ValidateTranscript(in.Transcript); err != nil {
		return err
	}
	return domain.ValidateQuestionCount(in.QuestionCount)
}
