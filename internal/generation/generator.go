package generation

import (
	"context"

	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/domain"
)

// Generator defines the interface for turning a transcript into a study packet.
// This interface serves as a boundary between the application core and
// external AI/LLM services, following the hexagonal architecture pattern.
type Generator interface {
	// Generate creates a textbook chapter, flashcards and a quiz with
	// requestedQuestionCount questions from transcript.
	//
	// Returns a *domain.ValidationError before any I/O when the input is
	// invalid, or an error wrapping one of the sentinels in errors.go when the
	// provider call or the response fails.
	Generate(ctx context.Context, transcript string, requestedQuestionCount int) (*domain.GeneratedDocument, error)
}

// Backend is the provider capability: it sends one request and returns the
// raw response text. Implementations live under internal/platform.
type Backend interface {
	// Name identifies the provider in logs, e.g. "gemini".
	Name() string

	// Complete performs a single request/response round trip.
	Complete(ctx context.Context, req Request) (string, error)
}
