package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/domain"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/generation"
)

// MockGenerator implements generation.Generator for testing
type MockGenerator struct {
	// GenerateFn allows test cases to mock the Generate behavior
	GenerateFn func(ctx context.Context, transcript string, questionCount int) (*domain.GeneratedDocument, error)

	// Default response values
	Document *domain.GeneratedDocument
	Err      error

	// Call tracking for verification
	GenerateCalls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		// Count tracks how many times Generate was called
		Count int

		// Transcripts contains all transcripts passed to Generate calls
		Transcripts []string

		// QuestionCounts contains all question counts passed to Generate calls
		QuestionCounts []int
	}
}

var _ generation.Generator = (*MockGenerator)(nil)

// Generate implements the generation.Generator interface
func (m *MockGenerator) Generate(
	ctx context.Context,
	transcript string,
	questionCount int,
) (*domain.GeneratedDocument, error) {
	m.GenerateCalls.mu.Lock()
	m.GenerateCalls.Count++
	m.GenerateCalls.Transcripts = append(m.GenerateCalls.Transcripts, transcript)
	m.GenerateCalls.QuestionCounts = append(m.GenerateCalls.QuestionCounts, questionCount)
	m.GenerateCalls.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, transcript, questionCount)
	}

	return m.Document, m.Err
}

// CallCount returns how many times Generate was called.
func (m *MockGenerator) CallCount() int {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()
	return m.GenerateCalls.Count
}

// NewMockGeneratorWithDocument creates a MockGenerator that returns doc
func NewMockGeneratorWithDocument(doc *domain.GeneratedDocument) *MockGenerator {
	return &MockGenerator{
		Document: doc,
	}
}

// NewMockGeneratorWithError creates a MockGenerator that returns the specified error
func NewMockGeneratorWithError(err error) *MockGenerator {
	return &MockGenerator{
		Err: err,
	}
}

// NewMockGeneratorWithSampleDocuments creates a MockGenerator that answers
// every call with SampleDocument of the requested length.
func NewMockGeneratorWithSampleDocuments() *MockGenerator {
	return &MockGenerator{
		GenerateFn: func(ctx context.Context, transcript string, questionCount int) (*domain.GeneratedDocument, error) {
			return SampleDocument(questionCount), nil
		},
	}
}

// MockGeneratorThatFails creates a MockGenerator that simulates a generation failure
func MockGeneratorThatFails() *MockGenerator {
	return &MockGenerator{
		Err: generation.ErrGenerationFailed,
	}
}

// MockGeneratorWithContentBlocked creates a MockGenerator that simulates content being blocked
func MockGeneratorWithContentBlocked() *MockGenerator {
	return &MockGenerator{
		Err: generation.ErrContentBlocked,
	}
}

// Reset resets the call tracking state
func (m *MockGenerator) Reset() {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()

	m.GenerateCalls.Count = 0
	m.GenerateCalls.Transcripts = nil
	m.GenerateCalls.QuestionCounts = nil
}

// SampleDocument builds a valid document with questionCount questions and
// two flashcards.
func SampleDocument(questionCount int) *domain.GeneratedDocument {
	quiz := make([]domain.QuizQuestion, questionCount)
	for i := range quiz {
		quiz[i] = domain.QuizQuestion{
			Question:      fmt.Sprintf("Question %d?", i+1),
			Options:       []string{"A", "B", "C", "D"},
			CorrectAnswer: "B",
		}
	}
	return &domain.GeneratedDocument{
		TextbookChapter: "# Photosynthesis\n\n## Light reactions\n\nPlants turn **light** into sugar.",
		Flashcards: []domain.Flashcard{
			{Front: "Chlorophyll", Back: "Green pigment that absorbs light"},
			{Front: "Stomata", Back: "Pores for gas exchange"},
		},
		Quiz: quiz,
	}
}
