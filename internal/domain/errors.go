// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity or user input fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyTranscript is returned when the transcript is empty or whitespace-only.
	ErrEmptyTranscript = errors.New("transcript cannot be empty")

	// ErrInvalidQuestionCount is returned when the requested quiz length is not allowed.
	ErrInvalidQuestionCount = errors.New("invalid question count")

	// ErrEmptyChapter is returned when a generated document has no textbook chapter.
	ErrEmptyChapter = errors.New("textbook chapter cannot be empty")

	// ErrMissingQuiz is returned when a generated document has no quiz array.
	ErrMissingQuiz = errors.New("quiz cannot be nil")

	// ErrInvalidQuestion is returned when a quiz question breaks its invariants.
	ErrInvalidQuestion = errors.New("invalid quiz question")

	// ErrInvalidFlashcard is returned when a flashcard has an empty side.
	ErrInvalidFlashcard = errors.New("invalid flashcard")
)

// ValidationError describes a single invalid field. It wraps one of the
// sentinel errors above so callers can match with errors.Is while still
// getting a readable message.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError for field with the given message.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap returns the wrapped sentinel, then ErrValidation.
func (e *ValidationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrValidation}
	}
	return []error{e.Err, ErrValidation}
}
