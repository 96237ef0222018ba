package api

import (
	"errors"
	"net/http"

	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/api/shared"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/domain"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/generation"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/history"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/session"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Bad request errors
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	// Not found errors
	case errors.Is(err, history.ErrEntryNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, session.ErrGenerationInFlight),
		errors.Is(err, session.ErrResultDiscarded):
		return http.StatusConflict

	// Upstream model errors
	case generation.IsGenerationError(err):
		return http.StatusBadGateway

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return validationErr.Error()

	case errors.Is(err, history.ErrEntryNotFound):
		return "History entry not found"

	case errors.Is(err, session.ErrGenerationInFlight):
		return "A generation is already in progress"

	case errors.Is(err, session.ErrResultDiscarded):
		return "The generation was cancelled by a reset"

	case generation.IsGenerationError(err):
		return session.GenerationFailedMessage

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the mapped status and safe message for err, logging
// the redacted details. A non-empty defaultMsg replaces the message for
// errors without a specific mapping.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)
	msg := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && defaultMsg != "" {
		msg = defaultMsg
	}

	shared.RespondWithErrorAndLog(w, r, status, msg, err)
}
