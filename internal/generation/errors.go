package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrGenerationFailed is returned when the provider call fails for any general
	// reason (network, authentication, non-2xx service response).
	ErrGenerationFailed = errors.New("failed to generate content from transcript")

	// ErrInvalidResponse is returned when the LLM response cannot be parsed or is
	// missing required fields after best-effort repair.
	ErrInvalidResponse = errors.New("malformed response from language model")

	// ErrContentBlocked is returned when the LLM blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")
)

// IsGenerationError reports whether err came from the remote boundary rather
// than from local input validation.
func IsGenerationError(err error) bool {
	return errors.Is(err, ErrGenerationFailed) ||
		errors.Is(err, ErrInvalidResponse) ||
		errors.Is(err, ErrContentBlocked)
}
