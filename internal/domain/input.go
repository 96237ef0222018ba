package domain

import (
	"fmt"
	"strings"
)

// DefaultQuestionCount is the quiz length used when none is requested.
const DefaultQuestionCount = 5

// AllowedQuestionCounts lists the quiz lengths a caller may request.
var AllowedQuestionCounts = []int{5, 10, 15, 20, 25, 30}

// IsAllowedQuestionCount reports whether n is one of AllowedQuestionCounts.
func IsAllowedQuestionCount(n int) bool {
	for _, allowed := range AllowedQuestionCounts {
		if n == allowed {
			return true
		}
	}
	return false
}

// ValidateTranscript rejects empty and whitespace-only transcripts.
func ValidateTranscript(transcript string) error {
	if strings.TrimSpace(transcript) == "" {
		return NewValidationError("",
			"Please paste the video transcript before generating.",
			ErrEmptyTranscript)
	}
	return nil
}

// ValidateQuestionCount rejects quiz lengths outside AllowedQuestionCounts.
func ValidateQuestionCount(n int) error {
	if !IsAllowedQuestionCount(n) {
		return NewValidationError("questionCount",
			fmt.Sprintf("must be one of %v, got %d", AllowedQuestionCounts, n),
			ErrInvalidQuestionCount)
	}
	return nil
}
