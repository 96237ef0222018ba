package domain

import (
	"fmt"
	"strings"
)

// QuizOptionCount is the number of answer options every quiz question carries.
const QuizOptionCount = 4

// QuizQuestion is a single multiple-choice question of a generated quiz.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// Validate checks that the question has text, exactly QuizOptionCount unique
// non-empty options, and that CorrectAnswer equals one of them.
func (q QuizQuestion) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return NewValidationError("question", "cannot be empty", ErrInvalidQuestion)
	}

	if len(q.Options) != QuizOptionCount {
		return NewValidationError("options",
			fmt.Sprintf("must contain exactly %d entries, got %d", QuizOptionCount, len(q.Options)),
			ErrInvalidQuestion)
	}

	seen := make(map[string]struct{}, len(q.Options))
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return NewValidationError("options", fmt.Sprintf("option %d is empty", i), ErrInvalidQuestion)
		}
		if _, dup := seen[opt]; dup {
			return NewValidationError("options", fmt.Sprintf("option %q is duplicated", opt), ErrInvalidQuestion)
		}
		seen[opt] = struct{}{}
	}

	if _, ok := seen[q.CorrectAnswer]; !ok {
		return NewValidationError("correctAnswer", "must be one of the options", ErrInvalidQuestion)
	}

	return nil
}

// IsCorrect reports whether answer is the correct option.
func (q QuizQuestion) IsCorrect(answer string) bool {
	return answer == q.CorrectAnswer
}

// Flashcard is a two-sided study card.
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Validate checks that both sides of the card carry text.
func (f Flashcard) Validate() error {
	if strings.TrimSpace(f.Front) == "" {
		return NewValidationError("front", "cannot be empty", ErrInvalidFlashcard)
	}
	if strings.TrimSpace(f.Back) == "" {
		return NewValidationError("back", "cannot be empty", ErrInvalidFlashcard)
	}
	return nil
}

// GeneratedDocument is the atomic unit produced by a generation call and
// stored in the history log.
type GeneratedDocument struct {
	TextbookChapter string         `json:"textbookChapter"`
	Flashcards      []Flashcard    `json:"flashcards"`
	Quiz            []QuizQuestion `json:"quiz"`
}

// Validate checks the document-level invariants and every quiz question.
// Flashcards are not validated; they are optional content.
func (d *GeneratedDocument) Validate() error {
	if strings.TrimSpace(d.TextbookChapter) == "" {
		return NewValidationError("textbookChapter", "cannot be empty", ErrEmptyChapter)
	}

	if d.Quiz == nil {
		return NewValidationError("quiz", "must be an array", ErrMissingQuiz)
	}

	for i, q := range d.Quiz {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("quiz[%d]: %w", i, err)
		}
	}

	return nil
}

// Title returns the heading derived from the textbook chapter.
func (d *GeneratedDocument) Title() string {
	return DeriveTitle(d.TextbookChapter)
}

// Clone returns a deep copy so callers can hand documents out without
// sharing the underlying slices.
func (d *GeneratedDocument) Clone() *GeneratedDocument {
	if d == nil {
		return nil
	}

	clone := &GeneratedDocument{
		TextbookChapter: d.TextbookChapter,
		Flashcards:      make([]Flashcard, len(d.Flashcards)),
		Quiz:            make([]QuizQuestion, len(d.Quiz)),
	}
	copy(clone.Flashcards, d.Flashcards)
	for i, q := range d.Quiz {
		clone.Quiz[i] = QuizQuestion{
			Question:      q.Question,
			Options:       append([]string(nil), q.Options...),
			CorrectAnswer: q.CorrectAnswer,
		}
	}

	return clone
}
