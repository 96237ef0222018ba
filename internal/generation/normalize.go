package generation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/domain"
)

// Normalize parses the raw response text of a Backend into a
// GeneratedDocument. It fails with ErrInvalidResponse when the text is not a
// JSON object, when textbookChapter is not a non-empty string, when quiz is
// not an array, or when a quiz question cannot be repaired into a valid one.
// Missing or malformed flashcards degrade to an empty slice.
//
// The returned warnings describe repairs that were applied; callers log them.
func Normalize(raw string, questionCount int) (*domain.GeneratedDocument, []string, error) {
	text := stripCodeFence(strings.TrimSpace(raw))
	if text == "" {
		return nil, nil, fmt.Errorf("%w: empty response", ErrInvalidResponse)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return nil, nil, fmt.Errorf("%w: failed to parse JSON response: %v", ErrInvalidResponse, err)
	}
	if fields == nil {
		return nil, nil, fmt.Errorf("%w: response is not a JSON object", ErrInvalidResponse)
	}

	var warnings []string

	var chapter string
	rawChapter, ok := fields[FieldTextbookChapter]
	if ok {
		if err := json.Unmarshal(rawChapter, &chapter); err != nil {
			ok = false
		}
	}
	chapter = strings.TrimSpace(chapter)
	if !ok || chapter == "" {
		return nil, nil, fmt.Errorf("%w: %s must be a non-empty string", ErrInvalidResponse, FieldTextbookChapter)
	}

	rawQuiz, ok := fields[FieldQuiz]
	if !ok || !isJSONArray(rawQuiz) {
		return nil, nil, fmt.Errorf("%w: %s must be an array", ErrInvalidResponse, FieldQuiz)
	}
	var rawQuestions []json.RawMessage
	if err := json.Unmarshal(rawQuiz, &rawQuestions); err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrInvalidResponse, FieldQuiz, err)
	}

	quiz := make([]domain.QuizQuestion, 0, len(rawQuestions))
	for i, rq := range rawQuestions {
		var q domain.QuizQuestion
		if err := json.Unmarshal(rq, &q); err != nil {
			return nil, nil, fmt.Errorf("%w: quiz[%d]: %v", ErrInvalidResponse, i, err)
		}
		q, repaired := repairQuestion(q)
		if repaired {
			warnings = append(warnings, fmt.Sprintf("quiz[%d]: correct answer matched to option by case-insensitive comparison", i))
		}
		if err := q.Validate(); err != nil {
			return nil, nil, fmt.Errorf("%w: quiz[%d]: %v", ErrInvalidResponse, i, err)
		}
		quiz = append(quiz, q)
	}

	if questionCount > 0 {
		switch {
		case len(quiz) > questionCount:
			warnings = append(warnings, fmt.Sprintf("quiz had %d questions, truncated to %d", len(quiz), questionCount))
			quiz = quiz[:questionCount]
		case len(quiz) < questionCount:
			warnings = append(warnings, fmt.Sprintf("quiz has %d questions, %d requested", len(quiz), questionCount))
		}
	}

	flashcards, cardWarnings := normalizeFlashcards(fields[FieldFlashcards])
	warnings = append(warnings, cardWarnings...)

	return &domain.GeneratedDocument{
		TextbookChapter: chapter,
		Flashcards:      flashcards,
		Quiz:            quiz,
	}, warnings, nil
}

// normalizeFlashcards decodes the flashcards field, dropping anything that is
// not a card with two non-empty sides. It never fails.
func normalizeFlashcards(raw json.RawMessage) ([]domain.Flashcard, []string) {
	cards := []domain.Flashcard{}
	if raw == nil {
		return cards, []string{"flashcards missing, defaulted to empty"}
	}
	if !isJSONArray(raw) {
		return cards, []string{"flashcards is not an array, defaulted to empty"}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return cards, []string{"flashcards could not be decoded, defaulted to empty"}
	}

	var warnings []string
	for i, item := range items {
		var fc domain.Flashcard
		if err := json.Unmarshal(item, &fc); err != nil {
			warnings = append(warnings, fmt.Sprintf("flashcards[%d] dropped: %v", i, err))
			continue
		}
		fc.Front = strings.TrimSpace(fc.Front)
		fc.Back = strings.TrimSpace(fc.Back)
		if err := fc.Validate(); err != nil {
			warnings = append(warnings, fmt.Sprintf("flashcards[%d] dropped: %v", i, err))
			continue
		}
		cards = append(cards, fc)
	}
	return cards, warnings
}

// repairQuestion trims every field and, when the correct answer matches an
// option only case-insensitively, replaces it with that option.
func repairQuestion(q domain.QuizQuestion) (domain.QuizQuestion, bool) {
	q.Question = strings.TrimSpace(q.Question)
	q.CorrectAnswer = strings.TrimSpace(q.CorrectAnswer)
	options := make([]string, len(q.Options))
	for i, opt := range q.Options {
		options[i] = strings.TrimSpace(opt)
	}
	q.Options = options

	match := ""
	for _, opt := range options {
		if opt == q.CorrectAnswer {
			return q, false
		}
		if strings.EqualFold(opt, q.CorrectAnswer) {
			if match != "" {
				return q, false
			}
			match = opt
		}
	}
	if match == "" {
		return q, false
	}
	q.CorrectAnswer = match
	return q, true
}

// stripCodeFence removes a surrounding ```json ... ``` fence that some
// models add despite being asked for raw JSON.
func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") || !strings.HasSuffix(text, "```") || len(text) < 6 {
		return text
	}
	inner := strings.TrimSuffix(text[3:], "```")
	if nl := strings.IndexByte(inner, '\n'); nl >= 0 {
		// drop the info string, e.g. "json"
		if !strings.ContainsAny(inner[:nl], "{[") {
			inner = inner[nl+1:]
		}
	}
	return strings.TrimSpace(inner)
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
