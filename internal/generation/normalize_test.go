package generation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validQuestion = `{"question": "What do plants absorb?", "options": ["Light","Sound","Heat","Salt"], "correctAnswer": "Light"}`

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		raw           string
		questionCount int
		wantErr       bool
		check         func(t *testing.T, raw string)
	}{
		{
			name:          "well formed",
			raw:           `{"textbookChapter": "# Plants\nText", "flashcards": [{"front": "Leaf", "back": "Organ"}], "quiz": [` + validQuestion + `]}`,
			questionCount: 1,
		},
		{
			name:          "code fenced",
			raw:           "```json\n{\"textbookChapter\": \"# Plants\", \"flashcards\": [], \"quiz\": [" + validQuestion + "]}\n```",
			questionCount: 1,
		},
		{name: "empty", raw: "   ", questionCount: 5, wantErr: true},
		{name: "not an object", raw: `[1, 2, 3]`, questionCount: 5, wantErr: true},
		{name: "json null", raw: `null`, questionCount: 5, wantErr: true},
		{name: "missing chapter", raw: `{"quiz": []}`, questionCount: 5, wantErr: true},
		{name: "blank chapter", raw: `{"textbookChapter": "  ", "quiz": []}`, questionCount: 5, wantErr: true},
		{name: "chapter not a string", raw: `{"textbookChapter": 42, "quiz": []}`, questionCount: 5, wantErr: true},
		{name: "missing quiz", raw: `{"textbookChapter": "# T"}`, questionCount: 5, wantErr: true},
		{name: "quiz not an array", raw: `{"textbookChapter": "# T", "quiz": {"a": 1}}`, questionCount: 5, wantErr: true},
		{
			name:          "answer not among options",
			raw:           `{"textbookChapter": "# T", "quiz": [{"question": "Q", "options": ["a","b","c","d"], "correctAnswer": "e"}]}`,
			questionCount: 1,
			wantErr:       true,
		},
		{
			name:          "three options",
			raw:           `{"textbookChapter": "# T", "quiz": [{"question": "Q", "options": ["a","b","c"], "correctAnswer": "a"}]}`,
			questionCount: 1,
			wantErr:       true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			doc, _, err := Normalize(tc.raw, tc.questionCount)
			if tc.wantErr {
				assert.Nil(t, doc)
				assert.True(t, errors.Is(err, ErrInvalidResponse), "expected ErrInvalidResponse, got %v", err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, doc)
			assert.NoError(t, doc.Validate())
		})
	}
}

func TestNormalize_RepairsAnswerCase(t *testing.T) {
	t.Parallel()

	raw := `{"textbookChapter": "# T", "flashcards": [], "quiz": [
		{"question": " Q ", "options": [" Alpha ","Beta","Gamma","Delta"], "correctAnswer": "alpha"}
	]}`

	doc, warnings, err := Normalize(raw, 1)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", doc.Quiz[0].CorrectAnswer)
	assert.Equal(t, "Q", doc.Quiz[0].Question)
	assert.Len(t, warnings, 1)
}

func TestNormalize_QuizLength(t *testing.T) {
	t.Parallel()

	five := strings.Repeat(validQuestion+",", 4) + validQuestion
	raw := `{"textbookChapter": "# T", "flashcards": [], "quiz": [` + five + `]}`

	doc, warnings, err := Normalize(raw, 3)
	require.NoError(t, err)
	assert.Len(t, doc.Quiz, 3, "Longer quiz is truncated to the requested count")
	assert.NotEmpty(t, warnings)

	doc, warnings, err = Normalize(raw, 10)
	require.NoError(t, err)
	assert.Len(t, doc.Quiz, 5, "Shorter quiz is kept as is")
	assert.NotEmpty(t, warnings)
}

func TestNormalize_Flashcards(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		field     string
		wantCards int
	}{
		{name: "missing", field: ``, wantCards: 0},
		{name: "null", field: `"flashcards": null,`, wantCards: 0},
		{name: "object", field: `"flashcards": {"front": "a"},`, wantCards: 0},
		{name: "drops blank cards", field: `"flashcards": [{"front": "a", "back": "b"}, {"front": "", "back": "c"}, 7],`, wantCards: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			raw := `{"textbookChapter": "# T", ` + tc.field + ` "quiz": []}`
			doc, _, err := Normalize(raw, 5)
			require.NoError(t, err)
			require.NotNil(t, doc.Flashcards)
			assert.Len(t, doc.Flashcards, tc.wantCards)
		})
	}
}

func TestStripCodeFence(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `{"a":1}`, stripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence("```{\"a\":1}```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence(`{"a":1}`))
}

func TestDocumentSchema(t *testing.T) {
	t.Parallel()

	schema := DocumentSchema(20)

	assert.Equal(t, TypeObject, schema.Type)
	assert.Len(t, schema.Properties, 3)
	assert.ElementsMatch(t, []string{FieldTextbookChapter, FieldFlashcards, FieldQuiz}, schema.Required)

	quiz := schema.Properties[FieldQuiz]
	require.NotNil(t, quiz.MinItems)
	require.NotNil(t, quiz.MaxItems)
	assert.Equal(t, 20, *quiz.MinItems)
	assert.Equal(t, 20, *quiz.MaxItems)

	options := quiz.Items.Properties["options"]
	assert.Equal(t, 4, *options.MinItems)
	assert.Equal(t, 4, *options.MaxItems)
}

func TestBuildRequest(t *testing.T) {
	t.Parallel()

	req, err := BuildRequest(nil, "the mitochondria is the powerhouse", 10)
	require.NoError(t, err)

	assert.Equal(t, SystemInstruction, req.SystemInstruction)
	assert.Contains(t, req.UserPrompt, "the mitochondria is the powerhouse")
	assert.Contains(t, req.UserPrompt, "10")
	assert.Equal(t, 10, *req.ResponseSchema.Properties[FieldQuiz].MaxItems)
}

func TestLoadPromptTemplate_Errors(t *testing.T) {
	t.Parallel()

	_, err := LoadPromptTemplate("/nonexistent/prompt.tmpl")
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}
