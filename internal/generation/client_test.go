package generation_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/domain"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/generation"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestLogger creates a logger for testing
func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// schemaFollowingBackend answers with a well-formed document sized by the
// request's quiz length.
func schemaFollowingBackend() *mocks.MockBackend {
	return &mocks.MockBackend{
		CompleteFn: func(ctx context.Context, req generation.Request) (string, error) {
			raw, err := json.Marshal(mocks.SampleDocument(req.QuestionCount))
			return string(raw), err
		},
	}
}

func newClient(t *testing.T, backend generation.Backend) *generation.Client {
	t.Helper()
	client, err := generation.NewClient(backend, nil, newTestLogger())
	require.NoError(t, err, "Failed to create client")
	return client
}

func TestClientGenerate_QuizMatchesRequestedCount(t *testing.T) {
	t.Parallel()

	client := newClient(t, schemaFollowingBackend())

	for _, count := range domain.AllowedQuestionCounts {
		t.Run(fmt.Sprintf("count_%d", count), func(t *testing.T) {
			doc, err := client.Generate(context.Background(), "so today we talk about plants", count)
			require.NoError(t, err)
			require.Len(t, doc.Quiz, count, "Quiz length should equal requested count")
			for i, q := range doc.Quiz {
				assert.Contains(t, q.Options, q.CorrectAnswer, "quiz[%d] correct answer should be an option", i)
			}
		})
	}
}

func TestClientGenerate_EmptyTranscriptNeverCallsBackend(t *testing.T) {
	t.Parallel()

	backend := schemaFollowingBackend()
	client := newClient(t, backend)

	for _, transcript := range []string{"", "   \n\t"} {
		doc, err := client.Generate(context.Background(), transcript, 5)

		assert.Nil(t, doc)
		assert.True(t, errors.Is(err, domain.ErrEmptyTranscript), "expected ErrEmptyTranscript, got %v", err)
		var verr *domain.ValidationError
		assert.True(t, errors.As(err, &verr), "expected a *domain.ValidationError")
		assert.False(t, generation.IsGenerationError(err), "validation errors are not generation errors")
	}

	assert.Empty(t, backend.Requests(), "Backend must not be called for empty transcripts")
}

func TestClientGenerate_InvalidQuestionCountNeverCallsBackend(t *testing.T) {
	t.Parallel()

	backend := schemaFollowingBackend()
	client := newClient(t, backend)

	_, err := client.Generate(context.Background(), "transcript", 7)
	assert.True(t, errors.Is(err, domain.ErrInvalidQuestionCount))
	assert.Empty(t, backend.Requests())
}

func TestClientGenerate_MalformedJSON(t *testing.T) {
	t.Parallel()

	client := newClient(t, &mocks.MockBackend{Response: "Sure! Here is your chapter: {not json"})

	doc, err := client.Generate(context.Background(), "transcript", 5)

	assert.Nil(t, doc, "No partial document on malformed response")
	assert.True(t, errors.Is(err, generation.ErrInvalidResponse), "expected ErrInvalidResponse, got %v", err)
	assert.True(t, generation.IsGenerationError(err))
}

func TestClientGenerate_MissingFlashcardsDefaultsToEmpty(t *testing.T) {
	t.Parallel()

	raw := `{"textbookChapter": "# Cells\nBody", "quiz": [
		{"question": "Q?", "options": ["a","b","c","d"], "correctAnswer": "c"}
	]}`
	client := newClient(t, &mocks.MockBackend{Response: raw})

	doc, err := client.Generate(context.Background(), "transcript", 5)

	require.NoError(t, err)
	require.NotNil(t, doc.Flashcards, "Flashcards should be normalized to an empty slice")
	assert.Empty(t, doc.Flashcards)
	assert.Len(t, doc.Quiz, 1, "Shorter quiz is tolerated")
}

func TestClientGenerate_BackendErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		backendErr error
		wantErr    error
	}{
		{name: "network failure", backendErr: errors.New("dial tcp: connection refused"), wantErr: generation.ErrGenerationFailed},
		{name: "content blocked", backendErr: fmt.Errorf("%w: safety", generation.ErrContentBlocked), wantErr: generation.ErrContentBlocked},
		{name: "invalid response", backendErr: fmt.Errorf("%w: no candidates", generation.ErrInvalidResponse), wantErr: generation.ErrInvalidResponse},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			backend := &mocks.MockBackend{Err: tc.backendErr}
			client := newClient(t, backend)

			doc, err := client.Generate(context.Background(), "transcript", 5)
			assert.Nil(t, doc)
			assert.True(t, errors.Is(err, tc.wantErr), "expected %v, got %v", tc.wantErr, err)
			assert.Len(t, backend.Requests(), 1, "Backend is called exactly once, no retry")
		})
	}
}

func TestClientGenerate_RequestCarriesTranscriptAndSchema(t *testing.T) {
	t.Parallel()

	backend := schemaFollowingBackend()
	client := newClient(t, backend)

	transcript := "Line one.\nLine <two> & \"three\"."
	_, err := client.Generate(context.Background(), transcript, 15)
	require.NoError(t, err)

	requests := backend.Requests()
	require.Len(t, requests, 1)
	req := requests[0]
	assert.Equal(t, generation.SystemInstruction, req.SystemInstruction)
	assert.Contains(t, req.UserPrompt, transcript, "Transcript must be embedded verbatim")
	assert.Contains(t, req.UserPrompt, "15")
	assert.Equal(t, 15, req.QuestionCount)
	require.NotNil(t, req.ResponseSchema)
	assert.Equal(t, 15, *req.ResponseSchema.Properties[generation.FieldQuiz].MinItems)
}

func TestNewClient(t *testing.T) {
	t.Parallel()

	_, err := generation.NewClient(nil, nil, nil)
	assert.True(t, errors.Is(err, generation.ErrInvalidConfig))

	path := filepath.Join(t.TempDir(), "prompt.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("Make {{.QuestionCount}} questions from: {{.Transcript}}"), 0600))
	tmpl, err := generation.LoadPromptTemplate(path)
	require.NoError(t, err)

	backend := schemaFollowingBackend()
	client, err := generation.NewClient(backend, tmpl, nil)
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "abc", 5)
	require.NoError(t, err)
	assert.Equal(t, "Make 5 questions from: abc", backend.Requests()[0].UserPrompt)
}
