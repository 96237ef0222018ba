package mocks_test

import (
	"context"
	"errors"
	"testing"

	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/domain"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/generation"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockGenerator(t *testing.T) {
	t.Parallel()

	t.Run("Sample documents", func(t *testing.T) {
		t.Parallel()

		mockGen := mocks.NewMockGeneratorWithSampleDocuments()
		doc, err := mockGen.Generate(context.Background(), "transcript", 10)

		require.NoError(t, err)
		require.NoError(t, doc.Validate(), "Sample document should satisfy domain invariants")
		assert.Len(t, doc.Quiz, 10)
		assert.Equal(t, "Photosynthesis", doc.Title())
		assert.Equal(t, 1, mockGen.CallCount())
		assert.Equal(t, []string{"transcript"}, mockGen.GenerateCalls.Transcripts)
		assert.Equal(t, []int{10}, mockGen.GenerateCalls.QuestionCounts)
	})

	t.Run("Error cases", func(t *testing.T) {
		t.Parallel()

		_, err := mocks.MockGeneratorThatFails().Generate(context.Background(), "t", 5)
		assert.True(t, errors.Is(err, generation.ErrGenerationFailed))

		_, err = mocks.MockGeneratorWithContentBlocked().Generate(context.Background(), "t", 5)
		assert.True(t, errors.Is(err, generation.ErrContentBlocked))
	})

	t.Run("Custom function and reset", func(t *testing.T) {
		t.Parallel()

		want := &domain.GeneratedDocument{TextbookChapter: "# X", Quiz: []domain.QuizQuestion{}}
		mockGen := &mocks.MockGenerator{
			GenerateFn: func(ctx context.Context, transcript string, questionCount int) (*domain.GeneratedDocument, error) {
				return want, nil
			},
		}

		got, err := mockGen.Generate(context.Background(), "t", 5)
		require.NoError(t, err)
		assert.Same(t, want, got)

		mockGen.Reset()
		assert.Equal(t, 0, mockGen.CallCount())
		assert.Empty(t, mockGen.GenerateCalls.Transcripts)
	})
}

func TestMockBackend(t *testing.T) {
	t.Parallel()

	backend := &mocks.MockBackend{Response: `{"ok":true}`}
	raw, err := backend.Complete(context.Background(), generation.Request{UserPrompt: "p", QuestionCount: 5})

	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, raw)
	require.Len(t, backend.Requests(), 1)
	assert.Equal(t, "p", backend.Requests()[0].UserPrompt)
	assert.Equal(t, "mock", backend.Name())
}
