package openai

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/config"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/generation"
	goopenai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChat struct {
	resp  goopenai.ChatCompletionResponse
	err   error
	calls []goopenai.ChatCompletionRequest
}

func (f *fakeChat) CreateChatCompletion(
	ctx context.Context,
	req goopenai.ChatCompletionRequest,
) (goopenai.ChatCompletionResponse, error) {
	f.calls = append(f.calls, req)
	return f.resp, f.err
}

func reply(content string, finish goopenai.FinishReason) goopenai.ChatCompletionResponse {
	return goopenai.ChatCompletionResponse{
		Choices: []goopenai.ChatCompletionChoice{{
			Message:      goopenai.ChatCompletionMessage{Role: goopenai.ChatMessageRoleAssistant, Content: content},
			FinishReason: finish,
		}},
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestBackendComplete_SendsRequest(t *testing.T) {
	t.Parallel()

	fake := &fakeChat{resp: reply(`{"textbookChapter":"# T"}`, goopenai.FinishReasonStop)}
	backend := newBackend(testLogger(), fake, "gpt-4o-mini")
	req, err := generation.BuildRequest(nil, "a transcript", 20)
	require.NoError(t, err)

	text, err := backend.Complete(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, `{"textbookChapter":"# T"}`, text)
	require.Len(t, fake.calls, 1)

	sent := fake.calls[0]
	assert.Equal(t, "gpt-4o-mini", sent.Model)
	require.Len(t, sent.Messages, 2)
	assert.Equal(t, goopenai.ChatMessageRoleSystem, sent.Messages[0].Role)
	assert.Equal(t, generation.SystemInstruction, sent.Messages[0].Content)
	assert.Equal(t, goopenai.ChatMessageRoleUser, sent.Messages[1].Role)
	assert.Equal(t, req.UserPrompt, sent.Messages[1].Content)

	require.NotNil(t, sent.ResponseFormat)
	assert.Equal(t, goopenai.ChatCompletionResponseFormatTypeJSONSchema, sent.ResponseFormat.Type)
	require.NotNil(t, sent.ResponseFormat.JSONSchema)

	raw, err := sent.ResponseFormat.JSONSchema.Schema.MarshalJSON()
	require.NoError(t, err)
	var schema map[string]any
	require.NoError(t, json.Unmarshal(raw, &schema))
	assert.Equal(t, "object", schema["type"])
	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, props, 3)
	quiz := props[generation.FieldQuiz].(map[string]any)
	assert.EqualValues(t, 20, quiz["minItems"])
	assert.EqualValues(t, 20, quiz["maxItems"])
}

func TestBackendComplete_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		resp    goopenai.ChatCompletionResponse
		err     error
		wantErr error
	}{
		{
			name:    "api error",
			err:     &goopenai.APIError{HTTPStatusCode: 500, Type: "server_error", Message: "boom"},
			wantErr: generation.ErrGenerationFailed,
		},
		{
			name:    "no choices",
			resp:    goopenai.ChatCompletionResponse{},
			wantErr: generation.ErrInvalidResponse,
		},
		{
			name:    "content filter",
			resp:    reply("", goopenai.FinishReasonContentFilter),
			wantErr: generation.ErrContentBlocked,
		},
		{
			name: "refusal",
			resp: goopenai.ChatCompletionResponse{Choices: []goopenai.ChatCompletionChoice{{
				Message: goopenai.ChatCompletionMessage{Refusal: "I can't help with that."},
			}}},
			wantErr: generation.ErrContentBlocked,
		},
		{
			name:    "empty content",
			resp:    reply("", goopenai.FinishReasonStop),
			wantErr: generation.ErrInvalidResponse,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			fake := &fakeChat{resp: tc.resp, err: tc.err}
			backend := newBackend(testLogger(), fake, "gpt-4o-mini")

			text, err := backend.Complete(context.Background(), generation.Request{UserPrompt: "p"})

			assert.Empty(t, text)
			assert.True(t, errors.Is(err, tc.wantErr), "expected %v, got %v", tc.wantErr, err)
			assert.Len(t, fake.calls, 1)
		})
	}
}

func TestBackendComplete_NoSchemaFallsBackToJSONObject(t *testing.T) {
	t.Parallel()

	fake := &fakeChat{resp: reply(`{}`, goopenai.FinishReasonStop)}
	backend := newBackend(testLogger(), fake, "gpt-4o-mini")

	_, err := backend.Complete(context.Background(), generation.Request{UserPrompt: "p"})
	require.NoError(t, err)
	assert.Equal(t, goopenai.ChatCompletionResponseFormatTypeJSONObject, fake.calls[0].ResponseFormat.Type)
}

func TestNewBackend(t *testing.T) {
	t.Parallel()

	_, err := NewBackend(testLogger(), config.LLMConfig{OpenAIModelName: "gpt-4o-mini"})
	assert.True(t, errors.Is(err, generation.ErrInvalidConfig))

	_, err = NewBackend(testLogger(), config.LLMConfig{OpenAIAPIKey: "sk-test"})
	assert.True(t, errors.Is(err, generation.ErrInvalidConfig))

	_, err = NewBackend(nil, config.LLMConfig{})
	assert.Error(t, err)

	backend, err := NewBackend(testLogger(), config.LLMConfig{
		OpenAIAPIKey:    "sk-test",
		OpenAIModelName: "gpt-4o-mini",
		OpenAIBaseURL:   "http://localhost:11434/v1",
	})
	require.NoError(t, err)
	assert.Equal(t, "openai", backend.Name())
}
