// Package openai provides a generation.Backend over OpenAI-compatible chat
// completion endpoints. The response is constrained with a json_schema
// response format built from generation.Schema.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/config"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/generation"
	goopenai "github.com/sashabaranov/go-openai"
)

// schemaName names the response format sent with every request.
const schemaName = "study_packet"

// chatCompleter is the subset of *goopenai.Client used by Backend.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req goopenai.ChatCompletionRequest) (goopenai.ChatCompletionResponse, error)
}

// Backend implements generation.Backend using the OpenAI chat completion API.
type Backend struct {
	logger *slog.Logger
	client chatCompleter
	model  string
}

var _ generation.Backend = (*Backend)(nil)

// NewBackend creates a Backend from cfg. OpenAIBaseURL, when set, points the
// client at a compatible endpoint.
func NewBackend(logger *slog.Logger, cfg config.LLMConfig) (*Backend, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("%w: openai API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.OpenAIModelName == "" {
		return nil, fmt.Errorf("%w: openai model name cannot be empty", generation.ErrInvalidConfig)
	}

	clientConfig := goopenai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientConfig.BaseURL = cfg.OpenAIBaseURL
	}

	return newBackend(logger, goopenai.NewClientWithConfig(clientConfig), cfg.OpenAIModelName), nil
}

func newBackend(logger *slog.Logger, client chatCompleter, model string) *Backend {
	return &Backend{
		logger: logger.With(slog.String("component", "openai_backend")),
		client: client,
		model:  model,
	}
}

// Name implements generation.Backend.
func (b *Backend) Name() string { return "openai" }

// Complete implements generation.Backend with a single chat completion.
func (b *Backend) Complete(ctx context.Context, req generation.Request) (string, error) {
	chatReq := goopenai.ChatCompletionRequest{
		Model: b.model,
		Messages: []goopenai.ChatCompletionMessage{
			{
				Role:    goopenai.ChatMessageRoleSystem,
				Content: req.SystemInstruction,
			},
			{
				Role:    goopenai.ChatMessageRoleUser,
				Content: req.UserPrompt,
			},
		},
	}
	if req.ResponseSchema != nil {
		chatReq.ResponseFormat = &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &goopenai.ChatCompletionResponseFormatJSONSchema{
				Name:   schemaName,
				Schema: schemaMarshaler{req.ResponseSchema},
				// strict mode forbids minItems/maxItems
				Strict: false,
			},
		}
	} else {
		chatReq.ResponseFormat = &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	b.logger.DebugContext(ctx, "Making OpenAI API call",
		"model", b.model,
		"prompt_length", len(req.UserPrompt))

	start := time.Now()
	resp, err := b.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		var apiErr *goopenai.APIError
		if errors.As(err, &apiErr) {
			b.logger.ErrorContext(ctx, "OpenAI API returned an error",
				"status_code", apiErr.HTTPStatusCode,
				"type", apiErr.Type)
		}
		return "", fmt.Errorf("%w: openai API call failed: %v", generation.ErrGenerationFailed, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in OpenAI response", generation.ErrInvalidResponse)
	}

	choice := resp.Choices[0]
	if choice.FinishReason == goopenai.FinishReasonContentFilter {
		return "", fmt.Errorf("%w: response removed by content filter", generation.ErrContentBlocked)
	}
	if choice.Message.Refusal != "" {
		return "", fmt.Errorf("%w: model refused: %s", generation.ErrContentBlocked, choice.Message.Refusal)
	}
	if strings.TrimSpace(choice.Message.Content) == "" {
		return "", fmt.Errorf("%w: empty message content", generation.ErrInvalidResponse)
	}

	b.logger.DebugContext(ctx, "OpenAI API call successful",
		"duration_ms", time.Since(start).Milliseconds(),
		"finish_reason", choice.FinishReason,
		"total_tokens", resp.Usage.TotalTokens)

	return choice.Message.Content, nil
}

// schemaMarshaler adapts generation.Schema to the json.Marshaler the SDK
// expects.
type schemaMarshaler struct {
	schema *generation.Schema
}

func (s schemaMarshaler) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.schema)
}
