package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/config"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/generation"
	"google.golang.org/genai"
)

// responseMIMEType asks the model for a raw JSON object.
const responseMIMEType = "application/json"

// contentGenerator is the subset of *genai.Models used by Backend.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Backend implements generation.Backend using Google's Gemini API.
type Backend struct {
	// logger is used for structured logging
	logger *slog.Logger

	// models performs the GenerateContent calls
	models contentGenerator

	// model is the name of the Gemini model to use
	model string
}

var _ generation.Backend = (*Backend)(nil)

// NewBackend creates a Backend talking to the Gemini API with the key and
// model from cfg.
func NewBackend(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Backend, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if err := validateConfig(ctx, logger, cfg); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return newBackend(logger, client.Models, cfg.ModelName), nil
}

func newBackend(logger *slog.Logger, models contentGenerator, model string) *Backend {
	return &Backend{
		logger: logger.With(slog.String("component", "gemini_backend")),
		models: models,
		model:  model,
	}
}

// Name implements generation.Backend.
func (b *Backend) Name() string { return "gemini" }

// Complete implements generation.Backend. It performs exactly one
// GenerateContent call.
func (b *Backend) Complete(ctx context.Context, req generation.Request) (string, error) {
	contents := []*genai.Content{
		{
			Role:  genai.RoleUser,
			Parts: []*genai.Part{{Text: req.UserPrompt}},
		},
	}

	genConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: responseMIMEType,
		ResponseSchema:   toGenaiSchema(req.ResponseSchema),
	}
	if req.SystemInstruction != "" {
		genConfig.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemInstruction}},
		}
	}

	b.logger.DebugContext(ctx, "Making Gemini API call",
		"model", b.model,
		"prompt_length", len(req.UserPrompt))

	start := time.Now()
	resp, err := b.models.GenerateContent(ctx, b.model, contents, genConfig)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			b.logger.ErrorContext(ctx, "Gemini API returned an error",
				"status_code", apiErr.Code,
				"status", apiErr.Status)
		}
		return "", fmt.Errorf("%w: gemini API call failed: %v", generation.ErrGenerationFailed, err)
	}

	text, err := responseText(resp)
	if err != nil {
		return "", err
	}

	b.logger.DebugContext(ctx, "Gemini API call successful",
		"duration_ms", time.Since(start).Milliseconds(),
		"response_length", len(text))

	return text, nil
}

// responseText extracts the text of the first candidate, mapping safety
// blocks and empty responses to generation sentinels.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: empty response from Gemini", generation.ErrInvalidResponse)
	}

	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" &&
		fb.BlockReason != genai.BlockedReasonUnspecified {
		return "", fmt.Errorf("%w: prompt blocked: %s", generation.ErrContentBlocked, fb.BlockReason)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates in Gemini response", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: response blocked by safety filters", generation.ErrContentBlocked)
	}

	if candidate.Content == nil {
		return "", fmt.Errorf("%w: candidate has no content", generation.ErrInvalidResponse)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}

	if strings.TrimSpace(sb.String()) == "" {
		return "", fmt.Errorf("%w: candidate has no text", generation.ErrInvalidResponse)
	}

	return sb.String(), nil
}
