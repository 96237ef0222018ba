// Package provider selects the LLM backend named in the configuration.
package provider

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/config"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/generation"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/platform/gemini"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/platform/openai"
)

// NewBackend builds the generation.Backend for cfg.Provider.
func NewBackend(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (generation.Backend, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		b, err := gemini.NewBackend(ctx, logger, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Gemini backend: %w", err)
		}
		logger.Info("LLM backend initialized", "provider", b.Name(), "model", cfg.ModelName)
		return b, nil
	case config.ProviderOpenAI:
		b, err := openai.NewBackend(logger, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize OpenAI backend: %w", err)
		}
		logger.Info("LLM backend initialized", "provider", b.Name(), "model", cfg.OpenAIModelName)
		return b, nil
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", generation.ErrInvalidConfig, cfg.Provider)
	}
}

// NewClient builds the backend for cfg and wraps it in a generation.Client
// using the configured prompt template.
func NewClient(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (*generation.Client, generation.Backend, error) {
	backend, err := NewBackend(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	client, err := WrapBackend(backend, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return client, backend, nil
}

// WrapBackend wraps an existing backend in a generation.Client.
func WrapBackend(backend generation.Backend, cfg config.LLMConfig, logger *slog.Logger) (*generation.Client, error) {
	tmpl, err := generation.LoadPromptTemplate(cfg.PromptTemplatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompt template: %w", err)
	}

	client, err := generation.NewClient(backend, tmpl, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation client: %w", err)
	}
	return client, nil
}
