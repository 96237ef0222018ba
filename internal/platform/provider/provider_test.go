package provider

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/config"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/generation"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBackend(t *testing.T) {
	log, _ := logger.GetTestLogger(t)

	tests := []struct {
		name     string
		cfg      config.LLMConfig
		wantName string
		wantErr  error
	}{
		{
			name: "openai",
			cfg: config.LLMConfig{
				Provider:        config.ProviderOpenAI,
				OpenAIAPIKey:    "test-key",
				OpenAIModelName: "gpt-4o-mini",
			},
			wantName: "openai",
		},
		{
			name:    "openai without key",
			cfg:     config.LLMConfig{Provider: config.ProviderOpenAI, OpenAIModelName: "gpt-4o-mini"},
			wantErr: generation.ErrInvalidConfig,
		},
		{
			name:    "gemini without key",
			cfg:     config.LLMConfig{Provider: config.ProviderGemini, ModelName: "gemini-2.5-flash"},
			wantErr: generation.ErrInvalidConfig,
		},
		{
			name:    "unknown provider",
			cfg:     config.LLMConfig{Provider: "anthropic"},
			wantErr: generation.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBackend(context.Background(), tt.cfg, log)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, b.Name())
		})
	}
}

func TestNewClient(t *testing.T) {
	log, _ := logger.GetTestLogger(t)
	cfg := config.LLMConfig{
		Provider:        config.ProviderOpenAI,
		OpenAIAPIKey:    "test-key",
		OpenAIModelName: "gpt-4o-mini",
	}

	client, backend, err := NewClient(context.Background(), cfg, log)
	require.NoError(t, err)
	assert.NotNil(t, client)
	assert.Equal(t, "openai", backend.Name())

	cfg.PromptTemplatePath = filepath.Join(t.TempDir(), "missing.tmpl")
	_, _, err = NewClient(context.Background(), cfg, log)
	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}
