package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"text/template"
	"time"

	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/domain"
)

// Client implements Generator on top of a provider Backend. It holds no
// state between calls besides its immutable dependencies.
type Client struct {
	backend Backend
	tmpl    *template.Template
	logger  *slog.Logger
}

// Ensure Client implements Generator.
var _ Generator = (*Client)(nil)

// NewClient creates a Client. A nil tmpl selects the embedded default prompt.
func NewClient(backend Backend, tmpl *template.Template, logger *slog.Logger) (*Client, error) {
	if backend == nil {
		return nil, fmt.Errorf("%w: backend cannot be nil", ErrInvalidConfig)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if tmpl == nil {
		var err error
		if tmpl, err = LoadPromptTemplate(""); err != nil {
			return nil, err
		}
	}

	return &Client{
		backend: backend,
		tmpl:    tmpl,
		logger:  logger.With(slog.String("component", "generation_client"), slog.String("provider", backend.Name())),
	}, nil
}

// Generate implements Generator. Input is validated before any I/O; the
// backend is called exactly once; there is no retry.
func (c *Client) Generate(
	ctx context.Context,
	transcript string,
	requestedQuestionCount int,
) (*domain.GeneratedDocument, error) {
	if err := domain.ValidateTranscript(transcript); err != nil {
		return nil, err
	}
	if err := domain.ValidateQuestionCount(requestedQuestionCount); err != nil {
		return nil, err
	}

	req, err := BuildRequest(c.tmpl, transcript, requestedQuestionCount)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	c.logger.InfoContext(ctx, "requesting generation",
		"transcript_length", len(transcript),
		"question_count", requestedQuestionCount,
		"prompt_length", len(req.UserPrompt))

	start := time.Now()
	raw, err := c.backend.Complete(ctx, req)
	elapsed := time.Since(start)
	if err != nil {
		c.logger.ErrorContext(ctx, "generation call failed",
			"error", err,
			"duration_ms", elapsed.Milliseconds())
		if errors.Is(err, ErrContentBlocked) || errors.Is(err, ErrInvalidResponse) || errors.Is(err, ErrGenerationFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	doc, warnings, err := Normalize(raw, requestedQuestionCount)
	if err != nil {
		c.logger.ErrorContext(ctx, "generation response rejected",
			"error", err,
			"response_length", len(raw),
			"duration_ms", elapsed.Milliseconds())
		return nil, err
	}

	for _, w := range warnings {
		c.logger.WarnContext(ctx, "generation response repaired", "detail", w)
	}

	c.logger.InfoContext(ctx, "generation succeeded",
		"duration_ms", elapsed.Milliseconds(),
		"chapter_length", len(doc.TextbookChapter),
		"flashcards", len(doc.Flashcards),
		"questions", len(doc.Quiz))

	return doc, nil
}
