package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/domain"
)

const (
	formatMarkdown = "markdown"
	formatJSON     = "json"
)

// jsonOutput is the document plus the source metadata derived from the URL.
type jsonOutput struct {
	Title        string `json:"title"`
	SourceURL    string `json:"sourceUrl,omitempty"`
	VideoID      string `json:"videoId,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	*domain.GeneratedDocument
}

func writeJSON(w io.Writer, doc *domain.GeneratedDocument, sourceURL string) error {
	videoID := domain.ExtractVideoID(sourceURL)
	out := jsonOutput{
		Title:             doc.Title(),
		SourceURL:         sourceURL,
		VideoID:           videoID,
		GeneratedDocument: doc,
	}
	if videoID != "" {
		out.ThumbnailURL = domain.ThumbnailURL(videoID)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}

// writeMarkdown renders the chapter as-is followed by flashcard and quiz
// sections. Quiz answers are listed after all questions.
func writeMarkdown(w io.Writer, doc *domain.GeneratedDocument, sourceURL string) error {
	var b strings.Builder

	b.WriteString(strings.TrimSpace(doc.TextbookChapter))
	b.WriteString("\n")
	if sourceURL != "" {
		fmt.Fprintf(&b, "\n_Source: %s_\n", sourceURL)
	}

	if len(doc.Flashcards) > 0 {
		b.WriteString("\n## Flashcards\n\n")
		for _, card := range doc.Flashcards {
			fmt.Fprintf(&b, "- **%s**: %s\n", oneLine(card.Front), oneLine(card.Back))
		}
	}

	if len(doc.Quiz) > 0 {
		b.WriteString("\n## Quiz\n")
		for i, q := range doc.Quiz {
			fmt.Fprintf(&b, "\n%d. %s\n", i+1, oneLine(q.Question))
			for j, opt := range q.Options {
				fmt.Fprintf(&b, "   %c) %s\n", 'A'+rune(j), oneLine(opt))
			}
		}

		b.WriteString("\n### Answers\n\n")
		for i, q := range doc.Quiz {
			fmt.Fprintf(&b, "%d. %s\n", i+1, answerLabel(q))
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write Markdown: %w", err)
	}
	return nil
}

func answerLabel(q domain.QuizQuestion) string {
	for j, opt := range q.Options {
		if opt == q.CorrectAnswer {
			return fmt.Sprintf("%c) %s", 'A'+rune(j), oneLine(opt))
		}
	}
	return oneLine(q.CorrectAnswer)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
