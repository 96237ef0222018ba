package generation

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"text/template"
)

// SystemInstruction is the fixed role given to the model on every request.
const SystemInstruction = `You are "TubeText," an advanced educational AI designed to convert raw video transcripts ` +
	`into high-quality, structured educational resources. Your goal is to make the content easier to read and ` +
	`learn than watching the original video. You will generate a textbook chapter, flashcards and a quiz based ` +
	`on the provided transcript. The entire output must be a single, valid JSON object that adheres to the ` +
	`provided schema.`

//go:embed prompts/chapter.tmpl
var defaultPromptTemplate string

// Request is everything a Backend needs for one generation call.
type Request struct {
	SystemInstruction string
	UserPrompt        string
	ResponseSchema    *Schema
	// QuestionCount is the requested quiz length, kept for logging.
	QuestionCount int
}

// promptData represents the data passed to the prompt template
type promptData struct {
	Transcript    string
	QuestionCount int
}

// LoadPromptTemplate parses the user prompt template at path, or the
// embedded default when path is empty.
func LoadPromptTemplate(path string) (*template.Template, error) {
	content := defaultPromptTemplate
	name := "chapter"
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read prompt template from %s: %v", ErrInvalidConfig, path, err)
		}
		content = string(raw)
		name = path
	}

	tmpl, err := template.New(name).Option("missingkey=error").Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v", ErrInvalidConfig, err)
	}
	return tmpl, nil
}

// BuildRequest composes the system instruction, the user prompt embedding
// the verbatim transcript and requested quiz length, and the response schema.
func BuildRequest(tmpl *template.Template, transcript string, questionCount int) (Request, error) {
	if tmpl == nil {
		var err error
		if tmpl, err = LoadPromptTemplate(""); err != nil {
			return Request{}, err
		}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, promptData{Transcript: transcript, QuestionCount: questionCount}); err != nil {
		return Request{}, fmt.Errorf("failed to execute prompt template: %w", err)
	}

	return Request{
		SystemInstruction: SystemInstruction,
		UserPrompt:        buf.String(),
		ResponseSchema:    DocumentSchema(questionCount),
		QuestionCount:     questionCount,
	}, nil
}
