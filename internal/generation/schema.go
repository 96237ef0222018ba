package generation

import "github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/domain"

// SchemaType is a JSON-schema primitive type name.
type SchemaType string

// Schema types used by DocumentSchema.
const (
	TypeObject SchemaType = "object"
	TypeArray  SchemaType = "array"
	TypeString SchemaType = "string"
)

// Schema is a provider-neutral subset of JSON schema. Backends translate it
// to their SDK's schema type; it also marshals directly to JSON schema.
type Schema struct {
	Type        SchemaType         `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	// PropertyOrdering keeps the model's output order stable where the
	// provider supports it. It is not part of JSON schema.
	PropertyOrdering []string `json:"-"`
	Required         []string `json:"required,omitempty"`
	Items            *Schema  `json:"items,omitempty"`
	MinItems         *int     `json:"minItems,omitempty"`
	MaxItems         *int     `json:"maxItems,omitempty"`
}

// Field names of the generated document.
const (
	FieldTextbookChapter = "textbookChapter"
	FieldFlashcards      = "flashcards"
	FieldQuiz            = "quiz"
)

func intPtr(n int) *int { return &n }

// DocumentSchema returns the response schema for a document whose quiz has
// exactly questionCount questions.
func DocumentSchema(questionCount int) *Schema {
	question := &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"question": {
				Type:        TypeString,
				Description: "The quiz question.",
			},
			"options": {
				Type:        TypeArray,
				Description: "Exactly 4 distinct possible answers.",
				Items:       &Schema{Type: TypeString},
				MinItems:    intPtr(domain.QuizOptionCount),
				MaxItems:    intPtr(domain.QuizOptionCount),
			},
			"correctAnswer": {
				Type:        TypeString,
				Description: "The correct answer, copied verbatim from one of the options.",
			},
		},
		PropertyOrdering: []string{"question", "options", "correctAnswer"},
		Required:         []string{"question", "options", "correctAnswer"},
	}

	flashcard := &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"front": {Type: TypeString, Description: "A term or question."},
			"back":  {Type: TypeString, Description: "Its definition or answer."},
		},
		PropertyOrdering: []string{"front", "back"},
		Required:         []string{"front", "back"},
	}

	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			FieldTextbookChapter: {
				Type: TypeString,
				Description: "A comprehensive summary of the transcript formatted as a textbook chapter in Markdown. " +
					"Start with an H1 title. Use H2 headers for main sections. Use bold for key terms. " +
					"Include code blocks for any code. End with a bulleted list summary of key takeaways.",
			},
			FieldFlashcards: {
				Type:        TypeArray,
				Description: "Flashcards covering the key terms and concepts of the chapter.",
				Items:       flashcard,
			},
			FieldQuiz: {
				Type:        TypeArray,
				Description: "Multiple-choice questions that test the main concepts.",
				Items:       question,
				MinItems:    intPtr(questionCount),
				MaxItems:    intPtr(questionCount),
			},
		},
		PropertyOrdering: []string{FieldTextbookChapter, FieldFlashcards, FieldQuiz},
		Required:         []string{FieldTextbookChapter, FieldFlashcards, FieldQuiz},
	}
}
