package gemini

import (
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/generation"
	"google.golang.org/genai"
)

var schemaTypes = map[generation.SchemaType]genai.Type{
	generation.TypeObject: genai.TypeObject,
	generation.TypeArray:  genai.TypeArray,
	generation.TypeString: genai.TypeString,
}

// toGenaiSchema converts a provider-neutral schema into the SDK's type.
func toGenaiSchema(s *generation.Schema) *genai.Schema {
	if s == nil {
		return nil
	}

	out := &genai.Schema{
		Type:        schemaTypes[s.Type],
		Description: s.Description,
		Required:    append([]string(nil), s.Required...),
		Items:       toGenaiSchema(s.Items),
	}
	if len(s.PropertyOrdering) > 0 {
		out.PropertyOrdering = append([]string(nil), s.PropertyOrdering...)
	}
	if s.MinItems != nil {
		n := int64(*s.MinItems)
		out.MinItems = &n
	}
	if s.MaxItems != nil {
		n := int64(*s.MaxItems)
		out.MaxItems = &n
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toGenaiSchema(prop)
		}
	}

	return out
}
