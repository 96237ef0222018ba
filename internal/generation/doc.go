// Package generation is the boundary between the application and the
// external LLM (Gemini, OpenAI) that writes study packets. It builds the
// schema-constrained generation request from a transcript, invokes a
// provider Backend once, and validates and normalizes the raw response into
// a domain.GeneratedDocument. Only the shape of the response is checked,
// never the truth of its content.
package generation
