// Package gemini provides an implementation of the generation.Backend interface
// that uses Google's Gemini API for turning transcripts into study packets.
//
// This package is an infrastructure adapter in the hexagonal architecture,
// connecting the generation client to Google's external Gemini AI service.
// It translates the provider-neutral generation.Request into a
// GenerateContent call without exposing the details of the external service
// to the core application.
//
// Key components:
//
// 1. Backend:
//   - Implements the generation.Backend interface
//   - Sends the system instruction, the rendered user prompt, and the
//     response schema with the "application/json" response MIME type
//   - Returns the concatenated text parts of the first candidate
//
// 2. Schema translation:
//   - Converts generation.Schema into genai.Schema, keeping item bounds and
//     property ordering
//
// 3. Error handling:
//   - Safety blocks on the prompt or the candidate map to
//     generation.ErrContentBlocked
//   - Empty responses map to generation.ErrInvalidResponse
//   - API and transport failures map to generation.ErrGenerationFailed
//
// The package depends on Google's google.golang.org/genai client library
// for communicating with the Gemini API.
package gemini
