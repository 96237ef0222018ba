// Package domain contains the core entities of the study packet generator:
// the generated document (textbook chapter, flashcards, quiz), the history
// entries that persist past generations, and the invariants that hold for
// both, independent of any LLM provider or storage backend.
package domain
