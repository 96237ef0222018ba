package domain

// DefaultHistoryCapacity is the number of entries the history log keeps.
const DefaultHistoryCapacity = 10

// HistoryEntry is one persisted past generation. Entries are immutable once
// created: replacing one means saving a new entry.
type HistoryEntry struct {
	ID                     string            `json:"id"`
	Timestamp              int64             `json:"timestamp"`
	SourceURL              string            `json:"sourceUrl"`
	Transcript             string            `json:"transcript"`
	RequestedQuestionCount int               `json:"requestedQuestionCount"`
	Document               GeneratedDocument `json:"document"`
	Title                  string            `json:"title"`
}

// VideoID returns the YouTube video ID of the entry's source URL, if any.
func (e HistoryEntry) VideoID() string {
	return ExtractVideoID(e.SourceURL)
}

// Clone returns a deep copy of the entry.
func (e HistoryEntry) Clone() HistoryEntry {
	clone := e
	if doc := e.Document.Clone(); doc != nil {
		clone.Document = *doc
	}
	return clone
}
