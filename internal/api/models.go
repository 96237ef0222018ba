package api

import (
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/domain"
)

// GenerateRequest is the body of POST /api/generate.
type GenerateRequest struct {
	// SourceURL is optional and only used for the history thumbnail.
	SourceURL     string `json:"sourceUrl"     validate:"max=2048"`
	Transcript    string `json:"transcript"`
	QuestionCount int    `json:"questionCount" validate:"gte=0"`
}

// HistorySummary is one row of the history list.
type HistorySummary struct {
	ID                     string `json:"id"`
	Title                  string `json:"title"`
	Timestamp              int64  `json:"timestamp"`
	SourceURL              string `json:"sourceUrl,omitempty"`
	VideoID                string `json:"videoId,omitempty"`
	ThumbnailURL           string `json:"thumbnailUrl,omitempty"`
	RequestedQuestionCount int    `json:"requestedQuestionCount"`
	QuizLength             int    `json:"quizLength"`
	FlashcardCount         int    `json:"flashcardCount"`
}

// HistoryListResponse is the body returned by the history list endpoints.
type HistoryListResponse struct {
	Entries  []HistorySummary `json:"entries"`
	Capacity int              `json:"capacity"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status         string `json:"status"`
	Provider       string `json:"provider"`
	HistoryBackend string `json:"historyBackend"`
	HistoryEntries int    `json:"historyEntries"`
	ActiveSessions int    `json:"activeSessions"`
	AllowedCounts  []int  `json:"allowedQuestionCounts"`
	DefaultCount   int    `json:"defaultQuestionCount"`
}

func toHistorySummary(e domain.HistoryEntry) HistorySummary {
	videoID := domain.ExtractVideoID(e.SourceURL)
	return HistorySummary{
		ID:                     e.ID,
		Title:                  e.Title,
		Timestamp:              e.Timestamp,
		SourceURL:              e.SourceURL,
		VideoID:                videoID,
		ThumbnailURL:           domain.ThumbnailURL(videoID),
		RequestedQuestionCount: e.RequestedQuestionCount,
		QuizLength:             len(e.Document.Quiz),
		FlashcardCount:         len(e.Document.Flashcards),
	}
}

func toHistoryListResponse(entries []domain.HistoryEntry, capacity int) HistoryListResponse {
	summaries := make([]HistorySummary, len(entries))
	for i, e := range entries {
		summaries[i] = toHistorySummary(e)
	}
	return HistoryListResponse{Entries: summaries, Capacity: capacity}
}
