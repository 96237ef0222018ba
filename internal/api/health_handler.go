package api

import (
	"net/http"

	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/api/shared"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/domain"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/session"
)

// HealthHandler reports liveness and a few runtime facts.
type HealthHandler struct {
	provider       string
	historyBackend string
	history        HistoryStore
	sessions       *session.Manager
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(provider, historyBackend string, hist HistoryStore, sessions *session.Manager) *HealthHandler {
	return &HealthHandler{
		provider:       provider,
		historyBackend: historyBackend,
		history:        hist,
		sessions:       sessions,
	}
}

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:         "ok",
		Provider:       h.provider,
		HistoryBackend: h.historyBackend,
		HistoryEntries: len(h.history.List()),
		ActiveSessions: h.sessions.Len(),
		AllowedCounts:  domain.AllowedQuestionCounts,
		DefaultCount:   domain.DefaultQuestionCount,
	})
}
