package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/api/shared"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/domain"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/history"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/platform/logger"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/session"
)

// HistoryStore is the subset of *history.Store the history endpoints use.
type HistoryStore interface {
	List() []domain.HistoryEntry
	Get(id string) (domain.HistoryEntry, bool)
	Remove(ctx context.Context, id string) []domain.HistoryEntry
	Capacity() int
}

var _ HistoryStore = (*history.Store)(nil)

// HistoryHandler handles history HTTP requests.
type HistoryHandler struct {
	history  HistoryStore
	sessions *session.Manager
	logger   *slog.Logger
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(hist HistoryStore, sessions *session.Manager, log *slog.Logger) *HistoryHandler {
	if log == nil {
		log = slog.Default()
	}
	return &HistoryHandler{
		history:  hist,
		sessions: sessions,
		logger:   log.With(slog.String("component", "history_handler")),
	}
}

// ListHistory handles GET /api/history.
func (h *HistoryHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK,
		toHistoryListResponse(h.history.List(), h.history.Capacity()))
}

// GetEntry handles GET /api/history/{id}.
func (h *HistoryHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	entry, ok := h.history.Get(id)
	if !ok {
		HandleAPIError(w, r, history.ErrEntryNotFound, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, entry)
}

// DeleteEntry handles DELETE /api/history/{id}. Deleting an unknown ID is
// not an error; the unchanged list is returned.
func (h *HistoryHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	entries := h.history.Remove(r.Context(), id)
	log.Debug("history entry delete requested", "entry_id", id, "remaining", len(entries))

	shared.RespondWithJSON(w, r, http.StatusOK, toHistoryListResponse(entries, h.history.Capacity()))
}

// RestoreEntry handles POST /api/history/{id}/restore. The stored document
// is shown in the caller's session without contacting the model.
func (h *HistoryHandler) RestoreEntry(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	sess, ok := sessionFromRequest(w, r, h.sessions)
	if !ok {
		return
	}

	view, err := sess.Restore(id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}
