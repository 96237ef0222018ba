package api

import (
	"log/slog"
	"net/http"

	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/api/shared"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/platform/logger"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/session"
)

// GenerationHandler handles generation and session HTTP requests.
type GenerationHandler struct {
	sessions *session.Manager
	logger   *slog.Logger
}

// NewGenerationHandler creates a new GenerationHandler.
func NewGenerationHandler(sessions *session.Manager, log *slog.Logger) *GenerationHandler {
	if log == nil {
		log = slog.Default()
	}
	return &GenerationHandler{
		sessions: sessions,
		logger:   log.With(slog.String("component", "generation_handler")),
	}
}

// Generate handles POST /api/generate. The request blocks until the model
// answers; there is no server-side deadline on the call.
func (h *GenerationHandler) Generate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	sess, ok := sessionFromRequest(w, r, h.sessions)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	var req GenerateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		if shared.IsBodyTooLarge(err) {
			shared.RespondWithErrorAndLog(w, r, http.StatusRequestEntityTooLarge, msgTranscriptTooLarge, err)
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest,
			shared.ValidationMessage(err, "Invalid request format"), err)
		return
	}

	log.Info("generation requested",
		"transcript_length", len(req.Transcript),
		"question_count", req.QuestionCount,
		"has_source_url", req.SourceURL != "")

	view, err := sess.Submit(r.Context(), session.Input{
		SourceURL:     req.SourceURL,
		Transcript:    req.Transcript,
		QuestionCount: req.QuestionCount,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate study materials")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// GetSession handles GET /api/session.
func (h *GenerationHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(w, r, h.sessions)
	if !ok {
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, sess.Snapshot())
}

// ResetSession handles POST /api/session/reset.
func (h *GenerationHandler) ResetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(w, r, h.sessions)
	if !ok {
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, sess.Reset())
}
