package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/api/shared"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/domain"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/session"
	"github.com/go-chi/chi/v5"
)

// maxRequestBodyBytes bounds request bodies; transcripts of long videos run
// to a few hundred kilobytes.
const maxRequestBodyBytes = 4 << 20

var msgTranscriptTooLarge = fmt.Sprintf(
	"The transcript is too long. Requests are limited to %d MB.", maxRequestBodyBytes>>20)

// sessionFromRequest returns the caller's session. The session middleware
// must have run; otherwise an error response is written and ok is false.
func sessionFromRequest(w http.ResponseWriter, r *http.Request, sessions *session.Manager) (*session.Session, bool) {
	id := shared.GetSessionID(r.Context())
	if id == "" {
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Session not available")
		return nil, false
	}
	return sessions.Get(id), true
}

// getPathID extracts a non-empty ID from the URL path parameters.
func getPathID(r *http.Request, paramName string) (string, error) {
	id := strings.TrimSpace(chi.URLParam(r, paramName))
	if id == "" {
		return "", domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}
	return id, nil
}
