package middleware

import (
	"log/slog"
	"net/http"

	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/api/shared"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/platform/logger"
	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

// sessionIDValue is the cookie session field holding the browser session ID.
const sessionIDValue = "sid"

// SessionConfig configures the session cookie.
type SessionConfig struct {
	CookieName string
	// Secret signs the cookie. When empty a random key is generated and
	// sessions end when the process restarts.
	Secret string
	Secure bool
	// MaxAgeSeconds is the cookie lifetime; zero means a browser-session cookie.
	MaxAgeSeconds int
}

// SessionMiddleware assigns every browser a stable session ID kept in a
// signed cookie and stores it in the request context.
type SessionMiddleware struct {
	store      *sessions.CookieStore
	cookieName string
	logger     *slog.Logger
}

// NewSessionMiddleware creates a SessionMiddleware.
func NewSessionMiddleware(cfg SessionConfig, log *slog.Logger) *SessionMiddleware {
	if log == nil {
		log = slog.Default()
	}

	key := []byte(cfg.Secret)
	if len(key) == 0 {
		key = securecookie.GenerateRandomKey(32)
		log.Warn("no session secret configured, using an ephemeral key")
	}

	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.MaxAgeSeconds,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &SessionMiddleware{
		store:      store,
		cookieName: cfg.CookieName,
		logger:     log,
	}
}

// Handle is the middleware function.
func (m *SessionMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContextOrDefault(r.Context(), m.logger)

		// A cookie that fails to decode (e.g. signed with a rotated key)
		// yields a fresh session.
		sess, err := m.store.Get(r, m.cookieName)
		if err != nil {
			log.Debug("discarding undecodable session cookie", "error", err)
		}

		id, _ := sess.Values[sessionIDValue].(string)
		if id == "" {
			id = uuid.NewString()
			sess.Values[sessionIDValue] = id
			if err := sess.Save(r, w); err != nil {
				log.Error("failed to save session cookie", "error", err)
				shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
					"An unexpected error occurred", err)
				return
			}
			log.Debug("assigned new session", "session_id", id)
		}

		ctx := shared.SetSessionID(r.Context(), id)
		ctx = logger.WithLogger(ctx, log.With(slog.String("session_id", id)))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
