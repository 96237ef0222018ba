package main

import (
	"net/http"

	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/api"
	apiMiddleware "github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	sessionMiddleware := apiMiddleware.NewSessionMiddleware(apiMiddleware.SessionConfig{
		CookieName:    app.config.Server.CookieName,
		Secret:        app.config.Server.SessionSecret,
		Secure:        app.config.Server.CookieSecure,
		MaxAgeSeconds: app.config.Server.SessionIdleMinutes * 60,
	}, app.logger)

	generationHandler := api.NewGenerationHandler(app.sessions, app.logger)
	historyHandler := api.NewHistoryHandler(app.history, app.sessions, app.logger)
	healthHandler := api.NewHealthHandler(app.backend.Name(), app.config.History.Backend, app.history, app.sessions)

	r.Route("/api", func(r chi.Router) {
		r.Use(sessionMiddleware.Handle)

		r.Post("/generate", generationHandler.Generate)

		r.Get("/session", generationHandler.GetSession)
		r.Post("/session/reset", generationHandler.ResetSession)

		r.Get("/history", historyHandler.ListHistory)
		r.Get("/history/{id}", historyHandler.GetEntry)
		r.Delete("/history/{id}", historyHandler.DeleteEntry)
		r.Post("/history/{id}/restore", historyHandler.RestoreEntry)
	})

	// Health check endpoint
	r.Get("/health", healthHandler.Health)

	return r
}
