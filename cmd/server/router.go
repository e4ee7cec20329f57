package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/kanjisaya/kanji-srs/internal/api"
	apiMiddleware "github.com/kanjisaya/kanji-srs/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	deckHandler := api.NewDeckHandler(app.studyService, app.logger)
	studyHandler := api.NewStudyHandler(app.studyService, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Deck endpoints
		r.Get("/decks", deckHandler.ListDecks)
		r.Post("/decks/import", deckHandler.ImportDeck)
		r.Get("/decks/{id}", deckHandler.GetDeck)

		// Study session endpoints
		r.Get("/study", studyHandler.Current)
		r.Delete("/study", studyHandler.Leave)
		r.Post("/study/flip", studyHandler.Flip)
		r.Post("/study/next", studyHandler.Next)
		r.Post("/study/prev", studyHandler.Prev)
		r.Post("/study/rate", studyHandler.Rate)
		r.Post("/study/{deckID}", studyHandler.EnterDeck)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
