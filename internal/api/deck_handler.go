package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/kanjisaya/kanji-srs/internal/api/shared"
	"github.com/kanjisaya/kanji-srs/internal/platform/logger"
	"github.com/kanjisaya/kanji-srs/internal/redact"
	"github.com/kanjisaya/kanji-srs/internal/service/study"
)

// DeckHandler handles deck listing, lookup and import.
type DeckHandler struct {
	studyService study.StudyService
	logger       *slog.Logger
}

// NewDeckHandler creates a new DeckHandler
func NewDeckHandler(studyService study.StudyService, logger *slog.Logger) *DeckHandler {
	if studyService == nil {
		panic("studyService cannot be nil for DeckHandler")
	}
	if logger == nil {
		panic("logger cannot be nil for DeckHandler")
	}

	return &DeckHandler{
		studyService: studyService,
		logger:       logger.With(slog.String("component", "deck_handler")),
	}
}

// ListDecks handles GET /api/decks requests.
func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	decks, err := h.studyService.ListDecks(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list decks")
		return
	}

	response := make([]DeckSummaryResponse, 0, len(decks))
	for _, d := range decks {
		response = append(response, overviewToResponse(d))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// GetDeck handles GET /api/decks/{id} requests.
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	deckID, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	deck, err := h.studyService.GetDeck(r.Context(), deckID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get deck")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, deckToResponse(&deck))
}

// ImportDeck handles POST /api/decks/import requests. The body is the raw
// deck JSON, the same format the deck export produces.
func (h *DeckHandler) ImportDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	body, err := readBody(w, r)
	if err != nil {
		if errors.Is(err, errBodyTooLarge) {
			shared.RespondWithError(w, r, http.StatusRequestEntityTooLarge, "Deck is too large")
			return
		}
		log.Warn("failed to read import body", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.studyService.ImportDeck(r.Context(), body)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to import deck")
		return
	}

	status := http.StatusCreated
	if result.Replaced {
		status = http.StatusOK
	}

	log.Debug("deck imported",
		slog.String("deck_id", result.Deck.DeckID.String()),
		slog.Bool("replaced", result.Replaced))
	shared.RespondWithJSON(w, r, status, ImportResponse{
		Deck:     overviewToResponse(result.Deck),
		Replaced: result.Replaced,
	})
}
