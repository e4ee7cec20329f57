package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/kanjisaya/kanji-srs/internal/api/shared"
	"github.com/kanjisaya/kanji-srs/internal/domain"
	"github.com/kanjisaya/kanji-srs/internal/platform/logger"
	"github.com/kanjisaya/kanji-srs/internal/redact"
	"github.com/kanjisaya/kanji-srs/internal/service/study"
)

// StudyHandler handles the study session endpoints.
type StudyHandler struct {
	studyService study.StudyService
	logger       *slog.Logger
}

// NewStudyHandler creates a new StudyHandler
func NewStudyHandler(studyService study.StudyService, logger *slog.Logger) *StudyHandler {
	if studyService == nil {
		panic("studyService cannot be nil for StudyHandler")
	}
	if logger == nil {
		panic("logger cannot be nil for StudyHandler")
	}

	return &StudyHandler{
		studyService: studyService,
		logger:       logger.With(slog.String("component", "study_handler")),
	}
}

// EnterDeck handles POST /api/study/{deckID} requests.
func (h *StudyHandler) EnterDeck(w http.ResponseWriter, r *http.Request) {
	deckID, err := getPathID(r, "deckID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	view, err := h.studyService.EnterDeck(r.Context(), deckID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to start studying")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, viewToResponse(view))
}

// Current handles GET /api/study requests.
func (h *StudyHandler) Current(w http.ResponseWriter, r *http.Request) {
	h.respondWithView(w, r, h.studyService.Current)
}

// Flip handles POST /api/study/flip requests.
func (h *StudyHandler) Flip(w http.ResponseWriter, r *http.Request) {
	h.respondWithView(w, r, h.studyService.Flip)
}

// Next handles POST /api/study/next requests.
func (h *StudyHandler) Next(w http.ResponseWriter, r *http.Request) {
	h.respondWithView(w, r, h.studyService.Next)
}

// Prev handles POST /api/study/prev requests.
func (h *StudyHandler) Prev(w http.ResponseWriter, r *http.Request) {
	h.respondWithView(w, r, h.studyService.Prev)
}

func (h *StudyHandler) respondWithView(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context) (study.View, error),
) {
	view, err := op(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, viewToResponse(view))
}

// Rate handles POST /api/study/rate requests.
func (h *StudyHandler) Rate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req RateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	result, err := h.studyService.Rate(r.Context(), domain.Rating(req.Rating))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to record rating")
		return
	}

	log.Debug("rating recorded",
		slog.String("card_id", result.CardID.String()),
		slog.String("rating", string(result.Rating)))
	shared.RespondWithJSON(w, r, http.StatusOK, RateResponse{
		CardID:   result.CardID.String(),
		Rating:   string(result.Rating),
		NextDue:  result.NextDue,
		Feedback: result.Feedback,
		View:     viewToResponse(result.View),
	})
}

// Leave handles DELETE /api/study requests.
func (h *StudyHandler) Leave(w http.ResponseWriter, r *http.Request) {
	if err := h.studyService.Leave(r.Context()); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
