package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kanjisaya/kanji-srs/internal/api"
	"github.com/kanjisaya/kanji-srs/internal/api/middleware"
	"github.com/kanjisaya/kanji-srs/internal/api/shared"
	"github.com/kanjisaya/kanji-srs/internal/domain"
	"github.com/kanjisaya/kanji-srs/internal/domain/srs"
	"github.com/kanjisaya/kanji-srs/internal/platform/memory"
	"github.com/kanjisaya/kanji-srs/internal/service/study"
	"github.com/kanjisaya/kanji-srs/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func testDeck() domain.Deck {
	return domain.Deck{
		ID:    "n4-core-v2-p1",
		Title: "N4 Core Kanji Part 1",
		Cards: []domain.Card{
			{
				ID:      "1",
				Kanji:   "会",
				Meaning: "meet",
				Onyomi:  "カイ",
				Kunyomi: "あ.う",
				Examples: []domain.Example{
					{Word: "会社", Reading: "kaisha", Mean: "company"},
				},
			},
			{ID: "2", Kanji: "同", Meaning: "same"},
		},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	kv := memory.NewKVStore()
	svc := study.NewStudyService(
		store.NewProgressStore(kv, nil),
		store.NewDeckStore(kv, nil),
		srs.NewDefaultService(),
		nil,
		nil,
		study.WithClock(func() time.Time { return now }),
		study.WithBuiltinDecks([]domain.Deck{testDeck()}),
	)
	require.NoError(t, svc.Load(context.Background()))

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	decks := api.NewDeckHandler(svc, logger)
	studyHandler := api.NewStudyHandler(svc, logger)

	r := chi.NewRouter()
	r.Use(middleware.TraceMiddleware(logger))
	r.Route("/api", func(r chi.Router) {
		r.Get("/decks", decks.ListDecks)
		r.Post("/decks/import", decks.ImportDeck)
		r.Get("/decks/{id}", decks.GetDeck)

		r.Get("/study", studyHandler.Current)
		r.Delete("/study", studyHandler.Leave)
		r.Post("/study/flip", studyHandler.Flip)
		r.Post("/study/next", studyHandler.Next)
		r.Post("/study/prev", studyHandler.Prev)
		r.Post("/study/rate", studyHandler.Rate)
		r.Post("/study/{deckID}", studyHandler.EnterDeck)
	})
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(&v))
	return v
}

func TestListDecks(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/decks", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("X-Trace-ID"))

	decks := decode[[]api.DeckSummaryResponse](t, rec)
	require.Len(t, decks, 1)
	assert.Equal(t, api.DeckSummaryResponse{
		ID:       "n4-core-v2-p1",
		Title:    "N4 Core Kanji Part 1",
		Total:    2,
		Due:      2,
		Mastered: 0,
		Builtin:  true,
	}, decks[0])
}

func TestGetDeck(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/decks/n4-core-v2-p1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	deck := decode[api.DeckResponse](t, rec)
	require.Len(t, deck.Cards, 2)
	require.Len(t, deck.Cards[0].Examples, 1)
	assert.Equal(t, "かいしゃ", deck.Cards[0].Examples[0].Hiragana)
	assert.NotNil(t, deck.Cards[1].Examples)

	rec = do(t, h, http.MethodGet, "/api/decks/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	errResp := decode[shared.ErrorResponse](t, rec)
	assert.Equal(t, "Deck not found", errResp.Error)
	assert.NotEmpty(t, errResp.TraceID)
}

func TestImportDeck(t *testing.T) {
	h := newTestRouter(t)

	body := `{"id":"mine","title":"Mine","cards":[{"id":1,"kanji":"山"}]}`
	rec := do(t, h, http.MethodPost, "/api/decks/import", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	res := decode[api.ImportResponse](t, rec)
	assert.False(t, res.Replaced)
	assert.Equal(t, "mine", res.Deck.ID)
	assert.Equal(t, 1, res.Deck.Due)

	rec = do(t, h, http.MethodPost, "/api/decks/import", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[api.ImportResponse](t, rec).Replaced)

	rec = do(t, h, http.MethodGet, "/api/decks", "")
	assert.Len(t, decode[[]api.DeckSummaryResponse](t, rec), 2)
}

func TestImportDeckErrors(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{
			name:       "not json",
			body:       `{{{`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid deck format: JSON object with id, title and cards[] is required",
		},
		{
			name:       "missing cards",
			body:       `{"id":"x","title":"T"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "empty body",
			body:       ``,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "built-in id",
			body:       `{"id":"n4-core-v2-p1","title":"T","cards":[]}`,
			wantStatus: http.StatusConflict,
			wantError:  "Built-in decks cannot be replaced",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/decks/import", tc.body)
			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantError != "" {
				assert.Equal(t, tc.wantError, decode[shared.ErrorResponse](t, rec).Error)
			}
		})
	}
}

func TestImportDeckTooLarge(t *testing.T) {
	h := newTestRouter(t)

	body := `{"id":"big","title":"` + strings.Repeat("x", shared.MaxBodyBytes) + `","cards":[]}`
	rec := do(t, h, http.MethodPost, "/api/decks/import", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestStudyFlow(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/study", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/study/n4-core-v2-p1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[api.ViewResponse](t, rec)
	require.NotNil(t, view.Card)
	assert.Equal(t, "会", view.Card.Kanji)
	assert.Equal(t, 2, view.DueCount)

	rec = do(t, h, http.MethodPost, "/api/study/flip", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[api.ViewResponse](t, rec).Flipped)

	rec = do(t, h, http.MethodPost, "/api/study/rate", `{"rating":"wrong"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[api.RateResponse](t, rec)
	assert.Equal(t, "1", res.CardID)
	assert.Equal(t, "shown again immediately", res.Feedback)
	assert.True(t, now.Equal(res.NextDue))
	assert.Equal(t, 1, res.View.Index)
	assert.Equal(t, "同", res.View.Card.Kanji)
	assert.False(t, res.View.Flipped)

	rec = do(t, h, http.MethodPost, "/api/study/next", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decode[api.ViewResponse](t, rec).Index)

	rec = do(t, h, http.MethodPost, "/api/study/prev", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[api.ViewResponse](t, rec).Index)

	for i := 0; i < 2; i++ {
		rec = do(t, h, http.MethodPost, "/api/study/rate", `{"rating":"easy"}`)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	res = decode[api.RateResponse](t, rec)
	assert.True(t, res.View.Completed)
	assert.Nil(t, res.View.Card)

	rec = do(t, h, http.MethodPost, "/api/study/rate", `{"rating":"easy"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodDelete, "/api/study", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/study", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRateValidation(t *testing.T) {
	h := newTestRouter(t)
	rec := do(t, h, http.MethodPost, "/api/study/n4-core-v2-p1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	tests := []struct {
		name      string
		body      string
		wantError string
	}{
		{"malformed", `{"rating":`, "Invalid request format"},
		{"missing", `{}`, "Invalid Rating: required field"},
		{"unknown", `{"rating":"good"}`, "Invalid Rating: must be one of wrong, hard, easy"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/study/rate", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tc.wantError, decode[shared.ErrorResponse](t, rec).Error)
		})
	}

	rec = do(t, h, http.MethodGet, "/api/study", "")
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[api.ViewResponse](t, rec)
	assert.Equal(t, 0, view.Index)
	assert.Equal(t, 2, view.DueCount)
}

func TestEnterUnknownDeck(t *testing.T) {
	h := newTestRouter(t)
	rec := do(t, h, http.MethodPost, "/api/study/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNewHandlersPanicOnNilDependencies(t *testing.T) {
	assert.Panics(t, func() { api.NewDeckHandler(nil, slog.Default()) })
	assert.Panics(t, func() { api.NewStudyHandler(nil, slog.Default()) })
}
