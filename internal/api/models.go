package api

import (
	"time"

	"github.com/kanjisaya/kanji-srs/internal/domain"
	"github.com/kanjisaya/kanji-srs/internal/kana"
	"github.com/kanjisaya/kanji-srs/internal/service/study"
)

// RateRequest defines the payload for the rating endpoint.
type RateRequest struct {
	Rating string `json:"rating" validate:"required,oneof=wrong hard easy"`
}

// ExampleResponse is an example word with its reading in both scripts.
type ExampleResponse struct {
	Word     string `json:"word"`
	Reading  string `json:"reading"`
	Hiragana string `json:"hiragana"`
	Mean     string `json:"mean"`
}

// CardResponse represents the response data for a card
type CardResponse struct {
	ID       string            `json:"id"`
	Kanji    string            `json:"kanji"`
	Meaning  string            `json:"meaning"`
	Onyomi   string            `json:"onyomi"`
	Kunyomi  string            `json:"kunyomi"`
	Examples []ExampleResponse `json:"examples"`
}

// DeckSummaryResponse is one row of the deck list.
type DeckSummaryResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Total    int    `json:"total"`
	Due      int    `json:"due"`
	Mastered int    `json:"mastered"`
	Builtin  bool   `json:"builtin"`
}

// DeckResponse is a full deck.
type DeckResponse struct {
	ID    string         `json:"id"`
	Title string         `json:"title"`
	Cards []CardResponse `json:"cards"`
}

// ViewResponse is the study screen.
type ViewResponse struct {
	DeckID    string        `json:"deck_id"`
	Title     string        `json:"title"`
	Card      *CardResponse `json:"card,omitempty"`
	Index     int           `json:"index"`
	DueCount  int           `json:"due_count"`
	Total     int           `json:"total"`
	Flipped   bool          `json:"flipped"`
	Feedback  string        `json:"feedback,omitempty"`
	Message   string        `json:"message,omitempty"`
	Completed bool          `json:"completed"`
}

// RateResponse is returned after a rating.
type RateResponse struct {
	CardID   string       `json:"card_id"`
	Rating   string       `json:"rating"`
	NextDue  time.Time    `json:"next_due"`
	Feedback string       `json:"feedback"`
	View     ViewResponse `json:"view"`
}

// ImportResponse is returned after a deck import.
type ImportResponse struct {
	Deck     DeckSummaryResponse `json:"deck"`
	Replaced bool                `json:"replaced"`
}

func cardToResponse(card *domain.Card) CardResponse {
	examples := make([]ExampleResponse, 0, len(card.Examples))
	for _, ex := range card.Examples {
		examples = append(examples, ExampleResponse{
			Word:     ex.Word,
			Reading:  ex.Reading,
			Hiragana: kana.ToHiragana(ex.Reading),
			Mean:     ex.Mean,
		})
	}

	return CardResponse{
		ID:       card.ID.String(),
		Kanji:    card.Kanji,
		Meaning:  card.Meaning,
		Onyomi:   card.Onyomi,
		Kunyomi:  card.Kunyomi,
		Examples: examples,
	}
}

func deckToResponse(deck *domain.Deck) DeckResponse {
	cards := make([]CardResponse, 0, len(deck.Cards))
	for i := range deck.Cards {
		cards = append(cards, cardToResponse(&deck.Cards[i]))
	}
	return DeckResponse{ID: deck.ID.String(), Title: deck.Title, Cards: cards}
}

func overviewToResponse(o study.DeckOverview) DeckSummaryResponse {
	return DeckSummaryResponse{
		ID:       o.DeckID.String(),
		Title:    o.Title,
		Total:    o.Total,
		Due:      o.Due,
		Mastered: o.Mastered,
		Builtin:  o.Builtin,
	}
}

func viewToResponse(v study.View) ViewResponse {
	resp := ViewResponse{
		DeckID:    v.DeckID.String(),
		Title:     v.Title,
		Index:     v.Index,
		DueCount:  v.DueCount,
		Total:     v.Total,
		Flipped:   v.Flipped,
		Feedback:  string(v.Feedback),
		Message:   v.Message,
		Completed: v.Completed,
	}
	if v.Card != nil {
		card := cardToResponse(v.Card)
		resp.Card = &card
	}
	return resp
}
