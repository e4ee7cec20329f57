package srs

import (
	"errors"
	"time"

	"github.com/kanjisaya/kanji-srs/internal/domain"
)

// Common errors
var (
	ErrEmptyCardID   = errors.New("card ID cannot be empty")
	ErrInvalidRating = domain.ErrInvalidRating
)

// DeckSummary is the read-only projection shown next to each deck.
type DeckSummary struct {
	DeckID   domain.ID `json:"deck_id"`
	Title    string    `json:"title"`
	Total    int       `json:"total"`
	Due      int       `json:"due"`
	Mastered int       `json:"mastered"`
}

// Service defines the interface for scheduling operations
type Service interface {
	// NextDue computes the next-due instant for a rating given at now
	NextDue(rating domain.Rating, now time.Time) (time.Time, error)

	// Rate records a rating for one card and returns the new progress
	// snapshot together with the card's next-due instant. The given snapshot
	// is not modified.
	Rate(
		progress domain.Progress,
		cardID domain.ID,
		rating domain.Rating,
		now time.Time,
	) (domain.Progress, time.Time, error)

	// DueList returns the deck's cards that are due at now, in deck order
	DueList(deck *domain.Deck, progress domain.Progress, now time.Time) []domain.Card

	// Summarize counts total, due and mastered cards of a deck
	Summarize(deck *domain.Deck, progress domain.Progress, now time.Time) DeckSummary

	// IsMastered reports whether a card is mastered at now
	IsMastered(progress domain.Progress, cardID domain.ID, now time.Time) bool
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new scheduling service with default parameters
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new scheduling service with custom parameters
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// NextDue implements Service.NextDue
func (s *defaultService) NextDue(rating domain.Rating, now time.Time) (time.Time, error) {
	if !rating.IsValid() {
		return time.Time{}, ErrInvalidRating
	}
	return calculateNextDue(rating, now, s.params), nil
}

// Rate implements Service.Rate
func (s *defaultService) Rate(
	progress domain.Progress,
	cardID domain.ID,
	rating domain.Rating,
	now time.Time,
) (domain.Progress, time.Time, error) {
	if cardID.IsZero() {
		return progress, time.Time{}, ErrEmptyCardID
	}

	nextDue, err := s.NextDue(rating, now)
	if err != nil {
		return progress, time.Time{}, err
	}

	return progress.With(cardID, nextDue), nextDue, nil
}

// DueList implements Service.DueList
func (s *defaultService) DueList(deck *domain.Deck, progress domain.Progress, now time.Time) []domain.Card {
	if deck == nil {
		return nil
	}
	return filterDue(deck, progress, now)
}

// Summarize implements Service.Summarize
func (s *defaultService) Summarize(deck *domain.Deck, progress domain.Progress, now time.Time) DeckSummary {
	if deck == nil {
		return DeckSummary{}
	}
	return summarize(deck, progress, now, s.params)
}

// IsMastered implements Service.IsMastered
func (s *defaultService) IsMastered(progress domain.Progress, cardID domain.ID, now time.Time) bool {
	return isMastered(progress, cardID, now, s.params)
}
