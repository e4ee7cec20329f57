package study

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kanjisaya/kanji-srs/internal/domain"
	"github.com/kanjisaya/kanji-srs/internal/domain/srs"
)

// StudyService owns the learner's progress, the custom decks and the active
// study session. Every method is safe for concurrent use; calls are applied
// one at a time in arrival order.
type StudyService interface {
	// Load reads the persisted progress and custom decks. It is called once at
	// startup, before any other method. Malformed stored data is recovered
	// from by the store layer; only backend failures are returned.
	Load(ctx context.Context) error

	// ListDecks returns every deck with its summary at the current time:
	// built-in decks first, then custom decks in the order they were added.
	ListDecks(ctx context.Context) ([]DeckOverview, error)

	// GetDeck returns a copy of the deck with the given id.
	//
	// Returns:
	//   - (deck, nil): The deck exists
	//   - (zero, ErrDeckNotFound): No built-in or custom deck has that id
	GetDeck(ctx context.Context, deckID domain.ID) (domain.Deck, error)

	// DueCards returns the cards of a deck that are due now, in deck order.
	DueCards(ctx context.Context, deckID domain.ID) ([]domain.Card, error)

	// EnterDeck starts a session on the deck, positioned on the first due card.
	// Entering a deck while another one is active replaces that session.
	EnterDeck(ctx context.Context, deckID domain.ID) (View, error)

	// Current returns what is on screen. The due list is recomputed at the
	// current time, so cards that became due since the last call show up.
	//
	// Returns:
	//   - (view, nil): A deck is active; view.Completed is set when nothing is due
	//   - (zero, ErrNotStudying): No deck is active
	Current(ctx context.Context) (View, error)

	// Flip toggles the reveal of the current card's back.
	Flip(ctx context.Context) (View, error)

	// Next moves to the following due card, wrapping around.
	Next(ctx context.Context) (View, error)

	// Prev moves to the preceding due card, wrapping around.
	Prev(ctx context.Context) (View, error)

	// Rate records a rating for the current card.
	//
	// The rating is validated before anything changes. The new progress is
	// persisted first and only applied once the write succeeded, so a failed
	// write leaves both progress and session untouched.
	//
	// Returns:
	//   - (result, nil): The rating was recorded
	//   - (zero, ErrInvalidRating): The rating is not wrong, hard or easy
	//   - (zero, ErrNotStudying): No deck is active
	//   - (zero, ErrNoCurrentCard): The active deck has no due cards
	//   - (zero, *ServiceError): Persisting the progress failed
	Rate(ctx context.Context, rating domain.Rating) (RateResult, error)

	// Leave ends the active session. Leaving when no deck is active is a no-op.
	Leave(ctx context.Context) error

	// ImportDeck parses raw JSON into a deck and adds it with AddDeck.
	ImportDeck(ctx context.Context, raw []byte) (ImportResult, error)

	// AddDeck validates the deck and stores it as a custom deck, replacing any
	// custom deck with the same id. The full custom list is persisted before
	// it is swapped in. If the replaced deck is the active one, the session
	// restarts at the first due card.
	//
	// Returns:
	//   - (result, nil): The deck was stored
	//   - (zero, catalog.ErrInvalidDeckFormat): The deck failed validation
	//   - (zero, ErrBuiltinDeck): The id belongs to a built-in deck
	//   - (zero, *ServiceError): Persisting the custom decks failed
	AddDeck(ctx context.Context, deck domain.Deck) (ImportResult, error)
}

// Common error types for StudyService
var (
	// ErrDeckNotFound indicates that no deck has the requested id.
	ErrDeckNotFound = errors.New("deck not found")

	// ErrNotStudying indicates that the operation needs an active deck.
	ErrNotStudying = errors.New("no deck is being studied")

	// ErrNoCurrentCard indicates that the active deck has no due cards.
	ErrNoCurrentCard = errors.New("no card is due in this deck")

	// ErrBuiltinDeck indicates an attempt to overwrite a built-in deck.
	ErrBuiltinDeck = errors.New("built-in decks cannot be replaced")

	// ErrInvalidRating indicates a rating other than wrong, hard or easy.
	ErrInvalidRating = domain.ErrInvalidRating
)

// DeckOverview is one row of the deck list.
type DeckOverview struct {
	srs.DeckSummary
	Builtin bool `json:"builtin"`
}

// View is the study screen: the deck, the card under the cursor and the
// reveal and feedback flags.
type View struct {
	DeckID    domain.ID     `json:"deck_id"`
	Title     string        `json:"title"`
	Card      *domain.Card  `json:"card,omitempty"`
	Index     int           `json:"index"`
	DueCount  int           `json:"due_count"`
	Total     int           `json:"total"`
	Flipped   bool          `json:"flipped"`
	Feedback  domain.Rating `json:"feedback,omitempty"`
	Message   string        `json:"message,omitempty"`
	Completed bool          `json:"completed"`
}

// RateResult describes a recorded rating and the screen that follows it.
type RateResult struct {
	View     View          `json:"view"`
	CardID   domain.ID     `json:"card_id"`
	Rating   domain.Rating `json:"rating"`
	NextDue  time.Time     `json:"next_due"`
	Feedback string        `json:"feedback"`
}

// ImportResult describes a stored custom deck.
type ImportResult struct {
	Deck     DeckOverview `json:"deck"`
	Replaced bool         `json:"replaced"`
}

// FeedbackMessage returns the text shown after a rating.
func FeedbackMessage(rating domain.Rating) string {
	switch rating {
	case domain.RatingWrong:
		return "shown again immediately"
	case domain.RatingHard:
		return "shown again in 1 day"
	case domain.RatingEasy:
		return "shown again in 5 days"
	default:
		return ""
	}
}

// ServiceError wraps errors from the study service with additional context.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "rate", "add_deck")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewLoadError returns a new ServiceError for the load operation.
func NewLoadError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "load", Message: message, Err: err}
}

// NewRateError returns a new ServiceError for the rate operation.
func NewRateError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "rate", Message: message, Err: err}
}

// NewAddDeckError returns a new ServiceError for the add_deck operation.
func NewAddDeckError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "add_deck", Message: message, Err: err}
}
