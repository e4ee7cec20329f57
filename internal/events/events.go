package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the application.
const (
	TypeCardRated     = "card.rated"
	TypeDeckCompleted = "deck.completed"
	TypeDeckImported  = "deck.imported"
	TypeDigestDue     = "digest.due"
)

// Event records something that happened in the application.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Type* constants
	Type string `json:"type"`

	// Payload contains the type-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *Event) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent creates a new Event with the specified type and payload.
func NewEvent(eventType string, payload interface{}) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// CardRated is the payload of TypeCardRated.
type CardRated struct {
	DeckID  string    `json:"deck_id"`
	CardID  string    `json:"card_id"`
	Rating  string    `json:"rating"`
	NextDue time.Time `json:"next_due"`
}

// DeckCompleted is the payload of TypeDeckCompleted.
type DeckCompleted struct {
	DeckID string `json:"deck_id"`
}

// DeckImported is the payload of TypeDeckImported.
type DeckImported struct {
	DeckID   string `json:"deck_id"`
	Title    string `json:"title"`
	Cards    int    `json:"cards"`
	Replaced bool   `json:"replaced"`
}

// DigestDue is the payload of TypeDigestDue.
type DigestDue struct {
	GeneratedAt time.Time     `json:"generated_at"`
	TotalDue    int           `json:"total_due"`
	Decks       []DigestEntry `json:"decks"`
}

// DigestEntry is one deck's line in a digest.
type DigestEntry struct {
	DeckID string `json:"deck_id"`
	Title  string `json:"title"`
	Due    int    `json:"due"`
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *Event) error
}

// EventHandlerFunc adapts a function to EventHandler.
type EventHandlerFunc func(ctx context.Context, event *Event) error

// HandleEvent calls f.
func (f EventHandlerFunc) HandleEvent(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *Event) error
}
