package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	nextDue := time.UnixMilli(1_700_000_000_000).UTC()
	payload := CardRated{
		DeckID:  "n4-core-v2-p1",
		CardID:  "1",
		Rating:  "easy",
		NextDue: nextDue,
	}

	event, err := NewEvent(TypeCardRated, payload)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, TypeCardRated, event.Type)
	assert.WithinDuration(t, time.Now(), event.CreatedAt, 2*time.Second)

	var decoded CardRated
	require.NoError(t, event.UnmarshalPayload(&decoded))
	assert.Equal(t, payload.DeckID, decoded.DeckID)
	assert.Equal(t, payload.CardID, decoded.CardID)
	assert.True(t, nextDue.Equal(decoded.NextDue))
}

func TestNewEventUnserializablePayload(t *testing.T) {
	_, err := NewEvent("bad", map[string]interface{}{"ch": make(chan int)})
	assert.Error(t, err)
}

// MockEventHandler implements the EventHandler interface for testing
type MockEventHandler struct {
	// The last event received by this handler
	LastEvent *Event
	// Error to return from HandleEvent
	HandlerError error
	// Count of events handled
	HandledCount int
}

// HandleEvent implements the EventHandler interface
func (h *MockEventHandler) HandleEvent(ctx context.Context, event *Event) error {
	h.LastEvent = event
	h.HandledCount++
	return h.HandlerError
}

func TestEventHandlerFunc(t *testing.T) {
	var got *Event
	handler := EventHandlerFunc(func(ctx context.Context, event *Event) error {
		got = event
		return errors.New("boom")
	})

	event, err := NewEvent(TypeDeckCompleted, DeckCompleted{DeckID: "x"})
	require.NoError(t, err)

	assert.EqualError(t, handler.HandleEvent(context.Background(), event), "boom")
	assert.Same(t, event, got)
}
