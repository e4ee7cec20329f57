package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kanjisaya/kanji-srs/internal/domain"
)

// ErrInvalidDeckFormat is returned when imported deck data cannot be used.
// The underlying cause is wrapped alongside it.
var ErrInvalidDeckFormat = errors.New("invalid deck format: JSON object with id, title and cards[] is required")

// ParseDeck parses raw JSON into a deck. The deck needs a non-empty id and a
// cards array; every card needs an id that is unique within the deck.
func ParseDeck(raw []byte) (domain.Deck, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return domain.Deck{}, fmt.Errorf("%w: empty input", ErrInvalidDeckFormat)
	}

	var deck domain.Deck
	if err := json.Unmarshal(raw, &deck); err != nil {
		return domain.Deck{}, fmt.Errorf("%w: %w", ErrInvalidDeckFormat, err)
	}

	if err := deck.Validate(); err != nil {
		return domain.Deck{}, fmt.Errorf("%w: %w", ErrInvalidDeckFormat, err)
	}

	return deck, nil
}
