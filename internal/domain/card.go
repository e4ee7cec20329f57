package domain

import "fmt"

// Example is a vocabulary word that uses a card's kanji.
type Example struct {
	Word    string `json:"word"`
	Reading string `json:"reading"` // romaji
	Mean    string `json:"mean"`
}

// Card is a single kanji flashcard. Cards are immutable once loaded and are
// owned by exactly one Deck.
type Card struct {
	ID       ID        `json:"id"`
	Kanji    string    `json:"kanji"`
	Meaning  string    `json:"meaning"`
	Onyomi   string    `json:"onyomi"`
	Kunyomi  string    `json:"kunyomi"`
	Examples []Example `json:"examples"`
}

// Validate checks if the Card has valid data.
func (c *Card) Validate() error {
	if c.ID.IsZero() {
		return ErrEmptyCardID
	}
	return nil
}

// Deck is an ordered sequence of cards. Built-in decks never change; custom
// decks are only ever replaced as a whole.
type Deck struct {
	ID    ID     `json:"id"`
	Title string `json:"title"`
	Cards []Card `json:"cards"`
}

// Validate checks if the Deck has valid data: an identifier, a cards array
// (possibly empty) and unique, non-empty card identifiers.
func (d *Deck) Validate() error {
	if d.ID.IsZero() {
		return ErrEmptyDeckID
	}

	if d.Cards == nil {
		return ErrMissingCards
	}

	seen := make(map[ID]struct{}, len(d.Cards))
	for i := range d.Cards {
		if err := d.Cards[i].Validate(); err != nil {
			return fmt.Errorf("card %d: %w", i, err)
		}
		if _, dup := seen[d.Cards[i].ID]; dup {
			return fmt.Errorf("card %q: %w", d.Cards[i].ID, ErrDuplicateCardID)
		}
		seen[d.Cards[i].ID] = struct{}{}
	}

	return nil
}

// Clone returns a deep copy of the deck so callers can hand it out without
// exposing the catalog's backing arrays.
func (d Deck) Clone() Deck {
	out := Deck{ID: d.ID, Title: d.Title}
	if d.Cards == nil {
		return out
	}

	out.Cards = make([]Card, len(d.Cards))
	for i, c := range d.Cards {
		out.Cards[i] = c
		if c.Examples != nil {
			out.Cards[i].Examples = append([]Example(nil), c.Examples...)
		}
	}
	return out
}
