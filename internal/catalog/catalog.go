package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/kanjisaya/kanji-srs/internal/domain"
)

// DeckSize is the number of cards in each built-in deck.
const DeckSize = 20

//go:embed data/n4_kanji.json
var n4KanjiJSON []byte

// builtinDecks is computed once at init and never modified afterwards.
var builtinDecks = mustBuildBuiltinDecks()

func mustBuildBuiltinDecks() []domain.Deck {
	var cards []domain.Card
	if err := json.Unmarshal(n4KanjiJSON, &cards); err != nil {
		panic(fmt.Sprintf("catalog: embedded kanji data is invalid: %v", err))
	}

	chunks := Chunk(cards, DeckSize)
	decks := make([]domain.Deck, 0, len(chunks))
	for i, chunk := range chunks {
		decks = append(decks, domain.Deck{
			ID:    domain.ID(fmt.Sprintf("n4-core-v2-p%d", i+1)),
			Title: fmt.Sprintf("N4 Core Kanji Part %d", i+1),
			Cards: chunk,
		})
	}
	return decks
}

// Chunk splits cards into consecutive groups of at most size cards, keeping
// their order. A non-positive size yields a single group.
func Chunk(cards []domain.Card, size int) [][]domain.Card {
	if len(cards) == 0 {
		return nil
	}
	if size <= 0 {
		size = len(cards)
	}

	chunks := make([][]domain.Card, 0, (len(cards)+size-1)/size)
	for start := 0; start < len(cards); start += size {
		end := start + size
		if end > len(cards) {
			end = len(cards)
		}
		chunks = append(chunks, cards[start:end:end])
	}
	return chunks
}

// BuiltinDecks returns copies of the built-in decks in catalog order.
func BuiltinDecks() []domain.Deck {
	out := make([]domain.Deck, len(builtinDecks))
	for i, d := range builtinDecks {
		out[i] = d.Clone()
	}
	return out
}

// IsBuiltin reports whether id belongs to a built-in deck.
func IsBuiltin(id domain.ID) bool {
	for _, d := range builtinDecks {
		if d.ID == id {
			return true
		}
	}
	return false
}
