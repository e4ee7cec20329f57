package study

import (
	"context"

	"github.com/kanjisaya/kanji-srs/internal/domain"
	"github.com/kanjisaya/kanji-srs/internal/store"
)

// ProgressRepository persists the progress snapshot.
type ProgressRepository interface {
	Load(ctx context.Context) (domain.Progress, error)
	Save(ctx context.Context, progress domain.Progress) error
}

// DeckRepository persists the custom deck list as a whole.
type DeckRepository interface {
	Load(ctx context.Context) ([]domain.Deck, error)
	Save(ctx context.Context, decks []domain.Deck) error
}

var (
	_ ProgressRepository = (*store.ProgressStore)(nil)
	_ DeckRepository     = (*store.DeckStore)(nil)
)
