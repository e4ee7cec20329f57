package srs

import (
	"fmt"
	"testing"
	"time"

	"github.com/kanjisaya/kanji-srs/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDeck() *domain.Deck {
	return &domain.Deck{
		ID:    "deck",
		Title: "Deck",
		Cards: []domain.Card{{ID: "A"}, {ID: "B"}, {ID: "C"}},
	}
}

func TestNextDueMonotonicity(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()
	t0 := time.UnixMilli(1_700_000_000_000).UTC()

	wrong, err := svc.NextDue(domain.RatingWrong, t0)
	require.NoError(t, err)
	hard, err := svc.NextDue(domain.RatingHard, t0)
	require.NoError(t, err)
	easy, err := svc.NextDue(domain.RatingEasy, t0)
	require.NoError(t, err)

	assert.Equal(t, t0.UnixMilli(), wrong.UnixMilli())
	assert.Equal(t, t0.UnixMilli()+86_400_000, hard.UnixMilli())
	assert.Equal(t, t0.UnixMilli()+432_000_000, easy.UnixMilli())
	assert.False(t, hard.Before(wrong))
	assert.False(t, easy.Before(hard))
}

func TestNextDueRejectsInvalidRating(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()

	_, err := svc.NextDue("good", time.Now())
	assert.ErrorIs(t, err, ErrInvalidRating)
}

func TestRate(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()
	now := time.UnixMilli(1_700_000_000_000).UTC()
	deck := testDeck()

	t.Run("wrong keeps the card in the due list", func(t *testing.T) {
		before := domain.NewProgress(nil)
		after, nextDue, err := svc.Rate(before, "A", domain.RatingWrong, now)
		require.NoError(t, err)

		assert.True(t, nextDue.Equal(now))
		assert.Len(t, svc.DueList(deck, after, now), 3)
	})

	t.Run("easy removes the card from the due list", func(t *testing.T) {
		before := domain.NewProgress(nil)
		after, nextDue, err := svc.Rate(before, "A", domain.RatingEasy, now)
		require.NoError(t, err)

		assert.True(t, nextDue.Equal(now.Add(5*Day)))
		due := svc.DueList(deck, after, now)
		require.Len(t, due, 2)
		assert.Equal(t, domain.ID("B"), due[0].ID)
		assert.Equal(t, domain.ID("C"), due[1].ID)

		assert.Equal(t, 0, before.Len(), "previous snapshot must not be mutated")
	})

	t.Run("invalid rating leaves the snapshot untouched", func(t *testing.T) {
		before := domain.NewProgress(nil)
		after, _, err := svc.Rate(before, "A", "meh", now)
		assert.ErrorIs(t, err, ErrInvalidRating)
		assert.Equal(t, 0, after.Len())
	})

	t.Run("empty card id is rejected", func(t *testing.T) {
		_, _, err := svc.Rate(domain.NewProgress(nil), "", domain.RatingHard, now)
		assert.ErrorIs(t, err, ErrEmptyCardID)
	})
}

func TestDueListIsIdempotent(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()
	now := time.UnixMilli(1_700_000_000_000).UTC()
	deck := testDeck()
	progress := domain.NewProgress(map[domain.ID]time.Time{"B": now.Add(Day)})

	first := svc.DueList(deck, progress, now)
	second := svc.DueList(deck, progress, now)

	assert.Equal(t, first, second)
	assert.Nil(t, svc.DueList(nil, progress, now))
}

func TestDueListMatchesDefinition(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()
	base := time.UnixMilli(1_700_000_000_000).UTC()

	deck := &domain.Deck{ID: "d"}
	entries := map[domain.ID]time.Time{}
	for i := 0; i < 30; i++ {
		id := domain.ID(fmt.Sprintf("card-%02d", i))
		deck.Cards = append(deck.Cards, domain.Card{ID: id})
		switch i % 3 {
		case 0:
			entries[id] = base.Add(time.Duration(i-15) * time.Hour)
		case 1:
			// no entry
		case 2:
			entries[id] = base
		}
	}
	progress := domain.NewProgress(entries)

	for _, now := range []time.Time{base.Add(-48 * time.Hour), base, base.Add(48 * time.Hour)} {
		due := svc.DueList(deck, progress, now)

		var expected []domain.ID
		for _, c := range deck.Cards {
			if !progress.NextDue(c.ID).After(now) {
				expected = append(expected, c.ID)
			}
		}

		got := make([]domain.ID, 0, len(due))
		for _, c := range due {
			got = append(got, c.ID)
		}
		assert.Equal(t, expected, got, "due list must preserve deck order")
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()
	now := time.UnixMilli(1_700_000_000_000).UTC()
	deck := testDeck()
	progress := domain.NewProgress(map[domain.ID]time.Time{
		"A": now.Add(5 * Day), // mastered
		"B": now.Add(Day),     // not due, not mastered
	})

	summary := svc.Summarize(deck, progress, now)

	assert.Equal(t, DeckSummary{DeckID: "deck", Title: "Deck", Total: 3, Due: 1, Mastered: 1}, summary)
	assert.True(t, svc.IsMastered(progress, "A", now))
	assert.False(t, svc.IsMastered(progress, "B", now))
}

func TestNewServiceWithParams(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	params.MasteredThreshold = 12 * time.Hour
	svc := NewServiceWithParams(params)
	now := time.UnixMilli(1_700_000_000_000).UTC()

	progress := domain.NewProgress(map[domain.ID]time.Time{"A": now.Add(Day)})
	assert.True(t, svc.IsMastered(progress, "A", now))
}
