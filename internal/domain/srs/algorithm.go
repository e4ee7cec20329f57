package srs

import (
	"time"

	"github.com/kanjisaya/kanji-srs/internal/domain"
)

// calculateNextDue returns the instant a card rated with rating becomes due
// again. wrong keeps the card due at now; hard and easy push it out by the
// configured interval.
func calculateNextDue(rating domain.Rating, now time.Time, params *Params) time.Time {
	return now.Add(params.Intervals[rating])
}

// filterDue returns the cards of deck that are due at now, in deck order.
// A card without a progress entry is always due.
func filterDue(deck *domain.Deck, progress domain.Progress, now time.Time) []domain.Card {
	due := make([]domain.Card, 0, len(deck.Cards))
	for _, card := range deck.Cards {
		if progress.IsDue(card.ID, now) {
			due = append(due, card)
		}
	}
	return due
}

// isMastered reports whether a card's next-due instant lies more than the
// mastered threshold beyond now. Cards never rated are not mastered.
func isMastered(progress domain.Progress, id domain.ID, now time.Time, params *Params) bool {
	nextDue, ok := progress.Lookup(id)
	if !ok {
		return false
	}
	return nextDue.Sub(now) > params.MasteredThreshold
}

// summarize aggregates counts for one deck. Pure read; nothing is mutated.
func summarize(deck *domain.Deck, progress domain.Progress, now time.Time, params *Params) DeckSummary {
	summary := DeckSummary{
		DeckID: deck.ID,
		Title:  deck.Title,
		Total:  len(deck.Cards),
	}

	for _, card := range deck.Cards {
		if progress.IsDue(card.ID, now) {
			summary.Due++
		}
		if isMastered(progress, card.ID, now, params) {
			summary.Mastered++
		}
	}

	return summary
}
