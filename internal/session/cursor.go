package session

import (
	"github.com/kanjisaya/kanji-srs/internal/domain"
)

// State is the study session for one deck.
type State struct {
	// DeckID is the deck being studied.
	DeckID domain.ID

	// Index points into the current due list. Only meaningful while the due
	// list is non-empty.
	Index int

	// Flipped is set once the back of the current card has been revealed.
	Flipped bool

	// Feedback holds the last rating given, until the learner navigates away.
	Feedback domain.Rating
}

// Enter starts a session on a deck at the first due card.
func Enter(deckID domain.ID) State {
	return State{DeckID: deckID}
}

// Next moves to the following card, wrapping around. With one card or none
// there is nowhere to go and the state is returned unchanged.
func (s State) Next(length int) State {
	if length <= 1 {
		return s
	}
	s.Index = (s.Index + 1) % length
	s.Flipped = false
	s.Feedback = ""
	return s
}

// Prev moves to the preceding card, wrapping around.
func (s State) Prev(length int) State {
	if length <= 1 {
		return s
	}
	s.Index = (s.Index - 1 + length) % length
	s.Flipped = false
	s.Feedback = ""
	return s
}

// Flip toggles the reveal flag.
func (s State) Flip() State {
	s.Flipped = !s.Flipped
	return s
}

// AfterRating re-derives the cursor once the due list has been recomputed
// following a rating. before is the due list length the rated card was taken
// from, after is the recomputed length.
//
// A wrong card stays due, so the cursor advances to show something else. A
// hard or easy card leaves the list and the next card slides into the same
// position, so the index is held; if the rated card was the last element the
// cursor wraps to the start instead.
func (s State) AfterRating(rating domain.Rating, before, after int) State {
	switch rating {
	case domain.RatingWrong:
		if after > 0 {
			s.Index = (s.Index + 1) % after
		}
	case domain.RatingHard, domain.RatingEasy:
		if s.Index >= before-1 {
			s.Index = 0
		}
	}

	s = s.Reconcile(after)
	s.Flipped = false
	s.Feedback = rating
	return s
}

// Reconcile snaps the index back to 0 when it no longer fits a non-empty due
// list. It runs after every recomputation, whatever caused it.
func (s State) Reconcile(length int) State {
	if length > 0 && (s.Index >= length || s.Index < 0) {
		s.Index = 0
	}
	return s
}

// Current returns the index of the card on screen. ok is false when the due
// list is empty and the deck is completed.
func (s State) Current(length int) (index int, ok bool) {
	if length == 0 {
		return 0, false
	}
	return s.Reconcile(length).Index, true
}
