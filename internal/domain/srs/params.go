package srs

import (
	"time"

	"github.com/kanjisaya/kanji-srs/internal/domain"
)

// Day is the length of one scheduling day.
const Day = 24 * time.Hour

// Params defines the fixed scheduling buckets.
type Params struct {
	// Delay until the card is due again, per rating
	Intervals map[domain.Rating]time.Duration

	// A card counts as mastered when its next-due instant lies further than
	// this beyond now. Display only; nothing is persisted for it.
	MasteredThreshold time.Duration
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		Intervals: map[domain.Rating]time.Duration{
			domain.RatingWrong: 0,
			domain.RatingHard:  Day,
			domain.RatingEasy:  5 * Day,
		},
		MasteredThreshold: 3 * Day,
	}
}
