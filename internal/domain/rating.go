package domain

// Rating is the learner's self-assessed recall outcome for the current card.
type Rating string

// Possible rating values
const (
	RatingWrong Rating = "wrong"
	RatingHard  Rating = "hard"
	RatingEasy  Rating = "easy"
)

// IsValid reports whether r is one of the three known ratings.
func (r Rating) IsValid() bool {
	switch r {
	case RatingWrong, RatingHard, RatingEasy:
		return true
	default:
		return false
	}
}

// Validate returns ErrInvalidRating for anything other than wrong, hard or easy.
func (r Rating) Validate() error {
	if !r.IsValid() {
		return ErrInvalidRating
	}
	return nil
}

// KeepsCardDue reports whether a card rated r stays in the due list.
func (r Rating) KeepsCardDue() bool {
	return r == RatingWrong
}
