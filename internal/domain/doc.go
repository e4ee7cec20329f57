// Package domain contains the core business entities, value objects, and
// domain logic of the application: kanji cards, decks, learner ratings and
// the progress snapshot that records when each card is next due. It is
// independent of any specific infrastructure or delivery mechanism.
package domain
