// Package store defines the persistence boundary of the application.
//
// All learner state lives in a key-value store under two keys: the progress
// snapshot and the list of custom decks. KVStore abstracts the backend
// (PostgreSQL, SQLite or memory, see internal/platform); ProgressStore and
// DeckStore encode and decode the two values and recover from malformed
// data instead of failing.
package store
