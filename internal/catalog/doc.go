// Package catalog provides the deck catalog: the built-in N4 decks compiled
// into the binary, and parsers that turn user-supplied JSON or spreadsheet
// files into decks ready for import.
package catalog
