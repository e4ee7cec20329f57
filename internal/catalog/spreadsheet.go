package catalog

import (
	"fmt"
	"strings"

	"github.com/kanjisaya/kanji-srs/internal/domain"
	"github.com/xuri/excelize/v2"
)

// SpreadsheetOptions controls how a sheet is turned into a deck.
type SpreadsheetOptions struct {
	DeckID    domain.ID // Identifier of the resulting deck
	Title     string    // Title of the resulting deck
	SheetName string    // Sheet to read; the first sheet when empty
	StartRow  int       // First data row (1-based); rows before it are headers
}

// DefaultSpreadsheetOptions returns options that read the first sheet and
// skip a single header row.
func DefaultSpreadsheetOptions() SpreadsheetOptions {
	return SpreadsheetOptions{
		StartRow: 2, // skip header
	}
}

// Column layout of an import sheet.
const (
	colID = iota
	colKanji
	colMeaning
	colOnyomi
	colKunyomi
	colExamples
)

// ReadSpreadsheet builds a deck from an .xlsx file. Each data row is one
// card with the columns id, kanji, meaning, onyomi, kunyomi, examples. The
// examples cell holds entries of the form word|reading|mean separated by ';'.
// Blank rows are skipped. The result goes through the same validation as a
// JSON import.
func ReadSpreadsheet(path string, opts SpreadsheetOptions) (domain.Deck, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return domain.Deck{}, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := opts.SheetName
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return domain.Deck{}, fmt.Errorf("failed to get rows from sheet %q: %w", sheet, err)
	}

	startRow := opts.StartRow
	if startRow < 1 {
		startRow = 1
	}

	deck := domain.Deck{
		ID:    opts.DeckID,
		Title: opts.Title,
		Cards: make([]domain.Card, 0, len(rows)),
	}

	for i, row := range rows {
		if i < startRow-1 || isBlankRow(row) {
			continue
		}

		card, err := cardFromRow(row)
		if err != nil {
			return domain.Deck{}, fmt.Errorf("%w: row %d: %w", ErrInvalidDeckFormat, i+1, err)
		}
		deck.Cards = append(deck.Cards, card)
	}

	if err := deck.Validate(); err != nil {
		return domain.Deck{}, fmt.Errorf("%w: %w", ErrInvalidDeckFormat, err)
	}

	return deck, nil
}

func cardFromRow(row []string) (domain.Card, error) {
	card := domain.Card{
		ID:      domain.ID(cell(row, colID)),
		Kanji:   cell(row, colKanji),
		Meaning: cell(row, colMeaning),
		Onyomi:  cell(row, colOnyomi),
		Kunyomi: cell(row, colKunyomi),
	}

	examples, err := parseExamples(cell(row, colExamples))
	if err != nil {
		return domain.Card{}, err
	}
	card.Examples = examples

	return card, card.Validate()
}

// parseExamples parses "word|reading|mean;word|reading|mean".
func parseExamples(s string) ([]domain.Example, error) {
	examples := []domain.Example{}
	for _, entry := range strings.Split(s, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.Split(entry, "|")
		if len(parts) != 3 {
			return nil, fmt.Errorf("example %q: expected word|reading|mean", entry)
		}
		examples = append(examples, domain.Example{
			Word:    strings.TrimSpace(parts[0]),
			Reading: strings.TrimSpace(parts[1]),
			Mean:    strings.TrimSpace(parts[2]),
		})
	}
	return examples, nil
}

// cell returns the trimmed value at idx, or "" when the row is shorter.
func cell(row []string, idx int) string {
	if idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
