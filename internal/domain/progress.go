package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Progress is an immutable snapshot mapping card identifiers to the instant
// each card is next due. A card without an entry is due immediately.
//
// Every update goes through With, which returns a new snapshot; the receiver
// is never modified, so a snapshot handed to a persistence layer stays
// consistent while newer snapshots are produced.
type Progress struct {
	entries map[ID]time.Time
}

// NewProgress builds a snapshot from the given entries. The map is copied.
func NewProgress(entries map[ID]time.Time) Progress {
	p := Progress{entries: make(map[ID]time.Time, len(entries))}
	for id, t := range entries {
		p.entries[id] = t
	}
	return p
}

// Lookup returns the next-due instant for a card and whether an entry exists.
func (p Progress) Lookup(id ID) (time.Time, bool) {
	t, ok := p.entries[id]
	return t, ok
}

// NextDue returns the next-due instant for a card. Cards without an entry
// get the zero time, which sorts before any real instant.
func (p Progress) NextDue(id ID) time.Time {
	t, ok := p.entries[id]
	if !ok {
		return time.Time{}
	}
	return t
}

// IsDue reports whether a card is due at now.
func (p Progress) IsDue(id ID, now time.Time) bool {
	return !p.NextDue(id).After(now)
}

// With returns a new snapshot with the card's next-due instant set.
func (p Progress) With(id ID, nextDue time.Time) Progress {
	next := Progress{entries: make(map[ID]time.Time, len(p.entries)+1)}
	for k, v := range p.entries {
		next.entries[k] = v
	}
	next.entries[id] = nextDue
	return next
}

// Len returns the number of entries.
func (p Progress) Len() int {
	return len(p.entries)
}

// Entries returns a copy of all entries.
func (p Progress) Entries() map[ID]time.Time {
	out := make(map[ID]time.Time, len(p.entries))
	for k, v := range p.entries {
		out[k] = v
	}
	return out
}

// MarshalJSON encodes the snapshot as {"<card id>": <epoch milliseconds>}.
func (p Progress) MarshalJSON() ([]byte, error) {
	raw := make(map[string]int64, len(p.entries))
	for id, t := range p.entries {
		raw[string(id)] = t.UnixMilli()
	}
	return json.Marshal(raw)
}

// UnmarshalJSON decodes {"<card id>": <epoch milliseconds>}. A stored zero
// is treated as a missing entry.
func (p *Progress) UnmarshalJSON(data []byte) error {
	var raw map[string]int64
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: progress: %v", ErrInvalidFormat, err)
	}

	entries := make(map[ID]time.Time, len(raw))
	for id, ms := range raw {
		if ms == 0 {
			continue
		}
		entries[ID(id)] = time.UnixMilli(ms).UTC()
	}
	p.entries = entries
	return nil
}
