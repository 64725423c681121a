package ports

import (
	"context"

	"wordlebot/internal/domain"
)

// LookupPort serves precomputed second guesses.
type LookupPort interface {
	// SecondGuess returns the stored guess to play after opener received fb.
	// ok is false when the table was built for another opener or has no entry.
	SecondGuess(ctx context.Context, opener domain.Word, fb domain.Feedback) (guess domain.Word, ok bool, err error)
}

// LookupTable is an in-memory second-guess table built for a single opener.
type LookupTable struct {
	Opener  domain.Word
	Entries map[domain.Feedback]domain.Word
}

// NewLookupTable returns an empty table for opener.
func NewLookupTable(opener domain.Word) *LookupTable {
	return &LookupTable{Opener: opener, Entries: make(map[domain.Feedback]domain.Word)}
}

// SecondGuess implements LookupPort.
func (t *LookupTable) SecondGuess(_ context.Context, opener domain.Word, fb domain.Feedback) (domain.Word, bool, error) {
	if t == nil || opener != t.Opener {
		return "", false, nil
	}
	guess, ok := t.Entries[fb]
	return guess, ok, nil
}
