package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidWord is returned when a string is not a WordLength lowercase word.
var ErrInvalidWord = errors.New("invalid word")

// Word is a fixed-length lowercase word. Words are compared and indexed bytewise.
type Word string

// ParseWord normalizes and validates raw input into a Word.
func ParseWord(raw string) (Word, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if len(s) != WordLength {
		return "", fmt.Errorf("%w: %q has %d letters, want %d", ErrInvalidWord, raw, len(s), WordLength)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return "", fmt.Errorf("%w: %q contains %q", ErrInvalidWord, raw, s[i])
		}
	}
	return Word(s), nil
}

// Valid reports whether w has WordLength letters in a..z.
func (w Word) Valid() bool {
	if len(w) != WordLength {
		return false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'a' || w[i] > 'z' {
			return false
		}
	}
	return true
}

// Vocabulary holds the two fixed word lists supplied by a loader.
type Vocabulary struct {
	// Answers are the possible secrets.
	Answers []Word
	// Guesses are additional words that may be offered as guesses.
	Guesses []Word

	all   []Word
	index map[Word]int
}

// NewVocabulary validates both lists and precomputes the guessing order.
// The guessing order is Answers followed by Guesses with repeats dropped.
func NewVocabulary(answers, guesses []Word) (*Vocabulary, error) {
	if len(answers) == 0 {
		return nil, fmt.Errorf("answers list is empty")
	}
	for i, w := range answers {
		if !w.Valid() {
			return nil, fmt.Errorf("answers[%d]: %w: %q", i, ErrInvalidWord, w)
		}
	}
	for i, w := range guesses {
		if !w.Valid() {
			return nil, fmt.Errorf("guesses[%d]: %w: %q", i, ErrInvalidWord, w)
		}
	}

	index := make(map[Word]int, len(answers)+len(guesses))
	all := make([]Word, 0, len(answers)+len(guesses))
	for _, list := range [][]Word{answers, guesses} {
		for _, w := range list {
			if _, ok := index[w]; ok {
				continue
			}
			index[w] = len(all)
			all = append(all, w)
		}
	}

	return &Vocabulary{
		Answers: append([]Word(nil), answers...),
		Guesses: append([]Word(nil), guesses...),
		all:     all,
		index:   index,
	}, nil
}

// All returns the guessing vocabulary in tie-break order. Callers must not modify it.
func (v *Vocabulary) All() []Word {
	return v.all
}

// Contains reports whether w may be offered as a guess.
func (v *Vocabulary) Contains(w Word) bool {
	_, ok := v.index[w]
	return ok
}
