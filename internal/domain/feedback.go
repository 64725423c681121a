package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFeedback is returned when feedback text is malformed.
var ErrInvalidFeedback = errors.New("invalid feedback")

// Symbol is the per-position feedback for one guessed letter.
type Symbol uint8

const (
	// Absent means no unconsumed occurrence of the letter remains in the secret.
	Absent Symbol = iota
	// Present means the letter occurs elsewhere in the secret.
	Present
	// Hit means the letter is in the correct position.
	Hit
)

// Text symbols used by the assistant prompt and the lookup artifacts.
const (
	AbsentChar  = '-'
	PresentChar = 'o'
	HitChar     = 'g'
)

// Char returns the text encoding of s.
func (s Symbol) Char() byte {
	switch s {
	case Hit:
		return HitChar
	case Present:
		return PresentChar
	default:
		return AbsentChar
	}
}

func (s Symbol) String() string {
	switch s {
	case Hit:
		return "hit"
	case Present:
		return "present"
	default:
		return "absent"
	}
}

// Feedback is the ordered feedback vector for a guess. It is comparable and
// can be used as a map key.
type Feedback [WordLength]Symbol

// Solved is the all-Hit feedback.
var Solved = Feedback{Hit, Hit, Hit, Hit, Hit}

// ParseFeedback decodes text such as "g-o--". Upper-case G and O are accepted.
func ParseFeedback(raw string) (Feedback, error) {
	s := strings.TrimSpace(raw)
	if len(s) != WordLength {
		return Feedback{}, fmt.Errorf("%w: %q has %d symbols, want %d", ErrInvalidFeedback, raw, len(s), WordLength)
	}

	var fb Feedback
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case HitChar, 'G':
			fb[i] = Hit
		case PresentChar, 'O':
			fb[i] = Present
		case AbsentChar:
			fb[i] = Absent
		default:
			return Feedback{}, fmt.Errorf("%w: %q at position %d, use %q, %q or %q",
				ErrInvalidFeedback, s[i], i+1, HitChar, PresentChar, AbsentChar)
		}
	}
	return fb, nil
}

// String returns the text encoding, e.g. "g-o--".
func (f Feedback) String() string {
	var b [WordLength]byte
	for i, s := range f {
		b[i] = s.Char()
	}
	return string(b[:])
}

// IsSolved reports whether every position is a Hit.
func (f Feedback) IsSolved() bool {
	return f == Solved
}

// Hits counts Hit positions.
func (f Feedback) Hits() int {
	n := 0
	for _, s := range f {
		if s == Hit {
			n++
		}
	}
	return n
}

// Index encodes f as a base-3 number with position 0 as the most significant digit.
func (f Feedback) Index() int {
	idx := 0
	for _, s := range f {
		idx = idx*SymbolCount + int(s)
	}
	return idx
}

// FeedbackFromIndex decodes a base-3 index produced by Index.
func FeedbackFromIndex(idx int) Feedback {
	var f Feedback
	for i := WordLength - 1; i >= 0; i-- {
		f[i] = Symbol(idx % SymbolCount)
		idx /= SymbolCount
	}
	return f
}
