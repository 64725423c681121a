package app

import (
	"fmt"
	"slices"

	"wordlebot/internal/domain"
)

// State is the lifecycle stage of a solving session.
type State string

const (
	StateStart             State = "start"
	StateGuessing          State = "guessing"
	StateSolved            State = "solved"
	StateSolvedByDeduction State = "solved_by_deduction"
	StateExhausted         State = "exhausted"
)

// Terminal reports whether no further feedback is accepted.
func (s State) Terminal() bool {
	switch s {
	case StateSolved, StateSolvedByDeduction, StateExhausted:
		return true
	default:
		return false
	}
}

// Won reports whether the session ended with a known answer.
func (s State) Won() bool {
	return s == StateSolved || s == StateSolvedByDeduction
}

// Round is one observed (guess, feedback) pair.
type Round struct {
	Guess    domain.Word
	Feedback domain.Feedback
}

func (r Round) String() string {
	return fmt.Sprintf("%s:%s", r.Guess, r.Feedback)
}

// Limits bound a session. Zero values mean unbounded.
type Limits struct {
	MaxRounds int
}

// Session is a value record; transitions return a new Session with Version incremented.
type Session struct {
	Version int
	State   State
	Opener  domain.Word
	// Guess is the word awaiting feedback. Empty while a choice is pending or once terminal.
	Guess        domain.Word
	Pool         []domain.Word
	PreviousPool []domain.Word
	Round        int
	// Secret is set by the bot harness and left empty in assistant mode.
	Secret   domain.Word
	History  []Round
	Answer   domain.Word
	Attempts int
	Reason   string
	Limits   Limits
}

// NewSession starts guessing with opener against a copy of answers.
func NewSession(answers []domain.Word, opener domain.Word, limits Limits) Session {
	return Session{
		Version: 1,
		State:   StateGuessing,
		Opener:  opener,
		Guess:   opener,
		Pool:    slices.Clone(answers),
		Limits:  limits,
	}
}

// Apply folds feedback for the current guess into s. The caller must ensure s
// is guessing with a current guess; otherwise s is returned unchanged.
func Apply(s Session, fb domain.Feedback) Session {
	if s.State != StateGuessing || s.Guess == "" {
		return s
	}

	next := s
	next.PreviousPool = s.Pool
	next.Pool = domain.Filter(s.Pool, s.Guess, fb)
	next.History = append(slices.Clone(s.History), Round{Guess: s.Guess, Feedback: fb})
	next.Round = s.Round + 1
	next.Version = s.Version + 1
	next.Guess = ""

	switch {
	case fb.IsSolved():
		next.State = StateSolved
		next.Answer = s.Guess
		next.Attempts = next.Round
	case len(next.Pool) == 0:
		next.State = StateExhausted
		next.Reason = ReasonContradiction
	case len(next.Pool) == 1:
		next.State = StateSolvedByDeduction
		next.Answer = next.Pool[0]
		next.Attempts = next.Round + 1
	case s.Limits.MaxRounds > 0 && next.Round >= s.Limits.MaxRounds:
		next.State = StateExhausted
		next.Reason = ReasonRoundLimit
	default:
		next.State = StateGuessing
	}
	return next
}

// Replay rebuilds a session from its history without running guess selection.
// guess becomes the pending guess when the replayed session is still guessing.
func Replay(answers []domain.Word, opener domain.Word, history []Round, guess domain.Word, limits Limits) (Session, error) {
	s := NewSession(answers, opener, limits)
	for i, round := range history {
		if s.State.Terminal() {
			return Session{}, fmt.Errorf("round %d after terminal state %s", i+1, s.State)
		}
		s.Guess = round.Guess
		s = Apply(s, round.Feedback)
	}
	if s.State == StateGuessing && len(history) > 0 {
		s.Guess = guess
	}
	return s, nil
}
