package app

import "wordlebot/internal/domain"

// EventKind identifies emitted session events for the CLI and Nakama dispatch.
type EventKind string

const (
	EventGuessProposed     EventKind = "guess_proposed"
	EventRoundApplied      EventKind = "round_applied"
	EventSolved            EventKind = "solved"
	EventSolvedByDeduction EventKind = "solved_by_deduction"
	EventExhausted         EventKind = "exhausted"
)

// Event is an app event with a typed payload.
type Event struct {
	Kind    EventKind
	Payload any
}

// GuessSource tells where a proposed guess came from.
type GuessSource string

const (
	SourceOpener GuessSource = "opener"
	SourceLookup GuessSource = "lookup"
	SourceSearch GuessSource = "search"
)

// GuessProposedPayload is the payload of EventGuessProposed.
type GuessProposedPayload struct {
	Round      int
	Guess      domain.Word
	Source     GuessSource
	Score      float64
	Candidates int
}

// RoundAppliedPayload is the payload of EventRoundApplied.
type RoundAppliedPayload struct {
	Round      int
	Guess      domain.Word
	Feedback   domain.Feedback
	Candidates int
}

// SolvedPayload is the payload of EventSolved and EventSolvedByDeduction.
type SolvedPayload struct {
	Answer   domain.Word
	Attempts int
	Deduced  bool
}

// ExhaustedPayload is the payload of EventExhausted.
type ExhaustedPayload struct {
	Round    int
	Reason   string
	Previous []domain.Word
}
