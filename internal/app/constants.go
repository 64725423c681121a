package app

import "wordlebot/internal/domain"

// DefaultOpener is the first guess used when no opener is configured.
const DefaultOpener domain.Word = "trace"

// Par is the conventional number of guesses a game allows.
const Par = 6

// Reasons recorded on exhausted sessions.
const (
	ReasonContradiction = "contradictory_feedback"
	ReasonRoundLimit    = "round_limit"
)
