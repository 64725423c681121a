package app

// Phase describes how the next guess of a session is chosen.
type Phase int

const (
	// PhaseOpening indicates no feedback has been applied yet; the opener is played.
	PhaseOpening Phase = iota
	// PhaseSecond indicates exactly one round was applied; a precomputed table may answer.
	PhaseSecond
	// PhaseSearch indicates the guess is chosen by scoring the vocabulary.
	PhaseSearch
	// PhaseFinished indicates the session is terminal.
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseOpening:
		return "opening"
	case PhaseSecond:
		return "second"
	case PhaseSearch:
		return "search"
	default:
		return "finished"
	}
}

// DetectPhase infers the phase from the session state and round counter.
func DetectPhase(s Session) Phase {
	if s.State.Terminal() {
		return PhaseFinished
	}
	switch s.Round {
	case 0:
		return PhaseOpening
	case 1:
		return PhaseSecond
	default:
		return PhaseSearch
	}
}
