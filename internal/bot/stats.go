package bot

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"wordlebot/internal/app"
	"wordlebot/internal/domain"
	"wordlebot/internal/ports"
)

// Stats accumulates the results of a bot run.
type Stats struct {
	Games    int
	Wins     int
	Losses   int
	Attempts int
	Elapsed  time.Duration
	// Histogram maps attempts to the number of games won with that many attempts.
	Histogram map[int]int
	// OverPar counts wins that needed more than app.Par attempts.
	OverPar int
}

// Record adds a finished session.
func (s *Stats) Record(session app.Session) {
	s.Games++
	if !session.State.Won() {
		s.Losses++
		return
	}
	s.Wins++
	s.Attempts += session.Attempts
	if s.Histogram == nil {
		s.Histogram = make(map[int]int)
	}
	s.Histogram[session.Attempts]++
	if session.Attempts > app.Par {
		s.OverPar++
	}
}

// AverageAttempts is attempts per won game, or zero without wins.
func (s Stats) AverageAttempts() float64 {
	if s.Wins == 0 {
		return 0
	}
	return float64(s.Attempts) / float64(s.Wins)
}

// Summary renders a one-line report.
func (s Stats) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "games=%d wins=%d losses=%d avg=%.4f over_par=%d elapsed=%s",
		s.Games, s.Wins, s.Losses, s.AverageAttempts(), s.OverPar, s.Elapsed.Round(time.Millisecond))
	for _, attempts := range slices.Sorted(maps.Keys(s.Histogram)) {
		fmt.Fprintf(&b, " %d:%d", attempts, s.Histogram[attempts])
	}
	return b.String()
}

// Report converts s into a storable run summary.
func (s Stats) Report(opener domain.Word, at time.Time) ports.RunSummary {
	return ports.RunSummary{
		RecordedAt: at,
		Opener:     opener,
		Games:      s.Games,
		Wins:       s.Wins,
		Losses:     s.Losses,
		Attempts:   s.Attempts,
		Elapsed:    s.Elapsed,
		OverPar:    s.OverPar,
		Histogram:  maps.Clone(s.Histogram),
	}
}
