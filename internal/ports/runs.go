package ports

import (
	"context"
	"time"

	"wordlebot/internal/domain"
)

// RunSummary is the persisted outcome of one bot run.
type RunSummary struct {
	RecordedAt time.Time
	Opener     domain.Word
	Games      int
	Wins       int
	Losses     int
	Attempts   int
	Elapsed    time.Duration
	OverPar    int
	// Histogram maps attempts to the number of games won with that many attempts.
	Histogram map[int]int
}

// RunRecorder stores bot run summaries.
type RunRecorder interface {
	// RecordRun persists a single summary.
	RecordRun(ctx context.Context, run RunSummary) error
}

// RunHistory lists previously recorded runs, newest first.
type RunHistory interface {
	ListRuns(ctx context.Context, limit int) ([]RunSummary, error)
}
