// Package sqlite stores bot run summaries in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"wordlebot/internal/domain"
	"wordlebot/internal/ports"
)

const schema = `CREATE TABLE IF NOT EXISTS runs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	recorded_at INTEGER NOT NULL,
	opener      TEXT    NOT NULL,
	games       INTEGER NOT NULL,
	wins        INTEGER NOT NULL,
	losses      INTEGER NOT NULL,
	attempts    INTEGER NOT NULL,
	elapsed_ms  INTEGER NOT NULL,
	over_par    INTEGER NOT NULL,
	histogram   TEXT    NOT NULL DEFAULT '{}'
)`

// Store persists run summaries in SQLite.
type Store struct {
	sqlDB *sql.DB
}

var (
	_ ports.RunRecorder = (*Store)(nil)
	_ ports.RunHistory  = (*Store)(nil)
)

// Open opens the database at path and creates the runs table when missing.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// RecordRun inserts one summary. A zero RecordedAt is stamped with the current time.
func (s *Store) RecordRun(ctx context.Context, run ports.RunSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	recordedAt := run.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}
	histogram, err := json.Marshal(run.Histogram)
	if err != nil {
		return fmt.Errorf("encode histogram: %w", err)
	}

	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO runs (recorded_at, opener, games, wins, losses, attempts, elapsed_ms, over_par, histogram)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		recordedAt.UTC().UnixMilli(),
		string(run.Opener),
		run.Games,
		run.Wins,
		run.Losses,
		run.Attempts,
		run.Elapsed.Milliseconds(),
		run.OverPar,
		string(histogram),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// ListRuns returns up to limit summaries, newest first. limit <= 0 returns all.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]ports.RunSummary, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT recorded_at, opener, games, wins, losses, attempts, elapsed_ms, over_par, histogram
		 FROM runs ORDER BY recorded_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []ports.RunSummary
	for rows.Next() {
		var (
			run        ports.RunSummary
			recordedAt int64
			opener     string
			elapsedMS  int64
			histogram  string
		)
		if err := rows.Scan(&recordedAt, &opener, &run.Games, &run.Wins, &run.Losses,
			&run.Attempts, &elapsedMS, &run.OverPar, &histogram); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.RecordedAt = time.UnixMilli(recordedAt).UTC()
		run.Opener = domain.Word(opener)
		run.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		if err := json.Unmarshal([]byte(histogram), &run.Histogram); err != nil {
			return nil, fmt.Errorf("decode histogram: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}
