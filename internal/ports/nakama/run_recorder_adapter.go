package nakama

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"

	"wordlebot/internal/ports"
)

type storedRun struct {
	RecordedAt string      `json:"recorded_at"`
	Opener     string      `json:"opener"`
	Games      int         `json:"games"`
	Wins       int         `json:"wins"`
	Losses     int         `json:"losses"`
	Attempts   int         `json:"attempts"`
	ElapsedMS  int64       `json:"elapsed_ms"`
	OverPar    int         `json:"over_par"`
	Histogram  map[int]int `json:"histogram,omitempty"`
}

// NakamaRunRecorder implements ports.RunRecorder on storage objects owned by
// the calling user, or by the system when the context carries no user.
type NakamaRunRecorder struct {
	writer StorageWriter
}

// NewNakamaRunRecorder creates a run recorder.
func NewNakamaRunRecorder(writer StorageWriter) *NakamaRunRecorder {
	return &NakamaRunRecorder{writer: writer}
}

// RecordRun stores run keyed by its timestamp.
func (r *NakamaRunRecorder) RecordRun(ctx context.Context, run ports.RunSummary) error {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	recordedAt := run.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}
	stamp := recordedAt.UTC().Format(time.RFC3339Nano)

	value, err := json.Marshal(storedRun{
		RecordedAt: stamp,
		Opener:     string(run.Opener),
		Games:      run.Games,
		Wins:       run.Wins,
		Losses:     run.Losses,
		Attempts:   run.Attempts,
		ElapsedMS:  run.Elapsed.Milliseconds(),
		OverPar:    run.OverPar,
		Histogram:  run.Histogram,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}

	_, err = r.writer.StorageWrite(ctx, []*runtime.StorageWrite{{
		Collection:      runsCollection,
		Key:             stamp,
		UserID:          userID,
		Value:           string(value),
		PermissionRead:  runtime.STORAGE_PERMISSION_OWNER_READ,
		PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
	}})
	if err != nil {
		return fmt.Errorf("failed to write run: %w", err)
	}
	return nil
}

var _ ports.RunRecorder = (*NakamaRunRecorder)(nil)
