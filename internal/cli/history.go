package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"wordlebot/internal/ports"
	"wordlebot/internal/ports/sqlite"
)

func newHistoryCmd(o *rootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded bot runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runHistory(cmd.Context(), cmd.OutOrStdout(), limit)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "runs to show (0 shows all)")
	return cmd
}

func (o *rootOptions) runHistory(ctx context.Context, out io.Writer, limit int) error {
	if o.cfg.HistoryPath == "" {
		return fmt.Errorf("history_path is not configured")
	}
	store, err := sqlite.Open(o.cfg.HistoryPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.ListRuns(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs recorded")
		return nil
	}
	for _, run := range runs {
		fmt.Fprintln(out, formatRun(run))
	}
	return nil
}

func formatRun(run ports.RunSummary) string {
	avg := 0.0
	if run.Wins > 0 {
		avg = float64(run.Attempts) / float64(run.Wins)
	}
	return fmt.Sprintf("%s opener=%s games=%d wins=%d losses=%d avg=%.4f over_par=%d elapsed=%s",
		run.RecordedAt.Local().Format(time.DateTime), run.Opener, run.Games, run.Wins, run.Losses,
		avg, run.OverPar, run.Elapsed.Round(time.Millisecond))
}
