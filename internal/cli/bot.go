package cli

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wordlebot/internal/bot"
	"wordlebot/internal/ports/sqlite"
)

type botFlags struct {
	games  int
	seed   int64
	opener string
	record bool
}

func newBotCmd(o *rootOptions) *cobra.Command {
	var f botFlags
	cmd := &cobra.Command{
		Use:   "bot",
		Short: "Play unattended games against secrets drawn from the answers",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("games") {
				f.games = o.cfg.Games
			}
			if !cmd.Flags().Changed("seed") {
				f.seed = o.cfg.Seed
			}
			return o.runBot(cmd.Context(), cmd.OutOrStdout(), f)
		},
	}
	cmd.Flags().IntVarP(&f.games, "games", "n", 100, "number of games")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "shuffle seed (0 seeds from the clock)")
	cmd.Flags().StringVar(&f.opener, "opener", "", "first guess (default from config)")
	cmd.Flags().BoolVar(&f.record, "record", true, "store the run summary in the history database")
	return cmd
}

func (o *rootOptions) runBot(ctx context.Context, out io.Writer, f botFlags) error {
	if f.games <= 0 {
		return fmt.Errorf("games must be positive, got %d", f.games)
	}
	vocab, err := o.vocabulary()
	if err != nil {
		return err
	}
	opener, err := o.opener(f.opener)
	if err != nil {
		return err
	}
	svc, err := o.service(vocab, opener)
	if err != nil {
		return err
	}
	if opener == "" {
		session, _, err := svc.Start(ctx, "")
		if err != nil {
			return err
		}
		opener = session.Opener
	}

	seed := f.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	o.logger.Debug("starting bot run", zap.Int("games", f.games), zap.Int64("seed", seed), zap.String("opener", string(opener)))

	harness, err := bot.NewHarness(&bot.Agent{Service: svc, Opener: opener}, vocab.Answers, rand.New(rand.NewSource(seed)), o.logger)
	if err != nil {
		return err
	}
	stats, err := harness.Run(ctx, f.games)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, stats.Summary())

	if !f.record || o.cfg.HistoryPath == "" {
		return nil
	}
	store, err := sqlite.Open(o.cfg.HistoryPath)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.RecordRun(ctx, stats.Report(opener, time.Now()))
}
