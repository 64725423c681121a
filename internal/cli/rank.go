package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wordlebot/internal/bot"
	"wordlebot/internal/ports/file"
)

func newRankOpenersCmd(o *rootOptions) *cobra.Command {
	var top int
	cmd := &cobra.Command{
		Use:   "rank-openers",
		Short: "Score every word as a first guess and write the ranking",
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runRankOpeners(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), top)
		},
	}
	cmd.Flags().IntVar(&top, "top", 10, "number of openers to print")
	return cmd
}

func (o *rootOptions) runRankOpeners(ctx context.Context, out, progressOut io.Writer, top int) error {
	vocab, err := o.vocabulary()
	if err != nil {
		return err
	}

	p := newProgress(progressOut, "scoring openers")
	sel := bot.NewSelector(o.tuning(), bot.WithProgress(p.report))
	ranked, err := bot.RankOpeners(ctx, sel, vocab.Answers, vocab.All())
	p.finish()
	if err != nil {
		return err
	}

	if err := file.SaveRanking(o.cfg.RankingPath, ranked); err != nil {
		return err
	}
	o.logger.Info("wrote opener ranking", zap.String("path", o.cfg.RankingPath), zap.Int("words", len(ranked)))

	for i := 0; i < top && i < len(ranked); i++ {
		fmt.Fprintf(out, "%2d. %s %.2f\n", i+1, ranked[i].Word, ranked[i].Score)
	}
	return nil
}
