package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"wordlebot/internal/bot"
	"wordlebot/internal/domain"
	"wordlebot/internal/ports/file"
)

func newBuildLookupCmd(o *rootOptions) *cobra.Command {
	var opener string
	cmd := &cobra.Command{
		Use:   "build-lookup",
		Short: "Precompute the second guess for every feedback the opener can receive",
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runBuildLookup(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opener)
		},
	}
	cmd.Flags().StringVar(&opener, "opener", "", "opener the table is built for (default from config)")
	return cmd
}

func (o *rootOptions) runBuildLookup(ctx context.Context, out, progressOut io.Writer, openerFlag string) error {
	if o.cfg.LookupPath == "" {
		return fmt.Errorf("lookup_path is not configured")
	}
	vocab, err := o.vocabulary()
	if err != nil {
		return err
	}
	opener, err := o.opener(openerFlag)
	if err != nil {
		return err
	}

	sel := bot.NewSelector(o.tuning())
	if opener == "" {
		if opener, err = selectOpener(ctx, sel, vocab); err != nil {
			return err
		}
	}

	p := newProgress(progressOut, "second guesses for "+string(opener))
	table, err := bot.BuildLookup(ctx, sel, opener, vocab.Answers, vocab.All(), p.report)
	p.finish()
	if err != nil {
		return err
	}

	if err := file.SaveLookup(o.cfg.LookupPath, table); err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %d entries for opener %s to %s\n", len(table.Entries), opener, o.cfg.LookupPath)
	return nil
}

func selectOpener(ctx context.Context, sel *bot.Selector, vocab *domain.Vocabulary) (domain.Word, error) {
	if len(vocab.Answers) == 1 {
		return vocab.Answers[0], nil
	}
	opener, _, err := sel.SelectNext(ctx, vocab.Answers, vocab.All())
	return opener, err
}
