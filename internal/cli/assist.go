package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"wordlebot/internal/app"
	"wordlebot/internal/domain"
)

func newAssistCmd(o *rootOptions) *cobra.Command {
	var opener string
	cmd := &cobra.Command{
		Use:   "assist",
		Short: "Suggest guesses for a game played elsewhere",
		Long: `assist prints a guess, then reads the feedback you received for it.
Feedback is five characters: g for the right letter in the right place,
o for a letter present elsewhere, - for an absent letter. Example: g-o--`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runAssist(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), opener)
		},
	}
	cmd.Flags().StringVar(&opener, "opener", "", "first guess (default from config)")
	return cmd
}

func (o *rootOptions) runAssist(ctx context.Context, in io.Reader, out io.Writer, openerFlag string) error {
	vocab, err := o.vocabulary()
	if err != nil {
		return err
	}
	opener, err := o.opener(openerFlag)
	if err != nil {
		return err
	}
	svc, err := o.service(vocab, opener)
	if err != nil {
		return err
	}

	session, _, err := svc.Start(ctx, opener)
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for !session.State.Terminal() {
		fmt.Fprintf(out, "guess %d: %s (%d candidates)\n", session.Round+1, session.Guess, len(session.Pool))
		fmt.Fprint(out, "feedback> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		fb, err := domain.ParseFeedback(scanner.Text())
		if err != nil {
			fmt.Fprintf(out, "%v\n", err)
			continue
		}
		if session, _, err = svc.Advance(ctx, session, fb); err != nil {
			return err
		}
	}

	printOutcome(out, session)
	return nil
}

func printOutcome(out io.Writer, s app.Session) {
	switch s.State {
	case app.StateSolved:
		fmt.Fprintf(out, "solved: %s in %d guesses\n", s.Answer, s.Attempts)
	case app.StateSolvedByDeduction:
		fmt.Fprintf(out, "deduced: %s, enter it as guess %d\n", s.Answer, s.Attempts)
	case app.StateExhausted:
		if s.Reason == app.ReasonRoundLimit {
			fmt.Fprintf(out, "round limit reached with %d candidates left\n", len(s.Pool))
			return
		}
		fmt.Fprintln(out, "no candidates left, the feedback is contradictory")
		fmt.Fprintf(out, "candidates before the last round: %s\n", joinWords(s.PreviousPool))
	}
}

func joinWords(words []domain.Word) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = string(w)
	}
	return strings.Join(parts, " ")
}
