package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"wordlebot/internal/config"
)

// rootOptions carries the persistent flags and what PersistentPreRunE builds from them.
type rootOptions struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "wordlebot",
		Short:        "Solve five-letter word puzzles by eliminating candidates",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "wordlebot.yaml", "config file (missing file keeps defaults)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newBotCmd(opts))
	cmd.AddCommand(newAssistCmd(opts))
	cmd.AddCommand(newRankOpenersCmd(opts))
	cmd.AddCommand(newBuildLookupCmd(opts))
	cmd.AddCommand(newHistoryCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func (o *rootOptions) init() error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	o.cfg = cfg

	zcfg := zap.NewProductionConfig()
	if o.verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if o.logger, err = zcfg.Build(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}
