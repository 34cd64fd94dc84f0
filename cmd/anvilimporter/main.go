package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/arnoldongithub/atlantic-anvil/internal/app"
	"github.com/arnoldongithub/atlantic-anvil/internal/config"
	"github.com/arnoldongithub/atlantic-anvil/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var schedule bool

	cmd := &cobra.Command{
		Use:   "anvilimporter",
		Short: "Import articles from the configured RSS feeds",
		Long: "anvilimporter fetches every configured publisher feed, stores new articles " +
			"and prints a run summary. With --schedule it runs immediately and then every 30 minutes.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg := config.Load()
			logger := logging.New(cfg.Logging.Level)

			application, err := app.New(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer application.Close()

			if schedule {
				return application.RunScheduled(ctx)
			}

			_, err = application.RunOnce(ctx)
			return err
		},
	}

	cmd.Flags().BoolVar(&schedule, "schedule", false, "run now, then keep importing on the configured cron schedule")
	return cmd
}
