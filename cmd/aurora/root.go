package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/aurora-forecast-etl/internal/config"
)

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:   "aurora",
		Short: "Render the aurora nowcast as a map overlay",
		Long: "Fetch the OVATION aurora nowcast from NOAA SWPC, write one transparent image\n" +
			"for the 30-minute forecast and delete images older than the retention window.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(envFile)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runPipeline(ctx, cfg)
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file loaded before reading the environment")

	root.AddCommand(
		newSweepCmd(&envFile),
		newValidateCmd(),
		newGenmockCmd(),
	)
	return root
}

func loadConfig(envFile string) (*config.Config, error) {
	if envFile != "" {
		return config.LoadFile(envFile)
	}
	return config.Load()
}

func runPipeline(ctx context.Context, cfg *config.Config) error {
	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.close()

	_, runErr := a.runner.Run(ctx)
	a.pushMetrics(ctx)
	return a.report(runErr)
}
