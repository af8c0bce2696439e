package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSweepCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Delete images older than the retention window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*envFile)
			if err != nil {
				return err
			}
			a := newSweepApp(cfg)
			defer a.close()

			deleted, err := a.runner.Sweep()
			for _, path := range deleted {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			a.pushMetrics(cmd.Context())
			return a.report(err)
		},
	}
}
