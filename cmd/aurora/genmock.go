package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/aurora-forecast-etl/internal/domain"
	"github.com/couchcryptid/aurora-forecast-etl/internal/mockdata"
)

const validAtLayout = "2006-01-02 15:04"

func newGenmockCmd() *cobra.Command {
	var (
		validAt  string
		constant float64
		rows     int
		cols     int
	)
	cmd := &cobra.Command{
		Use:   "genmock FILE",
		Short: "Write a synthetic forecast payload",
		Long: "Write a payload in the SWPC nowcast text layout to FILE (or - for stdout).\n" +
			"The grid holds an auroral-oval pattern unless --constant is given.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := time.Parse(validAtLayout, validAt)
			if err != nil {
				return fmt.Errorf("invalid --valid-at %q: %w", validAt, err)
			}

			p := mockdata.Standard(t)
			p.Rows, p.Cols = rows, cols
			if cmd.Flags().Changed("constant") {
				p.Fill = mockdata.Constant(constant)
			}

			if args[0] == "-" {
				_, err = io.WriteString(cmd.OutOrStdout(), p.String())
				return err
			}
			if err := os.WriteFile(args[0], []byte(p.String()), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %dx%d payload valid at %s to %s\n", rows, cols, validAt, args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&validAt, "valid-at", "2021-03-15 04:30", "forecast validity time (YYYY-MM-DD HH:MM, UTC)")
	cmd.Flags().Float64Var(&constant, "constant", 0, "fill every cell with this value")
	cmd.Flags().IntVar(&rows, "rows", domain.GridRows, "grid rows")
	cmd.Flags().IntVar(&cols, "cols", domain.GridCols, "grid columns")
	return cmd
}
