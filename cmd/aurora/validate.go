package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/aurora-forecast-etl/internal/domain"
)

func newValidateCmd() *cobra.Command {
	var (
		prefix string
		format string
	)
	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a saved forecast payload the way the pipeline would",
		Long:  "Parse FILE (or - for stdin) and report its grid shape, validity time,\nvalue range and the image filename it would produce.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			f, err := domain.ParseForecast(raw)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			rows, cols := f.Grid.Dims()
			lo, hi := f.Grid.Range()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "grid:     %dx%d\n", rows, cols)
			fmt.Fprintf(out, "valid at: %s\n", f.ValidAt.Format("2006-01-02 15:04"))
			fmt.Fprintf(out, "range:    %g .. %g\n", lo, hi)
			fmt.Fprintf(out, "image:    %s\n", filepath.Base(domain.OutputPath(".", prefix, f.ValidAt, format)))
			return nil
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", "ovona", "image filename prefix")
	cmd.Flags().StringVar(&format, "format", "jpg", "image file extension")
	return cmd
}

func readInput(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
