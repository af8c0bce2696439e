// Command aurora downloads the NOAA SWPC aurora nowcast, renders it as a
// transparent map overlay and prunes overlays older than the retention window.
//
// Usage:
//
//	aurora [--env-file .env]          run the pipeline once
//	aurora sweep                      run the retention sweep only
//	aurora validate FILE              check a saved forecast payload
//	aurora genmock FILE               write a synthetic forecast payload
package main

import (
	"errors"
	"log/slog"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Errors raised before the configured logger exists still need a line.
		var reported reportedError
		if !errors.As(err, &reported) {
			slog.Error("aurora failed", "error", err)
		}
		os.Exit(1)
	}
}
