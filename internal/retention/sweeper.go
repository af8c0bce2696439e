// Package retention deletes rendered images that have aged out.
package retention

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/couchcryptid/aurora-forecast-etl/internal/domain"
)

// DefaultMaxAge is the retention window applied when none is configured.
const DefaultMaxAge = 7 * 24 * time.Hour

// Sweeper removes files older than a cutoff from a fixed set of directories.
// It implements pipeline.Sweeper.
type Sweeper struct {
	logger *slog.Logger

	// changeTime reports the timestamp compared against the cutoff.
	changeTime func(fs.FileInfo) time.Time
}

// NewSweeper creates a Sweeper that ages files by their status-change time.
func NewSweeper(logger *slog.Logger) *Sweeper {
	return &Sweeper{
		logger:     logger,
		changeTime: statusChangeTime,
	}
}

// Sweep lists each directory (non-recursively) and deletes every regular
// file whose change time is strictly before now-maxAge. Subdirectories are
// left alone. A failure on one entry does not stop the sweep; all failures are
// returned together as a *multierror.Error of *domain.SweepError.
func (s *Sweeper) Sweep(dirs []string, maxAge time.Duration) ([]string, error) {
	cutoff := domain.Now().Add(-maxAge)

	var (
		deleted []string
		errs    *multierror.Error
	)
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			errs = multierror.Append(errs, &domain.SweepError{Path: dir, Err: err})
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			path := filepath.Join(dir, entry.Name())

			info, err := entry.Info()
			if err != nil {
				errs = multierror.Append(errs, &domain.SweepError{Path: path, Err: err})
				continue
			}
			if !s.changeTime(info).Before(cutoff) {
				continue
			}

			if err := os.Remove(path); err != nil {
				errs = multierror.Append(errs, &domain.SweepError{Path: path, Err: err})
				continue
			}
			deleted = append(deleted, path)
			s.logger.Debug("expired file removed", "path", path)
		}
	}

	s.logger.Info("retention sweep finished",
		"directories", len(dirs),
		"deleted", len(deleted),
		"failures", len(errs.WrappedErrors()),
		"cutoff", cutoff,
	)
	return deleted, errs.ErrorOrNil()
}
