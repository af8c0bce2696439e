package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/couchcryptid/aurora-forecast-etl/internal/domain"
	"github.com/couchcryptid/aurora-forecast-etl/internal/observability"
)

// Fetcher downloads the raw forecast text.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Renderer writes one image for a forecast into dir and returns its path.
type Renderer interface {
	Render(f domain.Forecast, dir string) (string, error)
}

// Sweeper deletes files older than maxAge from dirs.
type Sweeper interface {
	Sweep(dirs []string, maxAge time.Duration) ([]string, error)
}

// Notifier announces a rendered image to downstream consumers.
type Notifier interface {
	Publish(ctx context.Context, event domain.ImageRendered) error
}

// FailureRecorder appends one entry per failed acquisition.
type FailureRecorder interface {
	Record(at time.Time) error
}

// Settings are the fixed inputs of a run.
type Settings struct {
	SourceURL     string
	ImageDir      string
	MonitoredDirs []string
	Retention     time.Duration
}

// Runner executes one fetch-parse-render-sweep cycle.
type Runner struct {
	settings Settings
	fetcher  Fetcher
	renderer Renderer
	sweeper  Sweeper
	failures FailureRecorder
	notifier Notifier
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// New creates a Runner with the given stages and observability.
func New(s Settings, f Fetcher, r Renderer, sw Sweeper, fr FailureRecorder, logger *slog.Logger, metrics *observability.Metrics) *Runner {
	return &Runner{
		settings: s,
		fetcher:  f,
		renderer: r,
		sweeper:  sw,
		failures: fr,
		logger:   logger,
		metrics:  metrics,
	}
}

// WithNotifier enables image notifications. A nil notifier disables them.
func (p *Runner) WithNotifier(n Notifier) *Runner {
	p.notifier = n
	return p
}

// Result describes how far a run got.
type Result struct {
	RunID string
	Stage Stage
	// FailedAt is the stage that failed when Stage is StageFailed.
	FailedAt  Stage
	ValidAt   time.Time
	ImagePath string
	Deleted   []string
}

// Run bootstraps the output directories, fetches and parses the forecast,
// renders it and sweeps expired images.
//
// A fetch or parse failure is recorded through the FailureRecorder and
// returned; nothing is rendered or swept. Render failures are returned as is.
// Sweep and notification failures are logged and do not fail the run.
func (p *Runner) Run(ctx context.Context) (Result, error) {
	res := Result{RunID: uuid.NewString(), Stage: StageStart}
	logger := p.logger.With("run_id", res.RunID)
	logger.Info("pipeline run started", "source", p.settings.SourceURL, "image_dir", p.settings.ImageDir)

	if err := p.bootstrap(); err != nil {
		return res, err
	}

	res.Stage = StageFetching
	start := time.Now()
	raw, err := p.fetcher.Fetch(ctx, p.settings.SourceURL)
	p.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return p.abort(logger, res, err)
	}
	logger.Debug("forecast fetched", "bytes", len(raw), "duration", time.Since(start))

	res.Stage = StageParsing
	forecast, err := domain.ParseForecast(raw)
	if err != nil {
		return p.abort(logger, res, err)
	}
	res.ValidAt = forecast.ValidAt
	logger.Info("forecast parsed", "valid_at", forecast.ValidAt)

	res.Stage = StageRendering
	start = time.Now()
	path, err := p.renderer.Render(forecast, p.settings.ImageDir)
	if err != nil {
		p.metrics.RunsTotal.WithLabelValues(observability.OutcomeRenderError).Inc()
		return res, err
	}
	p.metrics.RenderDuration.Observe(time.Since(start).Seconds())
	p.metrics.ImagesWritten.Inc()
	res.ImagePath = path
	logger.Info("image written", "path", path, "duration", time.Since(start))

	p.notify(ctx, logger, res)

	res.Stage = StageSweeping
	res.Deleted = p.sweep(logger)

	res.Stage = StageDone
	p.metrics.RunsTotal.WithLabelValues(observability.OutcomeSuccess).Inc()
	p.metrics.LastSuccess.Set(float64(domain.Now().Unix()))
	p.metrics.ForecastValidAt.Set(float64(forecast.ValidAt.Unix()))
	logger.Info("pipeline run finished", "path", path, "deleted", len(res.Deleted))
	return res, nil
}

// Sweep runs only the retention step over the monitored directories. It uses
// the Sweeper alone, so the other stages may be nil.
func (p *Runner) Sweep() ([]string, error) {
	if err := p.bootstrap(); err != nil {
		return nil, err
	}
	deleted, err := p.sweeper.Sweep(p.settings.MonitoredDirs, p.settings.Retention)
	p.recordSweep(deleted, err)
	return deleted, err
}

func (p *Runner) bootstrap() error {
	for _, dir := range p.directories() {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

func (p *Runner) directories() []string {
	dirs := append([]string(nil), p.settings.MonitoredDirs...)
	for _, d := range dirs {
		if d == p.settings.ImageDir {
			return dirs
		}
	}
	return append(dirs, p.settings.ImageDir)
}

// abort ends a run that failed while fetching or parsing. Only fetch, parse
// and validation errors are recorded as acquisition failures; anything else
// is returned without touching the failure log.
func (p *Runner) abort(logger *slog.Logger, res Result, err error) (Result, error) {
	res.FailedAt = res.Stage
	res.Stage = StageFailed

	if !domain.IsAcquisitionError(err) {
		p.metrics.RunsTotal.WithLabelValues(observability.OutcomeError).Inc()
		logger.Error("pipeline stage failed", "stage", res.FailedAt.String(), "error", err)
		return res, fmt.Errorf("%s: %w", res.FailedAt, err)
	}

	p.metrics.RunsTotal.WithLabelValues(observability.OutcomeAcquisitionError).Inc()
	if rerr := p.failures.Record(domain.Now()); rerr != nil {
		logger.Error("record acquisition failure", "error", rerr)
	}
	logger.Error("forecast acquisition failed", "stage", res.FailedAt.String(), "error", err)
	return res, fmt.Errorf("acquire forecast: %w", err)
}

func (p *Runner) notify(ctx context.Context, logger *slog.Logger, res Result) {
	if p.notifier == nil {
		return
	}
	event := domain.ImageRendered{
		RunID:      res.RunID,
		Path:       res.ImagePath,
		Filename:   filepath.Base(res.ImagePath),
		Format:     strings.TrimPrefix(filepath.Ext(res.ImagePath), "."),
		ValidAt:    res.ValidAt,
		RenderedAt: domain.Now(),
	}
	if err := p.notifier.Publish(ctx, event); err != nil {
		p.metrics.NotifyErrors.Inc()
		logger.Warn("image notification failed", "path", res.ImagePath, "error", err)
	}
}

func (p *Runner) sweep(logger *slog.Logger) []string {
	deleted, err := p.sweeper.Sweep(p.settings.MonitoredDirs, p.settings.Retention)
	p.recordSweep(deleted, err)
	if err != nil {
		logger.Warn("retention sweep incomplete", "deleted", len(deleted), "error", err)
	}
	return deleted
}

func (p *Runner) recordSweep(deleted []string, err error) {
	p.metrics.FilesSwept.Add(float64(len(deleted)))
	if err == nil {
		return
	}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		p.metrics.SweepErrors.Add(float64(len(merr.Errors)))
		return
	}
	p.metrics.SweepErrors.Inc()
}
