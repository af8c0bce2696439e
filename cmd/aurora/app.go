package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"gonum.org/v1/plot/vg"

	"github.com/couchcryptid/aurora-forecast-etl/internal/adapter/kafka"
	"github.com/couchcryptid/aurora-forecast-etl/internal/adapter/swpc"
	"github.com/couchcryptid/aurora-forecast-etl/internal/config"
	"github.com/couchcryptid/aurora-forecast-etl/internal/domain"
	"github.com/couchcryptid/aurora-forecast-etl/internal/observability"
	"github.com/couchcryptid/aurora-forecast-etl/internal/pipeline"
	"github.com/couchcryptid/aurora-forecast-etl/internal/render"
	"github.com/couchcryptid/aurora-forecast-etl/internal/retention"
)

// app is the wired process: one runner plus the resources it owns.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *observability.Metrics
	runner   *pipeline.Runner
	closers  []io.Closer
}

func newBaseApp(cfg *config.Config) *app {
	registry := prometheus.NewRegistry()
	return &app{
		cfg:      cfg,
		logger:   observability.NewLogger(cfg),
		registry: registry,
		metrics:  observability.NewMetrics(registry),
	}
}

func (a *app) settings() pipeline.Settings {
	return pipeline.Settings{
		SourceURL:     a.cfg.NowcastURL,
		ImageDir:      a.cfg.ShortHorizonDir,
		MonitoredDirs: a.cfg.MonitoredDirs(),
		Retention:     a.cfg.Retention(),
	}
}

// newApp wires every stage of a pipeline run.
func newApp(cfg *config.Config) (*app, error) {
	a := newBaseApp(cfg)

	opts := render.DefaultOptions()
	opts.Format = cfg.ImageFormat
	opts.Prefix = cfg.ImagePrefix
	opts.DPI = cfg.ImageDPI
	opts.Width = vg.Length(cfg.FigureWidth) * vg.Inch
	opts.Height = vg.Length(cfg.FigureHeight) * vg.Inch
	renderer, err := render.New(opts, domain.AuroraColorMap(), a.logger)
	if err != nil {
		return nil, a.report(fmt.Errorf("configure renderer: %w", err))
	}

	failures := observability.OpenAcquisitionLog(cfg.ErrorLog)
	a.closers = append(a.closers, failures)

	a.runner = pipeline.New(
		a.settings(),
		swpc.NewClient(cfg.FetchTimeout, a.logger),
		renderer,
		retention.NewSweeper(a.logger),
		failures,
		a.logger,
		a.metrics,
	)

	if cfg.KafkaEnabled() {
		publisher := kafka.NewPublisher(cfg, a.logger)
		a.runner.WithNotifier(publisher)
		a.closers = append(a.closers, publisher)
		a.logger.Info("image notifications enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}
	return a, nil
}

// newSweepApp wires only the retention stage.
func newSweepApp(cfg *config.Config) *app {
	a := newBaseApp(cfg)
	a.runner = pipeline.New(a.settings(), nil, nil, retention.NewSweeper(a.logger), nil, a.logger, a.metrics)
	return a
}

// reportedError marks an error already written through the configured logger.
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }

func (e reportedError) Unwrap() error { return e.err }

// report logs err with the configured logger so main does not log it again
// in the default format.
func (a *app) report(err error) error {
	if err == nil {
		return nil
	}
	a.logger.Error("aurora failed", "error", err)
	return reportedError{err: err}
}

// pushMetrics sends the run's metrics to the Pushgateway when one is configured.
// Failures are logged; they never change the exit status.
func (a *app) pushMetrics(ctx context.Context) {
	if !a.cfg.PushEnabled() {
		return
	}
	if err := observability.Push(ctx, a.cfg.PushgatewayURL, observability.PushJob, a.registry); err != nil {
		a.logger.Warn("metrics push failed", "error", err)
	}
}

func (a *app) close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Error("close error", "error", err)
		}
	}
}
