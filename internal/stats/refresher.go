// Package stats periodically recounts projects by status for the
// tracker_projects gauge.
package stats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ErlanBelekov/project-tracker/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
)

type statusCounter interface {
	CountByStatus(ctx context.Context) (map[string]int, error)
}

type Refresher struct {
	repo    statusCounter
	gauge   *prometheus.GaugeVec
	logger  *slog.Logger
	timeout time.Duration
}

func NewRefresher(repo statusCounter, gauge *prometheus.GaugeVec, logger *slog.Logger) *Refresher {
	return &Refresher{
		repo:    repo,
		gauge:   gauge,
		logger:  logger.With("component", "stats"),
		timeout: 10 * time.Second,
	}
}

// Start refreshes once, then on every tick of the cron spec until ctx is
// cancelled. It blocks; run it in a goroutine.
func (r *Refresher) Start(ctx context.Context, spec string) error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(spec, func() { r.Refresh(ctx) }); err != nil {
		return fmt.Errorf("schedule stats refresh: %w", err)
	}

	r.Refresh(ctx)
	c.Start()
	r.logger.Info("stats refresher started", "schedule", spec)

	<-ctx.Done()
	<-c.Stop().Done()
	r.logger.Info("stats refresher stopped")
	return nil
}

// Refresh replaces the gauge contents with the current per-status counts.
// On failure the previous values are kept.
func (r *Refresher) Refresh(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	counts, err := r.repo.CountByStatus(ctx)
	metrics.StatsRefreshDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		r.logger.ErrorContext(ctx, "count projects by status", "error", err)
		return
	}

	r.gauge.Reset()
	for status, n := range counts {
		r.gauge.WithLabelValues(status).Set(float64(n))
	}
}
