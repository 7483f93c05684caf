// Package scheduler runs the periodic background refresh loop (SPEC_FULL.md
// component 13), on top of the same cron library the pack's weather
// aggregator uses for its own periodic fetch job.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/lbrouwer/surfcast/internal/metrics"
	"github.com/lbrouwer/surfcast/internal/orchestrator"
)

// Scheduler drives a periodic orchestrator.RefreshAll call.
type Scheduler struct {
	cron     *gocron.Scheduler
	orch     *orchestrator.Orchestrator
	interval time.Duration
	logger   *slog.Logger
}

// New builds a Scheduler that runs RefreshAll every interval.
func New(orch *orchestrator.Orchestrator, interval time.Duration, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		cron:     gocron.NewScheduler(time.UTC),
		orch:     orch,
		interval: interval,
		logger:   logger,
	}
}

// Start schedules the periodic refresh job and begins running it
// asynchronously.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 60
	}

	_, err := s.cron.Every(minutes).Minutes().Do(func() {
		start := time.Now()
		s.logger.Info("scheduled refresh starting")

		ctx, cancel := context.WithTimeout(context.Background(), 25*time.Minute)
		defer cancel()

		metrics.RefreshRuns.WithLabelValues("scheduled").Inc()
		outcomes := s.orch.RefreshAll(ctx)

		failures := 0
		for _, o := range outcomes {
			if o.Error != "" {
				failures++
			}
		}
		metrics.RefreshDuration.Observe(time.Since(start).Seconds())
		s.logger.Info("scheduled refresh completed",
			"spots", len(outcomes), "failures", failures, "duration", time.Since(start))
	})
	if err != nil {
		return err
	}

	s.cron.StartAsync()
	return nil
}

// Stop halts the scheduler and cancels any future runs.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}
