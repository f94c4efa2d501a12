package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// DefaultSweepSchedule clears expired quotes every five minutes.
const DefaultSweepSchedule = "0 */5 * * * *"

// CacheSweeper drops expired entries.
type CacheSweeper interface {
	Sweep() int
}

// QuoteCacheSweepJob removes expired quotes. Expired entries are never served,
// but without a sweep they stay in memory until the same key is read again.
type QuoteCacheSweepJob struct {
	cache    CacheSweeper
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewQuoteCacheSweepJob creates a sweep job. An empty schedule uses
// DefaultSweepSchedule.
func NewQuoteCacheSweepJob(cache CacheSweeper, schedule string, logger *slog.Logger) *QuoteCacheSweepJob {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	return &QuoteCacheSweepJob{
		cache:    cache,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "quote_cache_sweep_job"),
	}
}

// Start schedules the sweep.
func (j *QuoteCacheSweepJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.RunOnce)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Quote cache sweep job started", "schedule", j.schedule)
	return nil
}

// RunOnce sweeps the cache once.
func (j *QuoteCacheSweepJob) RunOnce() {
	if removed := j.cache.Sweep(); removed > 0 {
		j.logger.DebugContext(context.Background(), "Expired quotes removed", "count", removed)
	}
}

// Stop stops the sweep job.
func (j *QuoteCacheSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Quote cache sweep job stopped")
}
