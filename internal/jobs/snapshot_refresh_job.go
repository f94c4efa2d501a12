package jobs

import (
	"context"
	"log/slog"
	"time"

	"pricing/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultRefreshSchedule reloads the pricing data once a minute.
const DefaultRefreshSchedule = "0 * * * * *"

// SnapshotRefresher reloads and publishes the pricing snapshot.
type SnapshotRefresher interface {
	Handle(ctx context.Context, cmd commands.RefreshSnapshotCommand) (commands.RefreshSnapshotResult, error)
}

// ReloadObserver records the outcome of each reload.
type ReloadObserver interface {
	ObserveSnapshotReload(err error, at time.Time)
}

// SnapshotRefreshJob periodically reloads rules, carriers, zones and customers
// so back-office changes reach pricing without a restart.
type SnapshotRefreshJob struct {
	handler  SnapshotRefresher
	metrics  ReloadObserver
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewSnapshotRefreshJob creates a refresh job. An empty schedule uses
// DefaultRefreshSchedule; schedules take a seconds field.
func NewSnapshotRefreshJob(
	handler SnapshotRefresher,
	metrics ReloadObserver,
	schedule string,
	logger *slog.Logger,
) *SnapshotRefreshJob {
	if schedule == "" {
		schedule = DefaultRefreshSchedule
	}
	return &SnapshotRefreshJob{
		handler:  handler,
		metrics:  metrics,
		schedule: schedule,
		timeout:  30 * time.Second,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "snapshot_refresh_job"),
	}
}

// Start schedules the refresh. An invalid schedule is reported here.
func (j *SnapshotRefreshJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()

		if err := j.RunOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Snapshot refresh job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Snapshot refresh job started", "schedule", j.schedule)
	return nil
}

// RunOnce performs a single refresh and records its outcome.
func (j *SnapshotRefreshJob) RunOnce(ctx context.Context) error {
	cmd, err := commands.NewRefreshSnapshotCommand("schedule")
	if err != nil {
		return err
	}
	res, err := j.handler.Handle(ctx, cmd)
	if j.metrics != nil {
		j.metrics.ObserveSnapshotReload(err, time.Now())
	}
	if err != nil {
		return err
	}
	if res.Changed {
		j.logger.InfoContext(ctx, "Pricing snapshot replaced", "version", res.Version)
	}
	return nil
}

// Stop stops scheduling and waits for a running refresh to finish.
func (j *SnapshotRefreshJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Snapshot refresh job stopped")
}
