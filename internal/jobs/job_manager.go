package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	snapshotRefreshJob *SnapshotRefreshJob
	quoteCacheSweepJob *QuoteCacheSweepJob
}

// NewJobManager creates a job manager. Either job may be nil: a service with
// a static pricing file has nothing to refresh, and one without a quote cache
// has nothing to sweep.
func NewJobManager(refresh *SnapshotRefreshJob, sweep *QuoteCacheSweepJob) *JobManager {
	return &JobManager{
		snapshotRefreshJob: refresh,
		quoteCacheSweepJob: sweep,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if jm.snapshotRefreshJob != nil {
		if err := jm.snapshotRefreshJob.Start(); err != nil {
			return fmt.Errorf("failed to start snapshot refresh job: %w", err)
		}
	}

	if jm.quoteCacheSweepJob != nil {
		if err := jm.quoteCacheSweepJob.Start(); err != nil {
			// Stop already started jobs if this one fails
			if jm.snapshotRefreshJob != nil {
				jm.snapshotRefreshJob.Stop()
			}
			return fmt.Errorf("failed to start quote cache sweep job: %w", err)
		}
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.quoteCacheSweepJob != nil {
		jm.quoteCacheSweepJob.Stop()
	}
	if jm.snapshotRefreshJob != nil {
		jm.snapshotRefreshJob.Stop()
	}
}
