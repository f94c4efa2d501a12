// Package jobs provides scheduled background tasks for the pricing service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Schedules take six fields, seconds first, and also accept descriptors such
// as "@every 30s".
//
// # Available Jobs
//
// 1. SnapshotRefreshJob - Reloads the pricing snapshot and publishes it when the version changes
// 2. QuoteCacheSweepJob - Removes expired quotes from the in-memory quote cache
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	refresh := jobs.NewSnapshotRefreshJob(refreshHandler, recorder, "@every 1m", logger)
//	sweep := jobs.NewQuoteCacheSweepJob(quoteCache, "", logger)
//	jobManager := jobs.NewJobManager(refresh, sweep)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - A failed refresh is logged and counted; the previously published snapshot stays in use
// - Rule problems found during a refresh are logged as warnings and do not block publishing
// - Failed job starts will stop any already running jobs
package jobs
