// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the marketplace.
//
// # Available Jobs
//
// 1. RiderPayoutJob - Runs weekly to recompute rider payouts for the week
// that just closed. Reruns are safe: each rider's row for a week is
// upserted in place.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(riderPayoutsHandler, schedule, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The payout job uses a six-field cron expression with a seconds column.
// The default "0 5 0 * * 1" fires at 00:05 every Monday, after the payout
// week ending Sunday midnight has closed.
//
// # Error Handling
//
// - Payout job logs failures and retries on the next scheduled run
// - Failed job starts will stop any already running jobs
package jobs
