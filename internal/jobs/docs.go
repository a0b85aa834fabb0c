// Package jobs provides scheduled background tasks for the vacancy bot.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. VacancyDeliveryJob - Runs at the start of every minute and sends each
// subscribed user their daily digest once their local delivery time has come
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(tickHandler, jobs.Config{}, clock.System{}, logger)
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
// The delivery job uses the cron expression "0 * * * * *" (seconds field
// first). Users pick delivery times with minute precision, so a tick per
// minute is enough. A tick still running when the next one is due causes
// the next one to be skipped.
//
// # Error Handling
//
// - Per-user failures are isolated by the tick handler and only counted
// - A failed tick (users could not be listed) is logged and retried next minute
// - Panics escaping a tick are recovered and logged by the cron chain
package jobs
