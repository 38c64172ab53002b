// Package jobs provides scheduled background tasks for the order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// OutboxSweepJob drains the transactional outbox on a schedule (every ten
// seconds by default). The relay is normally woken right after each commit;
// the sweep covers events whose wake-up was lost to a restart and events whose
// publish failed and are due for another attempt.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(relay, cfg.OutboxSweepSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed sweep is logged and retried on the next tick. Overlapping ticks
// are skipped while a sweep is still running.
package jobs
