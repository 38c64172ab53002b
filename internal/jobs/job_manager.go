package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	outboxSweepJob *OutboxSweepJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(drainer OutboxDrainer, sweepSchedule string, logger *slog.Logger) *JobManager {
	return &JobManager{
		outboxSweepJob: NewOutboxSweepJob(drainer, sweepSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.outboxSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start outbox sweep job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.outboxSweepJob.Stop()
}
