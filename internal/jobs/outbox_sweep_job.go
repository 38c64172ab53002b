package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultOutboxSweepSchedule runs the sweep every ten seconds.
const DefaultOutboxSweepSchedule = "*/10 * * * * *"

// OutboxDrainer publishes whatever the outbox still holds.
type OutboxDrainer interface {
	Drain(ctx context.Context) (int, error)
}

// OutboxSweepJob drains the outbox on a schedule, picking up events whose
// wake-up was lost to a crash or whose publish failed earlier.
type OutboxSweepJob struct {
	drainer  OutboxDrainer
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOutboxSweepJob creates the sweep. An empty schedule means DefaultOutboxSweepSchedule.
func NewOutboxSweepJob(drainer OutboxDrainer, schedule string, logger *slog.Logger) *OutboxSweepJob {
	if schedule == "" {
		schedule = DefaultOutboxSweepSchedule
	}
	return &OutboxSweepJob{
		drainer:  drainer,
		schedule: schedule,
		timeout:  30 * time.Second,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "outbox_sweep_job"),
	}
}

// Start registers the sweep and starts the scheduler.
func (j *OutboxSweepJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox sweep job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (j *OutboxSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox sweep job stopped")
}

func (j *OutboxSweepJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	published, err := j.drainer.Drain(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox sweep failed", "error", err)
		return
	}
	if published > 0 {
		j.logger.InfoContext(ctx, "Outbox sweep published pending events", "count", published)
	}
}
