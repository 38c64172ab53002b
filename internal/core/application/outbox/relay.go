// Package outbox moves committed domain events from the outbox table to
// their consumers.
package outbox

import (
	"context"
	"log/slog"
	"time"

	"fooddelivery/internal/core/ports"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultBatchSize   = 50
	DefaultMaxAttempts = 10
)

// Relay publishes pending outbox messages in occurrence order.
//
// It is woken by Notify after every commit that wrote events and is also
// driven periodically by the sweep job, which picks up events left behind by
// a crash or a failed publish. Several relays may run at once: rows are
// locked with SKIP LOCKED for the duration of a batch.
//
// A message that fails to publish is counted and retried on a later batch
// until it reaches maxAttempts; the failure never reaches the operation that
// produced the event.
type Relay struct {
	tx          ports.OutboxTx
	publisher   ports.EventPublisher
	batchSize   int
	maxAttempts int
	wake        chan struct{}
	tracer      trace.Tracer
	logger      *slog.Logger
}

func NewRelay(tx ports.OutboxTx, publisher ports.EventPublisher, batchSize, maxAttempts int, logger *slog.Logger) *Relay {
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Relay{
		tx:          tx,
		publisher:   publisher,
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
		wake:        make(chan struct{}, 1),
		tracer:      otel.Tracer("fooddelivery/outbox"),
		logger:      logger.With("component", "OutboxRelay"),
	}
}

// Notify wakes Run without blocking. Wake-ups arriving while a batch is in
// flight collapse into one.
func (r *Relay) Notify() {
	select {
	case r.wake <- struct{}{}:
	default:
	}
}

// Run processes batches on every wake-up until ctx is done.
func (r *Relay) Run(ctx context.Context) error {
	r.logger.InfoContext(ctx, "outbox relay started")
	for {
		select {
		case <-ctx.Done():
			r.logger.InfoContext(context.Background(), "outbox relay stopped")
			return nil
		case <-r.wake:
			if _, err := r.Drain(ctx); err != nil && ctx.Err() == nil {
				r.logger.ErrorContext(ctx, "outbox relay batch failed", "error", err)
			}
		}
	}
}

// Drain processes batches until one comes back short or publishes nothing,
// and returns how many messages were published.
func (r *Relay) Drain(ctx context.Context) (int, error) {
	total := 0
	for {
		fetched, published, err := r.ProcessBatch(ctx)
		total += published
		if err != nil || fetched < r.batchSize || published == 0 {
			return total, err
		}
	}
}

// ProcessBatch publishes one batch inside one transaction. It returns how many
// messages were fetched and how many of them were published.
func (r *Relay) ProcessBatch(ctx context.Context) (fetched, published int, err error) {
	ctx, span := r.tracer.Start(ctx, "outbox.process_batch")
	defer span.End()

	err = r.tx.WithinTx(ctx, func(ctx context.Context, repo ports.OutboxRepository) error {
		messages, fetchErr := repo.FetchPending(ctx, r.batchSize, r.maxAttempts)
		if fetchErr != nil {
			return fetchErr
		}
		fetched = len(messages)

		for _, msg := range messages {
			if pubErr := r.publisher.Publish(ctx, msg); pubErr != nil {
				r.logger.WarnContext(ctx, "publish failed",
					"event_id", msg.ID.String(),
					"event_type", msg.EventType,
					"attempt", msg.Attempts+1,
					"error", pubErr)
				if markErr := repo.MarkFailed(ctx, msg.ID, pubErr); markErr != nil {
					return markErr
				}
				continue
			}
			if markErr := repo.MarkProcessed(ctx, msg.ID, time.Now().UTC()); markErr != nil {
				return markErr
			}
			published++
		}
		return nil
	})
	span.SetAttributes(attribute.Int("outbox.fetched", fetched), attribute.Int("outbox.published", published))
	if err != nil {
		span.RecordError(err)
		return fetched, 0, err
	}
	return fetched, published, nil
}
