package ports

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
)

// OutboxMessage is a domain event as stored in the outbox.
type OutboxMessage struct {
	ID          kernel.UUID
	EventType   string
	AggregateID kernel.UUID
	Payload     []byte
	OccurredAt  time.Time
	Attempts    int
}

// OutboxRepository stores domain events next to the state change that produced them.
type OutboxRepository interface {
	// Add writes events in the current transaction.
	Add(ctx context.Context, events []kernel.DomainEvent) error

	// FetchPending locks up to limit unprocessed messages with fewer than
	// maxAttempts attempts, oldest first, skipping rows locked by other relays.
	FetchPending(ctx context.Context, limit, maxAttempts int) ([]OutboxMessage, error)

	MarkProcessed(ctx context.Context, id kernel.UUID, at time.Time) error
	MarkFailed(ctx context.Context, id kernel.UUID, cause error) error
}

// OutboxTx runs fn inside one transaction of a repository bound to it.
type OutboxTx interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repo OutboxRepository) error) error
}

// EventPublisher delivers outbox messages to their consumers.
type EventPublisher interface {
	Publish(ctx context.Context, msg OutboxMessage) error
}
