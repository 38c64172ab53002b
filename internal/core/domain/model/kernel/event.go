package kernel

import "time"

// DomainEvent is a fact recorded by an aggregate during a business transaction.
// Events are written to the outbox in the same transaction as the state change
// and consumed after commit.
type DomainEvent interface {
	EventID() UUID
	EventType() string
	AggregateID() UUID
	OccurredAt() time.Time
}

// EventSource is implemented by aggregates that record domain events.
// The unit of work drains the events of every tracked aggregate on commit.
type EventSource interface {
	DomainEvents() []DomainEvent
	ClearDomainEvents()
}
