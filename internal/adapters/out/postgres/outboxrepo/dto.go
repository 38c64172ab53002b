// Package outboxrepo stores domain events written in the same transaction as
// the aggregate change, for the relay to publish after commit.
package outboxrepo

import (
	"encoding/json"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"

	"github.com/google/uuid"
)

// OutboxDTO is one pending or processed event.
type OutboxDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EventType   string     `gorm:"type:varchar(64);not null"`
	AggregateID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Payload     string     `gorm:"type:jsonb;not null"`
	OccurredAt  time.Time  `gorm:"not null;index"`
	ProcessedAt *time.Time `gorm:"index"`
	Attempts    int        `gorm:"not null"`
	LastError   string     `gorm:"type:text"`
}

// TableName specifies the database table name for outbox rows.
func (OutboxDTO) TableName() string {
	return "outbox_events"
}

func fromDomain(event kernel.DomainEvent) (OutboxDTO, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return OutboxDTO{}, err
	}
	return OutboxDTO{
		ID:          event.EventID().Bytes(),
		EventType:   event.EventType(),
		AggregateID: event.AggregateID().Bytes(),
		Payload:     string(payload),
		OccurredAt:  event.OccurredAt(),
	}, nil
}

func toMessage(dto OutboxDTO) (ports.OutboxMessage, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	aggregateID, err := kernel.UUIDFromBytes(dto.AggregateID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	return ports.OutboxMessage{
		ID:          id,
		EventType:   dto.EventType,
		AggregateID: aggregateID,
		Payload:     []byte(dto.Payload),
		OccurredAt:  dto.OccurredAt,
		Attempts:    dto.Attempts,
	}, nil
}
