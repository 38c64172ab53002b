// Package kafka publishes outbox messages to a Kafka topic.
package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"
)

// Envelope is the message value on the order events topic. The message key
// is the order id, so all events of one order land on one partition in order.
type Envelope struct {
	EventID     kernel.UUID     `json:"event_id"`
	EventType   string          `json:"event_type"`
	AggregateID kernel.UUID     `json:"aggregate_id"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Payload     json.RawMessage `json:"payload"`
}

// NewEnvelope wraps an outbox message.
func NewEnvelope(msg ports.OutboxMessage) Envelope {
	return Envelope{
		EventID:     msg.ID,
		EventType:   msg.EventType,
		AggregateID: msg.AggregateID,
		OccurredAt:  msg.OccurredAt,
		Payload:     json.RawMessage(msg.Payload),
	}
}

// DecodeEnvelope parses a message value.
func DecodeEnvelope(value []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(value, &env); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	if env.EventType == "" {
		return Envelope{}, fmt.Errorf("decode envelope: missing event_type")
	}
	return env, nil
}
