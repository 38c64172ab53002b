package order

import (
	"encoding/json"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
)

// Event types as written to the outbox and to the Kafka envelope.
const (
	EventTypePlaced        = "order.placed"
	EventTypeStatusChanged = "order.status_changed"
	EventTypeRiderAssigned = "order.rider_assigned"
)

// PlacedEvent is recorded when a cart was converted into an order.
type PlacedEvent struct {
	ID           kernel.UUID `json:"event_id"`
	OrderID      kernel.UUID `json:"order_id"`
	OrderNumber  string      `json:"order_number"`
	CustomerID   kernel.UUID `json:"customer_id"`
	RestaurantID kernel.UUID `json:"restaurant_id"`
	TotalCents   int64       `json:"total_cents"`
	At           time.Time   `json:"occurred_at"`
}

func (e PlacedEvent) EventID() kernel.UUID     { return e.ID }
func (e PlacedEvent) EventType() string        { return EventTypePlaced }
func (e PlacedEvent) AggregateID() kernel.UUID { return e.OrderID }
func (e PlacedEvent) OccurredAt() time.Time    { return e.At }

// StatusChangedEvent is recorded on every accepted transition.
type StatusChangedEvent struct {
	ID           kernel.UUID  `json:"event_id"`
	OrderID      kernel.UUID  `json:"order_id"`
	OrderNumber  string       `json:"order_number"`
	CustomerID   kernel.UUID  `json:"customer_id"`
	RestaurantID kernel.UUID  `json:"restaurant_id"`
	RiderID      *kernel.UUID `json:"rider_id,omitempty"`
	From         Status       `json:"from"`
	To           Status       `json:"to"`
	ActorID      kernel.UUID  `json:"actor_id"`
	ActorRole    Role         `json:"actor_role"`
	Reason       string       `json:"reason,omitempty"`
	At           time.Time    `json:"occurred_at"`
}

func (e StatusChangedEvent) EventID() kernel.UUID     { return e.ID }
func (e StatusChangedEvent) EventType() string        { return EventTypeStatusChanged }
func (e StatusChangedEvent) AggregateID() kernel.UUID { return e.OrderID }
func (e StatusChangedEvent) OccurredAt() time.Time    { return e.At }

// RiderAssignedEvent is recorded when the dispatch engine attached a rider.
type RiderAssignedEvent struct {
	ID           kernel.UUID `json:"event_id"`
	OrderID      kernel.UUID `json:"order_id"`
	OrderNumber  string      `json:"order_number"`
	CustomerID   kernel.UUID `json:"customer_id"`
	RestaurantID kernel.UUID `json:"restaurant_id"`
	RiderID      kernel.UUID `json:"rider_id"`
	At           time.Time   `json:"occurred_at"`
}

func (e RiderAssignedEvent) EventID() kernel.UUID     { return e.ID }
func (e RiderAssignedEvent) EventType() string        { return EventTypeRiderAssigned }
func (e RiderAssignedEvent) AggregateID() kernel.UUID { return e.OrderID }
func (e RiderAssignedEvent) OccurredAt() time.Time    { return e.At }

// DecodeEvent turns an outbox payload back into its typed event.
func DecodeEvent(eventType string, payload []byte) (kernel.DomainEvent, error) {
	switch eventType {
	case EventTypePlaced:
		var e PlacedEvent
		if err := json.Unmarshal(payload, &e); err != nil {
			return nil, fmt.Errorf("decode %s: %w", eventType, err)
		}
		return e, nil
	case EventTypeStatusChanged:
		var e StatusChangedEvent
		if err := json.Unmarshal(payload, &e); err != nil {
			return nil, fmt.Errorf("decode %s: %w", eventType, err)
		}
		return e, nil
	case EventTypeRiderAssigned:
		var e RiderAssignedEvent
		if err := json.Unmarshal(payload, &e); err != nil {
			return nil, fmt.Errorf("decode %s: %w", eventType, err)
		}
		return e, nil
	default:
		return nil, fmt.Errorf("unknown order event type %q", eventType)
	}
}
