package eventhandlers

import (
	"context"

	"fooddelivery/internal/core/ports"
)

// DirectPublisher implements ports.EventPublisher by handing outbox messages
// straight to the in-process handler. It is used when no broker is configured.
type DirectPublisher struct {
	handler *OrderEventHandler
}

func NewDirectPublisher(handler *OrderEventHandler) DirectPublisher {
	return DirectPublisher{handler: handler}
}

func (p DirectPublisher) Publish(ctx context.Context, msg ports.OutboxMessage) error {
	return p.handler.HandleMessage(ctx, msg.EventType, msg.Payload)
}
