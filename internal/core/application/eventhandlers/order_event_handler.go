package eventhandlers

import (
	"context"
	"fmt"
	"log/slog"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/notification"
	"fooddelivery/internal/core/domain/model/order"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// drainOnDelivery is how many backlog orders one delivery frees capacity for.
const drainOnDelivery = 1

type (
	// Fanout persists and pushes the notifications of one event.
	Fanout interface {
		Handle(ctx context.Context, cmd commands.FanoutNotificationsCommand) ([]*notification.Notification, error)
	}

	// BacklogDrainer assigns waiting ready orders.
	BacklogDrainer interface {
		Handle(ctx context.Context, cmd commands.DrainBacklogCommand) ([]commands.AssignmentResult, error)
	}
)

// OrderEventHandler consumes order events delivered by the outbox relay or by Kafka.
type OrderEventHandler struct {
	fanout   Fanout
	assigner commands.AutoAssigner
	drainer  BacklogDrainer
	tracer   trace.Tracer
	logger   *slog.Logger
}

func NewOrderEventHandler(
	fanout Fanout,
	assigner commands.AutoAssigner,
	drainer BacklogDrainer,
	logger *slog.Logger,
) *OrderEventHandler {
	return &OrderEventHandler{
		fanout:   fanout,
		assigner: assigner,
		drainer:  drainer,
		tracer:   otel.Tracer("fooddelivery/eventhandlers"),
		logger:   logger.With("component", "OrderEventHandler"),
	}
}

// HandleMessage decodes a stored event and handles it.
func (h *OrderEventHandler) HandleMessage(ctx context.Context, eventType string, payload []byte) error {
	event, err := order.DecodeEvent(eventType, payload)
	if err != nil {
		return err
	}
	return h.Handle(ctx, event)
}

// Handle runs the fanout and then, for status changes, the dispatch chaining.
// Only a fanout failure is returned; chaining is skipped in that case.
func (h *OrderEventHandler) Handle(ctx context.Context, event kernel.DomainEvent) (err error) {
	ctx, span := h.tracer.Start(ctx, "order_event "+event.EventType(), trace.WithAttributes(
		attribute.String("event.id", event.EventID().String()),
		attribute.String("event.type", event.EventType()),
		attribute.String("order.id", event.AggregateID().String()),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	cmd, err := commands.NewFanoutNotificationsCommand(event)
	if err != nil {
		return fmt.Errorf("fanout %s: %w", event.EventType(), err)
	}
	created, err := h.fanout.Handle(ctx, cmd)
	if err != nil {
		return fmt.Errorf("fanout %s: %w", event.EventType(), err)
	}
	span.SetAttributes(attribute.Int("notifications.created", len(created)))

	// Chaining runs only once the event will not be redelivered, so a
	// delivery drains exactly one backlog order.
	if changed, ok := event.(order.StatusChangedEvent); ok {
		h.chainDispatch(ctx, changed)
	}
	return nil
}

func (h *OrderEventHandler) chainDispatch(ctx context.Context, e order.StatusChangedEvent) {
	switch {
	case e.To == order.Ready && e.RiderID == nil:
		cmd, err := commands.NewAutoAssignRiderCommand(e.OrderID)
		if err != nil {
			h.logger.ErrorContext(ctx, "invalid auto assignment", "order_id", e.OrderID.String(), "error", err)
			return
		}
		result, err := h.assigner.Handle(ctx, cmd)
		if err != nil {
			h.logger.WarnContext(ctx, "auto assignment failed", "order_id", e.OrderID.String(), "error", err)
			return
		}
		h.logResult(ctx, result)
	case e.To == order.Delivered:
		cmd, err := commands.NewDrainBacklogCommand(drainOnDelivery)
		if err != nil {
			h.logger.ErrorContext(ctx, "invalid backlog drain", "error", err)
			return
		}
		results, err := h.drainer.Handle(ctx, cmd)
		if err != nil {
			h.logger.WarnContext(ctx, "backlog drain failed", "delivered_order_id", e.OrderID.String(), "error", err)
			return
		}
		for _, result := range results {
			h.logResult(ctx, result)
		}
	}
}

func (h *OrderEventHandler) logResult(ctx context.Context, result commands.AssignmentResult) {
	attrs := []any{"order_id", result.OrderID.String(), "outcome", string(result.Outcome)}
	if result.RiderID != nil {
		attrs = append(attrs, "rider_id", result.RiderID.String())
	}
	if result.Reason != "" {
		attrs = append(attrs, "reason", result.Reason)
	}
	if result.Assigned() {
		h.logger.InfoContext(ctx, "rider assignment", attrs...)
		return
	}
	h.logger.InfoContext(ctx, "order waits for a rider", attrs...)
}
