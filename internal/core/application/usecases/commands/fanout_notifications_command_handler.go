package commands

import (
	"context"
	"log/slog"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/notification"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
)

// PushEventNotification is the event name used on the delivery channel.
const PushEventNotification = "notification"

// PushedNotification is the payload pushed to a connected recipient.
type PushedNotification struct {
	ID        string               `json:"id"`
	Type      notification.Type    `json:"type"`
	Title     string               `json:"title"`
	Message   string               `json:"message"`
	Payload   notification.Payload `json:"payload"`
	CreatedAt time.Time            `json:"created_at"`
}

// NewPushedNotification renders a notification for the delivery channel.
func NewPushedNotification(n *notification.Notification) PushedNotification {
	return PushedNotification{
		ID:        n.ID().String(),
		Type:      n.Type(),
		Title:     n.Title(),
		Message:   n.Message(),
		Payload:   n.Payload(),
		CreatedAt: n.CreatedAt(),
	}
}

// FanoutNotificationsCommandHandler persists one notification per planned
// recipient and then pushes each new one through the delivery channel.
//
// Notification ids are derived from (event id, recipient, type), so a
// redelivered event inserts nothing twice and pushes nothing twice. Push
// failures are logged and never returned; persistence failures are returned
// so the outbox retries the event.
type FanoutNotificationsCommandHandler struct {
	uowFactory NotificationUoWFactory
	channel    ports.DeliveryChannel
	planner    services.NotificationPlanner
	logger     *slog.Logger
}

func NewFanoutNotificationsCommandHandler(
	uowFactory NotificationUoWFactory,
	channel ports.DeliveryChannel,
	logger *slog.Logger,
) FanoutNotificationsCommandHandler {
	return FanoutNotificationsCommandHandler{
		uowFactory: uowFactory,
		channel:    channel,
		planner:    services.NewNotificationPlanner(),
		logger:     logger.With("component", "NotificationFanout"),
	}
}

// Handle returns the notifications created by this call.
func (h FanoutNotificationsCommandHandler) Handle(
	ctx context.Context,
	cmd FanoutNotificationsCommand,
) ([]*notification.Notification, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	restaurant, err := uow.RestaurantRepository().Get(ctx, cmd.RestaurantID())
	if err != nil {
		return nil, err
	}

	event := cmd.Event()
	messages := h.planner.Plan(event, restaurant.OwnerID())
	repo := uow.NotificationRepository()
	now := time.Now().UTC()

	created := make([]*notification.Notification, 0, len(messages))
	for _, m := range messages {
		id := kernel.NewDerivedUUID(event.EventID().String(), m.Recipient.String(), string(m.Type))
		n, buildErr := notification.NewNotification(id, m.Recipient, m.Role, m.Type, m.Title, m.Body, m.Payload, now)
		if buildErr != nil {
			return nil, buildErr
		}

		isNew, addErr := repo.Add(ctx, n)
		if addErr != nil {
			return nil, addErr
		}
		if isNew {
			created = append(created, n)
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	for _, n := range created {
		if pushErr := h.channel.PushToUser(ctx, n.UserID(), PushEventNotification, NewPushedNotification(n)); pushErr != nil {
			h.logger.Warn("push failed",
				"notification_id", n.ID().String(),
				"user_id", n.UserID().String(),
				"type", string(n.Type()),
				"error", pushErr)
		}
	}

	return created, nil
}
