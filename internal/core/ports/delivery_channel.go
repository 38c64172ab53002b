package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
)

// DeliveryChannel pushes an event to a connected user in real time.
// Delivery is best-effort; callers log errors and never propagate them.
type DeliveryChannel interface {
	PushToUser(ctx context.Context, userID kernel.UUID, event string, payload any) error
}
