package ports

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/notification"
)

// NotificationRepository persists notifications.
type NotificationRepository interface {
	// Add inserts the notification. When a row with the same id exists
	// nothing is written and created is false.
	Add(ctx context.Context, n *notification.Notification) (created bool, err error)

	// Get returns a notification or errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error)

	// UpdateReadState writes is_read and read_at.
	UpdateReadState(ctx context.Context, n *notification.Notification) error

	// MarkAllRead marks every unread notification of userID read and returns how many changed.
	MarkAllRead(ctx context.Context, userID kernel.UUID, now time.Time) (int64, error)
}
