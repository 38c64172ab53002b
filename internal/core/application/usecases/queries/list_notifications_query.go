package queries

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/notification"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var (
	ErrListNotificationsQueryIsNotConstructed = errors.New(
		"ListNotificationsQuery must be created via NewListNotificationsQuery constructor",
	)
)

// ListNotificationsQuery lists the caller's own notifications, newest first.
type ListNotificationsQuery struct {
	userID     kernel.UUID
	unreadOnly bool
	limit      int

	guard guard.ConstructorGuard
}

// NewListNotificationsQuery validates the listing parameters. A zero limit means DefaultListLimit.
func NewListNotificationsQuery(userID kernel.UUID, unreadOnly bool, limit int) (ListNotificationsQuery, error) {
	if limit == 0 {
		limit = DefaultListLimit
	}
	var limitErr error
	if limit < 1 || limit > MaxListLimit {
		limitErr = errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxListLimit)
	}
	if err := errors.Join(userID.Validate(), limitErr); err != nil {
		return ListNotificationsQuery{}, err
	}
	return ListNotificationsQuery{
		userID:     userID,
		unreadOnly: unreadOnly,
		limit:      limit,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrListNotificationsQueryIsNotConstructed)
}

func (q ListNotificationsQuery) UserID() kernel.UUID { return q.userID }
func (q ListNotificationsQuery) UnreadOnly() bool    { return q.unreadOnly }
func (q ListNotificationsQuery) Limit() int          { return q.limit }

// ListNotificationsQueryResponse carries one page and the total unread count.
type ListNotificationsQueryResponse struct {
	Notifications []NotificationView
	UnreadCount   int64
}

// NotificationView is a notification as shown to its recipient.
type NotificationView struct {
	ID        kernel.UUID
	Type      notification.Type
	Title     string
	Message   string
	Payload   notification.Payload
	IsRead    bool
	ReadAt    *time.Time
	CreatedAt time.Time
}
