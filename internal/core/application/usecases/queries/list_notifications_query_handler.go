package queries

import (
	"context"
	"encoding/json"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/notification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListNotificationsQueryHandler reads the notifications table directly.
type ListNotificationsQueryHandler struct {
	db *gorm.DB
}

func NewListNotificationsQueryHandler(db *gorm.DB) ListNotificationsQueryHandler {
	return ListNotificationsQueryHandler{db: db}
}

// Handle returns up to Limit notifications and the unread count of the user.
func (h ListNotificationsQueryHandler) Handle(
	ctx context.Context,
	query ListNotificationsQuery,
) (*ListNotificationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	userID := query.UserID().Bytes()

	sql := `
		SELECT id, type, title, message, payload, is_read, read_at, created_at
		FROM notifications
		WHERE user_id = ?`
	if query.UnreadOnly() {
		sql += ` AND is_read = false`
	}
	sql += `
		ORDER BY created_at DESC, id
		LIMIT ?`

	rows, err := db.Raw(sql, userID, query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	resp := &ListNotificationsQueryResponse{Notifications: make([]NotificationView, 0)}
	for rows.Next() {
		var (
			view    NotificationView
			id      uuid.UUID
			typ     string
			payload string
			readAt  *time.Time
		)
		if err = rows.Scan(&id, &typ, &view.Title, &view.Message, &payload, &view.IsRead, &readAt, &view.CreatedAt); err != nil {
			return nil, err
		}
		if view.ID, err = kernel.UUIDFromGoogle(id); err != nil {
			return nil, err
		}
		view.Type = notification.Type(typ)
		if err = json.Unmarshal([]byte(payload), &view.Payload); err != nil {
			return nil, err
		}
		view.ReadAt = readAt
		resp.Notifications = append(resp.Notifications, view)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if err = db.Raw(`SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = false`, userID).
		Scan(&resp.UnreadCount).Error; err != nil {
		return nil, err
	}

	return resp, nil
}
