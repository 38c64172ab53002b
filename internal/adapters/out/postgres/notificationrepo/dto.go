// Package notificationrepo persists per-recipient notifications.
package notificationrepo

import (
	"encoding/json"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/notification"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// NotificationDTO represents the database structure for notifications.
// Payload is stored as jsonb.
type NotificationDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_notifications_user_created,priority:1"`
	UserRole  string    `gorm:"type:varchar(32);not null"`
	Type      string    `gorm:"type:varchar(64);not null"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Message   string    `gorm:"type:text;not null"`
	Payload   string    `gorm:"type:jsonb;not null"`
	IsRead    bool      `gorm:"not null"`
	ReadAt    *time.Time
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false;index:idx_notifications_user_created,priority:2"`
}

// TableName specifies the database table name for notifications.
func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(n *notification.Notification) (NotificationDTO, error) {
	payload, err := json.Marshal(n.Payload())
	if err != nil {
		return NotificationDTO{}, err
	}
	return NotificationDTO{
		ID:        n.ID().Bytes(),
		UserID:    n.UserID().Bytes(),
		UserRole:  string(n.UserRole()),
		Type:      string(n.Type()),
		Title:     n.Title(),
		Message:   n.Message(),
		Payload:   string(payload),
		IsRead:    n.IsRead(),
		ReadAt:    n.ReadAt(),
		CreatedAt: n.CreatedAt(),
	}, nil
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	var payload notification.Payload
	if err = json.Unmarshal([]byte(dto.Payload), &payload); err != nil {
		return nil, err
	}

	return notification.RestoreNotification(notification.Snapshot{
		ID:        id,
		UserID:    userID,
		UserRole:  order.Role(dto.UserRole),
		Type:      notification.Type(dto.Type),
		Title:     dto.Title,
		Message:   dto.Message,
		Payload:   payload,
		IsRead:    dto.IsRead,
		ReadAt:    dto.ReadAt,
		CreatedAt: dto.CreatedAt,
	})
}
