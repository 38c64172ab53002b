package notification

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

// Type is the closed set of notification kinds.
type Type string

const (
	TypeOrderPlaced         Type = "order_placed"
	TypeNewOrder            Type = "new_order"
	TypeOrderConfirmed      Type = "order_confirmed"
	TypeOrderPreparing      Type = "order_preparing"
	TypeOrderReady          Type = "order_ready"
	TypeOrderOutForDelivery Type = "order_out_for_delivery"
	TypeOrderDelivered      Type = "order_delivered"
	TypeOrderCancelled      Type = "order_cancelled"
	TypeDeliveryAssigned    Type = "delivery_assigned"
	TypeRiderAssigned       Type = "rider_assigned"
)

// Validate rejects unknown notification types.
func (t Type) Validate() error {
	switch t {
	case TypeOrderPlaced, TypeNewOrder, TypeOrderConfirmed, TypeOrderPreparing, TypeOrderReady,
		TypeOrderOutForDelivery, TypeOrderDelivered, TypeOrderCancelled, TypeDeliveryAssigned, TypeRiderAssigned:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%q is not a valid notification type", string(t)))
	}
}

// Payload is the structured part of a notification, used by clients to deep-link into the order.
type Payload struct {
	OrderID      kernel.UUID  `json:"order_id"`
	RestaurantID kernel.UUID  `json:"restaurant_id"`
	OrderNumber  string       `json:"order_number"`
	Status       order.Status `json:"status"`
	RiderID      *kernel.UUID `json:"rider_id,omitempty"`
}

// ErrNotificationIsNotConstructed is returned for zero-value notifications.
var ErrNotificationIsNotConstructed = errors.New("Notification must be created via NewNotification or RestoreNotification constructor")

// Notification is one message to one recipient. It is append-only per
// user; read state is the only thing that ever changes.
type Notification struct {
	id        kernel.UUID
	userID    kernel.UUID
	userRole  order.Role
	typ       Type
	title     string
	message   string
	payload   Payload
	isRead    bool
	readAt    *time.Time
	createdAt time.Time
	guard     guard.ConstructorGuard
}

// NewNotification creates an unread notification.
func NewNotification(
	id, userID kernel.UUID,
	userRole order.Role,
	typ Type,
	title, message string,
	payload Payload,
	now time.Time,
) (*Notification, error) {
	n := &Notification{
		payload:   payload,
		createdAt: now,
		guard:     guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		n.setIdentity(id, userID, userRole),
		n.setContent(typ, title, message),
	); err != nil {
		return nil, err
	}
	return n, nil
}

// Snapshot is the persisted state of a notification.
type Snapshot struct {
	ID        kernel.UUID
	UserID    kernel.UUID
	UserRole  order.Role
	Type      Type
	Title     string
	Message   string
	Payload   Payload
	IsRead    bool
	ReadAt    *time.Time
	CreatedAt time.Time
}

// RestoreNotification reconstructs a notification from storage.
func RestoreNotification(s Snapshot) (*Notification, error) {
	n, err := NewNotification(s.ID, s.UserID, s.UserRole, s.Type, s.Title, s.Message, s.Payload, s.CreatedAt)
	if err != nil {
		return nil, err
	}
	n.isRead = s.IsRead
	n.readAt = s.ReadAt
	return n, nil
}

// Validate ensures the notification was properly constructed.
func (n *Notification) Validate() error {
	if n == nil {
		return ErrNotificationIsNotConstructed
	}
	return n.guard.Validate(ErrNotificationIsNotConstructed)
}

func (n *Notification) ID() kernel.UUID      { return n.id }
func (n *Notification) UserID() kernel.UUID  { return n.userID }
func (n *Notification) UserRole() order.Role { return n.userRole }
func (n *Notification) Type() Type           { return n.typ }
func (n *Notification) Title() string        { return n.title }
func (n *Notification) Message() string      { return n.message }
func (n *Notification) Payload() Payload     { return n.payload }
func (n *Notification) IsRead() bool         { return n.isRead }
func (n *Notification) ReadAt() *time.Time   { return n.readAt }
func (n *Notification) CreatedAt() time.Time { return n.createdAt }

// MarkRead marks the notification read on behalf of userID. Marking an
// already read notification keeps the original read time.
func (n *Notification) MarkRead(userID kernel.UUID, now time.Time) error {
	if !n.userID.IsEqual(userID) {
		return errs.NewForbiddenError(fmt.Sprintf("notification %s belongs to another user", n.id))
	}
	if n.isRead {
		return nil
	}
	n.isRead = true
	n.readAt = &now
	return nil
}

func (n *Notification) setIdentity(id, userID kernel.UUID, role order.Role) error {
	if err := errors.Join(id.Validate(), userID.Validate(), role.Validate()); err != nil {
		return err
	}
	n.id = id
	n.userID = userID
	n.userRole = role
	return nil
}

func (n *Notification) setContent(typ Type, title, message string) error {
	if err := typ.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(title) == "" {
		return errs.NewValueIsRequiredError("title")
	}
	n.typ = typ
	n.title = title
	n.message = message
	return nil
}
