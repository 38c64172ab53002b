package notification_test

import (
	"testing"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/notification"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNotification(t *testing.T, userID kernel.UUID) *notification.Notification {
	t.Helper()
	n, err := notification.NewNotification(kernel.NewUUID(), userID, order.RoleCustomer,
		notification.TypeOrderReady, "Order ready", "Your order ORD-20240102-001 is ready",
		notification.Payload{OrderID: kernel.NewUUID(), Status: order.Ready}, time.Now())
	require.NoError(t, err)
	return n
}

func TestNewNotification(t *testing.T) {
	t.Run("should create unread notification", func(t *testing.T) {
		n := newNotification(t, kernel.NewUUID())

		require.NoError(t, n.Validate())
		assert.False(t, n.IsRead())
		assert.Nil(t, n.ReadAt())
		assert.Equal(t, notification.TypeOrderReady, n.Type())
	})

	t.Run("should reject unknown type and empty title", func(t *testing.T) {
		_, err := notification.NewNotification(kernel.NewUUID(), kernel.NewUUID(), order.RoleRider,
			"promo", "", "", notification.Payload{}, time.Now())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject unknown role", func(t *testing.T) {
		_, err := notification.NewNotification(kernel.NewUUID(), kernel.NewUUID(), "admin",
			notification.TypeNewOrder, "New order", "", notification.Payload{}, time.Now())

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestMarkRead(t *testing.T) {
	owner := kernel.NewUUID()

	t.Run("should mark read once", func(t *testing.T) {
		n := newNotification(t, owner)
		first := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)

		require.NoError(t, n.MarkRead(owner, first))
		require.NoError(t, n.MarkRead(owner, first.Add(time.Hour)))

		assert.True(t, n.IsRead())
		require.NotNil(t, n.ReadAt())
		assert.Equal(t, first, *n.ReadAt())
	})

	t.Run("should forbid other users", func(t *testing.T) {
		n := newNotification(t, owner)

		err := n.MarkRead(kernel.NewUUID(), time.Now())

		assert.ErrorIs(t, err, errs.ErrForbidden)
		assert.False(t, n.IsRead())
	})
}
