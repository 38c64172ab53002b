package services_test

import (
	"testing"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/notification"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recipient struct {
	id   kernel.UUID
	role order.Role
}

func recipients(msgs []services.Message) []recipient {
	out := make([]recipient, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, recipient{id: m.Recipient, role: m.Role})
	}
	return out
}

func TestNotificationPlanner_StatusChanged(t *testing.T) {
	customer, owner, riderID := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	c := recipient{customer, order.RoleCustomer}
	o := recipient{owner, order.RoleRestaurantOwner}
	r := recipient{riderID, order.RoleRider}

	tests := []struct {
		to        order.Status
		withRider bool
		want      []recipient
		wantType  notification.Type
	}{
		{order.Confirmed, false, []recipient{c}, notification.TypeOrderConfirmed},
		{order.Preparing, false, []recipient{c}, notification.TypeOrderPreparing},
		{order.Ready, false, []recipient{c}, notification.TypeOrderReady},
		{order.Ready, true, []recipient{c, r}, notification.TypeOrderReady},
		{order.OutForDelivery, true, []recipient{c, o}, notification.TypeOrderOutForDelivery},
		{order.Delivered, true, []recipient{c, o, r}, notification.TypeOrderDelivered},
		{order.Cancelled, false, []recipient{c, o}, notification.TypeOrderCancelled},
		{order.Cancelled, true, []recipient{c, o, r}, notification.TypeOrderCancelled},
	}

	planner := services.NewNotificationPlanner()
	for _, tt := range tests {
		name := string(tt.to)
		if tt.withRider {
			name += " with rider"
		}
		t.Run(name, func(t *testing.T) {
			e := order.StatusChangedEvent{
				ID: kernel.NewUUID(), OrderID: kernel.NewUUID(), OrderNumber: "ORD-20240102-001",
				CustomerID: customer, RestaurantID: kernel.NewUUID(), To: tt.to, At: time.Now(),
			}
			if tt.withRider {
				e.RiderID = &riderID
			}

			msgs := planner.Plan(e, owner)

			assert.Equal(t, tt.want, recipients(msgs))
			for _, m := range msgs {
				assert.Equal(t, tt.wantType, m.Type)
				assert.Equal(t, tt.to, m.Payload.Status)
				assert.True(t, m.Payload.OrderID.IsEqual(e.OrderID))
				assert.Contains(t, m.Body, "ORD-20240102-001")
			}
		})
	}

	t.Run("pending has no audience", func(t *testing.T) {
		msgs := planner.Plan(order.StatusChangedEvent{CustomerID: customer, To: order.Pending}, owner)
		assert.Empty(t, msgs)
	})

	t.Run("cancellation reason is included", func(t *testing.T) {
		msgs := planner.Plan(order.StatusChangedEvent{
			CustomerID: customer, To: order.Cancelled, OrderNumber: "ORD-20240102-002", Reason: "out of stock",
		}, owner)
		require.NotEmpty(t, msgs)
		assert.Contains(t, msgs[0].Body, "out of stock")
	})
}

func TestNotificationPlanner_Placed(t *testing.T) {
	customer, owner := kernel.NewUUID(), kernel.NewUUID()

	msgs := services.NewNotificationPlanner().Plan(order.PlacedEvent{
		ID: kernel.NewUUID(), OrderID: kernel.NewUUID(), OrderNumber: "ORD-20240102-003", CustomerID: customer,
	}, owner)

	require.Len(t, msgs, 2)
	assert.Equal(t, notification.TypeOrderPlaced, msgs[0].Type)
	assert.True(t, msgs[0].Recipient.IsEqual(customer))
	assert.Equal(t, notification.TypeNewOrder, msgs[1].Type)
	assert.True(t, msgs[1].Recipient.IsEqual(owner))
	assert.Equal(t, order.RoleRestaurantOwner, msgs[1].Role)
}

func TestNotificationPlanner_RiderAssigned(t *testing.T) {
	customer, riderID := kernel.NewUUID(), kernel.NewUUID()

	msgs := services.NewNotificationPlanner().Plan(order.RiderAssignedEvent{
		ID: kernel.NewUUID(), OrderID: kernel.NewUUID(), CustomerID: customer, RiderID: riderID,
	}, kernel.NewUUID())

	require.Len(t, msgs, 2)
	assert.Equal(t, notification.TypeDeliveryAssigned, msgs[0].Type)
	assert.True(t, msgs[0].Recipient.IsEqual(riderID))
	assert.Equal(t, notification.TypeRiderAssigned, msgs[1].Type)
	assert.True(t, msgs[1].Recipient.IsEqual(customer))
	require.NotNil(t, msgs[1].Payload.RiderID)
	assert.True(t, msgs[1].Payload.RiderID.IsEqual(riderID))
}
