package services

import (
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/notification"
	"fooddelivery/internal/core/domain/model/order"
)

// Message is one planned notification for one recipient.
type Message struct {
	Recipient kernel.UUID
	Role      order.Role
	Type      notification.Type
	Title     string
	Body      string
	Payload   notification.Payload
}

type statusTemplate struct {
	typ   notification.Type
	title string
	body  string
	// owner and rider extend the audience beyond the customer.
	owner bool
	rider bool
}

// statusTemplates maps the status an order moved into to its audience; the
// customer is always included. Pending is absent: placement has its own event.
var statusTemplates = map[order.Status]statusTemplate{
	order.Confirmed: {
		typ: notification.TypeOrderConfirmed, title: "Order confirmed",
		body: "The restaurant confirmed order %s",
	},
	order.Preparing: {
		typ: notification.TypeOrderPreparing, title: "Order is being prepared",
		body: "The restaurant is preparing order %s",
	},
	order.Ready: {
		typ: notification.TypeOrderReady, title: "Order ready",
		body: "Order %s is ready for pickup", rider: true,
	},
	order.OutForDelivery: {
		typ: notification.TypeOrderOutForDelivery, title: "Order on the way",
		body: "Order %s is out for delivery", owner: true,
	},
	order.Delivered: {
		typ: notification.TypeOrderDelivered, title: "Order delivered",
		body: "Order %s has been delivered", owner: true, rider: true,
	},
	order.Cancelled: {
		typ: notification.TypeOrderCancelled, title: "Order cancelled",
		body: "Order %s has been cancelled", owner: true, rider: true,
	},
}

// NotificationPlanner is a domain service that turns an order event into the
// set of (recipient, message) pairs the fanout persists and pushes.
//
// Audience by event:
//   - placed: customer (order_placed) and restaurant owner (new_order)
//   - moved to confirmed or preparing: customer
//   - moved to ready: customer, plus the rider when one is assigned
//   - moved to out_for_delivery: customer and owner
//   - moved to delivered or cancelled: customer and owner, plus the assigned rider
//   - rider assigned: rider (delivery_assigned) and customer (rider_assigned)
type NotificationPlanner struct{}

// NewNotificationPlanner creates a NotificationPlanner.
func NewNotificationPlanner() NotificationPlanner {
	return NotificationPlanner{}
}

// Plan returns the messages for event. restaurantOwnerID is the owner of the
// order's restaurant. Events the planner does not know produce no messages.
func (NotificationPlanner) Plan(event kernel.DomainEvent, restaurantOwnerID kernel.UUID) []Message {
	switch e := event.(type) {
	case order.PlacedEvent:
		payload := notification.Payload{
			OrderID: e.OrderID, RestaurantID: e.RestaurantID, OrderNumber: e.OrderNumber, Status: order.Pending,
		}
		return []Message{
			{
				Recipient: e.CustomerID, Role: order.RoleCustomer, Type: notification.TypeOrderPlaced,
				Title: "Order placed", Body: fmt.Sprintf("Your order %s has been placed", e.OrderNumber),
				Payload: payload,
			},
			{
				Recipient: restaurantOwnerID, Role: order.RoleRestaurantOwner, Type: notification.TypeNewOrder,
				Title: "New order", Body: fmt.Sprintf("You received order %s", e.OrderNumber),
				Payload: payload,
			},
		}

	case order.StatusChangedEvent:
		tpl, ok := statusTemplates[e.To]
		if !ok {
			return nil
		}
		payload := notification.Payload{
			OrderID: e.OrderID, RestaurantID: e.RestaurantID, OrderNumber: e.OrderNumber,
			Status: e.To, RiderID: e.RiderID,
		}
		body := fmt.Sprintf(tpl.body, e.OrderNumber)
		if e.To == order.Cancelled && e.Reason != "" {
			body = fmt.Sprintf("%s: %s", body, e.Reason)
		}
		msg := func(recipient kernel.UUID, role order.Role) Message {
			return Message{Recipient: recipient, Role: role, Type: tpl.typ, Title: tpl.title, Body: body, Payload: payload}
		}

		out := []Message{msg(e.CustomerID, order.RoleCustomer)}
		if tpl.owner {
			out = append(out, msg(restaurantOwnerID, order.RoleRestaurantOwner))
		}
		if tpl.rider && e.RiderID != nil {
			out = append(out, msg(*e.RiderID, order.RoleRider))
		}
		return out

	case order.RiderAssignedEvent:
		riderID := e.RiderID
		payload := notification.Payload{
			OrderID: e.OrderID, RestaurantID: e.RestaurantID, OrderNumber: e.OrderNumber,
			Status: order.Ready, RiderID: &riderID,
		}
		return []Message{
			{
				Recipient: e.RiderID, Role: order.RoleRider, Type: notification.TypeDeliveryAssigned,
				Title: "New delivery", Body: fmt.Sprintf("Order %s is assigned to you for delivery", e.OrderNumber),
				Payload: payload,
			},
			{
				Recipient: e.CustomerID, Role: order.RoleCustomer, Type: notification.TypeRiderAssigned,
				Title: "Rider assigned", Body: fmt.Sprintf("A rider will deliver order %s", e.OrderNumber),
				Payload: payload,
			},
		}
	}
	return nil
}
