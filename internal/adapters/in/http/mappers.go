package http

import (
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/notification"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/generated/servers"

	"github.com/google/uuid"
)

func amount(m kernel.Money) float32 {
	return float32(m.Float64())
}

func amountPtr(m *kernel.Money) *float32 {
	if m == nil {
		return nil
	}
	v := amount(*m)
	return &v
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func uuidPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil || id.IsZero() {
		return nil
	}
	return kernel.UUIDPtrToBytes(id)
}

func toOrder(o *order.Order) servers.Order {
	items := make([]servers.OrderItem, 0, len(o.Items()))
	for _, item := range o.Items() {
		lineTotal := amount(item.LineTotal())
		items = append(items, servers.OrderItem{
			MenuItemId: item.MenuItemID().Bytes(),
			ItemName:   item.Name(),
			Quantity:   item.Quantity(),
			Price:      amount(item.Price()),
			LineTotal:  &lineTotal,
		})
	}

	return servers.Order{
		Id:                 o.ID().Bytes(),
		OrderNumber:        o.Number().String(),
		Status:             servers.OrderStatus(o.Status()),
		CustomerId:         o.CustomerID().Bytes(),
		RestaurantId:       o.RestaurantID().Bytes(),
		AddressId:          o.AddressID().Bytes(),
		RiderId:            uuidPtr(o.RiderID()),
		Items:              items,
		Subtotal:           amount(o.Subtotal()),
		DeliveryFee:        amount(o.DeliveryFee()),
		TotalAmount:        amount(o.Total()),
		PaymentStatus:      string(o.PaymentStatus()),
		RiderEarning:       amountPtr(o.RiderEarning()),
		DeliveredAt:        o.DeliveredAt(),
		CancelledAt:        o.CancelledAt(),
		CancellationReason: stringPtr(o.CancellationReason()),
		CreatedAt:          o.CreatedAt(),
		UpdatedAt:          o.UpdatedAt(),
	}
}

func toTrackedOrder(r *queries.TrackOrderQueryResponse) servers.TrackedOrder {
	items := make([]servers.OrderItem, 0, len(r.Items))
	for _, item := range r.Items {
		lineTotal := amount(item.LineTotal)
		items = append(items, servers.OrderItem{
			MenuItemId: item.MenuItemID.Bytes(),
			ItemName:   item.Name,
			Quantity:   item.Quantity,
			Price:      amount(item.Price),
			LineTotal:  &lineTotal,
		})
	}

	timeline := make([]servers.TimelineStep, 0, len(r.Timeline))
	for _, step := range r.Timeline {
		timeline = append(timeline, servers.TimelineStep{
			Status:    servers.OrderStatus(step.Status),
			Reached:   step.Reached,
			Current:   step.Current,
			ReachedAt: step.ReachedAt,
		})
	}

	restaurantID := r.RestaurantID.Bytes()
	return servers.TrackedOrder{
		Id:                 r.ID.Bytes(),
		OrderNumber:        r.Number,
		Status:             servers.OrderStatus(r.Status),
		RestaurantId:       &restaurantID,
		RestaurantName:     r.RestaurantName,
		RiderId:            uuidPtr(r.RiderID),
		Items:              items,
		Subtotal:           amount(r.Subtotal),
		DeliveryFee:        amount(r.DeliveryFee),
		TotalAmount:        amount(r.Total),
		PaymentStatus:      stringPtr(r.PaymentStatus),
		RiderEarning:       amountPtr(r.RiderEarning),
		CancellationReason: stringPtr(r.CancellationReason),
		CreatedAt:          r.CreatedAt,
		DeliveredAt:        r.DeliveredAt,
		CancelledAt:        r.CancelledAt,
		Timeline:           timeline,
	}
}

func toAssignmentResult(r commands.AssignmentResult) servers.AssignmentResult {
	return servers.AssignmentResult{
		OrderId: r.OrderID.Bytes(),
		Outcome: servers.AssignmentResultOutcome(r.Outcome),
		RiderId: uuidPtr(r.RiderID),
		Reason:  stringPtr(r.Reason),
	}
}

func toRiderStats(r *queries.GetRiderStatsQueryResponse) servers.RiderStats {
	return servers.RiderStats{
		RiderId:         r.RiderID.Bytes(),
		TotalOrders:     r.TotalOrders,
		DeliveredOrders: r.DeliveredOrders,
		ActiveOrders:    r.ActiveOrders,
		CompletionRate:  float32(r.CompletionRate),
		TotalEarnings:   amount(r.TotalEarnings),
		TodayEarnings:   amount(r.TodayEarnings),
		MonthEarnings:   amount(r.MonthEarnings),
		AverageEarning:  amount(r.AverageEarning),
	}
}

func toNotificationPage(r *queries.ListNotificationsQueryResponse) servers.NotificationPage {
	page := servers.NotificationPage{
		Notifications: make([]servers.Notification, 0, len(r.Notifications)),
		UnreadCount:   r.UnreadCount,
	}
	for _, n := range r.Notifications {
		orderID := n.Payload.OrderID.Bytes()
		restaurantID := n.Payload.RestaurantID.Bytes()
		status := string(n.Payload.Status)
		page.Notifications = append(page.Notifications, servers.Notification{
			Id:      n.ID.Bytes(),
			Type:    string(n.Type),
			Title:   n.Title,
			Message: n.Message,
			Payload: servers.NotificationPayload{
				OrderId:      &orderID,
				RestaurantId: &restaurantID,
				OrderNumber:  stringPtr(n.Payload.OrderNumber),
				Status:       stringPtr(status),
				RiderId:      uuidPtr(n.Payload.RiderID),
			},
			IsRead:    n.IsRead,
			ReadAt:    n.ReadAt,
			CreatedAt: n.CreatedAt,
		})
	}
	return page
}

func toNotification(n *notification.Notification) servers.Notification {
	page := toNotificationPage(&queries.ListNotificationsQueryResponse{
		Notifications: []queries.NotificationView{{
			ID:        n.ID(),
			Type:      n.Type(),
			Title:     n.Title(),
			Message:   n.Message(),
			Payload:   n.Payload(),
			IsRead:    n.IsRead(),
			ReadAt:    n.ReadAt(),
			CreatedAt: n.CreatedAt(),
		}},
	})
	return page.Notifications[0]
}
