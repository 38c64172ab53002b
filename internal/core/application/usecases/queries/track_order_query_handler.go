package queries

import (
	"context"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrackOrderQueryHandler renders the tracking view straight from the order,
// order_items and order_status_changes tables.
//
// Example:
//
//	handler := NewTrackOrderQueryHandler(db)
//	tracked, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrForbidden) {
//	    // the caller is not a party of the order
//	}
type TrackOrderQueryHandler struct {
	db *gorm.DB
}

// NewTrackOrderQueryHandler creates a handler for order tracking queries.
func NewTrackOrderQueryHandler(db *gorm.DB) TrackOrderQueryHandler {
	return TrackOrderQueryHandler{db: db}
}

// Handle loads the order, checks that the actor may see it and attaches items and timeline.
//
// Errors:
//   - ObjectNotFoundError if the order does not exist
//   - ForbiddenError if the actor is not the customer, the restaurant owner or the assigned rider
func (h TrackOrderQueryHandler) Handle(ctx context.Context, query TrackOrderQuery) (*TrackOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	resp, ownerID, err := h.loadHeader(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}
	if !canTrack(resp, ownerID, query.Actor()) {
		return nil, errs.NewForbiddenError(fmt.Sprintf("%s %s may not track order %s",
			query.Actor().Role(), query.Actor().ID(), resp.ID))
	}

	if resp.Items, err = h.loadItems(ctx, query.OrderID()); err != nil {
		return nil, err
	}
	if resp.History, err = h.loadHistory(ctx, query.OrderID()); err != nil {
		return nil, err
	}
	resp.Timeline = buildTimeline(resp.Status, resp.History)

	return resp, nil
}

func (h TrackOrderQueryHandler) loadHeader(ctx context.Context, orderID kernel.UUID) (*TrackOrderQueryResponse, kernel.UUID, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.order_number,
			o.status,
			o.customer_id,
			o.restaurant_id,
			r.name,
			r.owner_id,
			o.rider_id,
			o.subtotal_cents,
			o.delivery_fee_cents,
			o.total_cents,
			o.payment_status,
			o.rider_earning_cents,
			COALESCE(o.cancellation_reason, ''),
			o.created_at,
			o.delivered_at,
			o.cancelled_at
		FROM orders o
		JOIN restaurants r ON r.id = o.restaurant_id
		WHERE o.id = ?
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, kernel.UUID{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, kernel.UUID{}, err
		}
		return nil, kernel.UUID{}, errs.NewObjectNotFoundError("orderID", orderID)
	}

	var (
		id, customerID, restaurantID, ownerID uuid.UUID
		riderID                               uuid.NullUUID
		status                                string
		subtotal, fee, total                  int64
		earning                               *int64
		resp                                  TrackOrderQueryResponse
	)
	err = rows.Scan(
		&id,
		&resp.Number,
		&status,
		&customerID,
		&restaurantID,
		&resp.RestaurantName,
		&ownerID,
		&riderID,
		&subtotal,
		&fee,
		&total,
		&resp.PaymentStatus,
		&earning,
		&resp.CancellationReason,
		&resp.CreatedAt,
		&resp.DeliveredAt,
		&resp.CancelledAt,
	)
	if err != nil {
		return nil, kernel.UUID{}, err
	}

	if resp.Status, err = order.ParseStatus(status); err != nil {
		return nil, kernel.UUID{}, err
	}
	if resp.ID, err = kernel.UUIDFromGoogle(id); err != nil {
		return nil, kernel.UUID{}, err
	}
	if resp.CustomerID, err = kernel.UUIDFromGoogle(customerID); err != nil {
		return nil, kernel.UUID{}, err
	}
	if resp.RestaurantID, err = kernel.UUIDFromGoogle(restaurantID); err != nil {
		return nil, kernel.UUID{}, err
	}
	owner, err := kernel.UUIDFromGoogle(ownerID)
	if err != nil {
		return nil, kernel.UUID{}, err
	}
	if riderID.Valid {
		rider, riderErr := kernel.UUIDFromGoogle(riderID.UUID)
		if riderErr != nil {
			return nil, kernel.UUID{}, riderErr
		}
		resp.RiderID = &rider
	}

	if resp.Subtotal, err = kernel.NewMoneyFromCents(subtotal); err != nil {
		return nil, kernel.UUID{}, err
	}
	if resp.DeliveryFee, err = kernel.NewMoneyFromCents(fee); err != nil {
		return nil, kernel.UUID{}, err
	}
	if resp.Total, err = kernel.NewMoneyFromCents(total); err != nil {
		return nil, kernel.UUID{}, err
	}
	if earning != nil {
		money, moneyErr := kernel.NewMoneyFromCents(*earning)
		if moneyErr != nil {
			return nil, kernel.UUID{}, moneyErr
		}
		resp.RiderEarning = &money
	}

	return &resp, owner, rows.Err()
}

func (h TrackOrderQueryHandler) loadItems(ctx context.Context, orderID kernel.UUID) ([]TrackedItem, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			menu_item_id,
			item_name,
			quantity,
			price_cents
		FROM order_items
		WHERE order_id = ?
		ORDER BY position
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]TrackedItem, 0)
	for rows.Next() {
		var (
			item       TrackedItem
			menuItemID uuid.UUID
			priceCents int64
		)
		if err = rows.Scan(&menuItemID, &item.Name, &item.Quantity, &priceCents); err != nil {
			return nil, err
		}
		if item.MenuItemID, err = kernel.UUIDFromGoogle(menuItemID); err != nil {
			return nil, err
		}
		if item.Price, err = kernel.NewMoneyFromCents(priceCents); err != nil {
			return nil, err
		}
		if item.LineTotal, err = item.Price.Multiply(item.Quantity); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (h TrackOrderQueryHandler) loadHistory(ctx context.Context, orderID kernel.UUID) ([]StatusChangeEntry, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(from_status, ''),
			to_status,
			actor_id,
			actor_role,
			COALESCE(reason, ''),
			changed_at
		FROM order_status_changes
		WHERE order_id = ?
		ORDER BY changed_at, id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]StatusChangeEntry, 0)
	for rows.Next() {
		var (
			entry          StatusChangeEntry
			from, to, role string
			actorID        uuid.UUID
		)
		if err = rows.Scan(&from, &to, &actorID, &role, &entry.Reason, &entry.At); err != nil {
			return nil, err
		}
		entry.From = order.Status(from)
		if entry.To, err = order.ParseStatus(to); err != nil {
			return nil, err
		}
		if entry.ActorRole, err = order.ParseRole(role); err != nil {
			return nil, err
		}
		if entry.ActorID, err = kernel.UUIDFromGoogle(actorID); err != nil {
			return nil, err
		}
		history = append(history, entry)
	}

	return history, rows.Err()
}

func canTrack(resp *TrackOrderQueryResponse, ownerID kernel.UUID, actor order.Actor) bool {
	switch actor.Role() {
	case order.RoleCustomer:
		return resp.CustomerID.IsEqual(actor.ID())
	case order.RoleRestaurantOwner:
		return ownerID.IsEqual(actor.ID())
	case order.RoleRider:
		return resp.RiderID != nil && resp.RiderID.IsEqual(actor.ID())
	default:
		return false
	}
}

// buildTimeline folds the audit trail onto the lifecycle. The first time a
// status was entered is its ReachedAt.
func buildTimeline(current order.Status, history []StatusChangeEntry) []TimelineStep {
	reached := make(map[order.Status]time.Time, len(history))
	for _, entry := range history {
		if _, ok := reached[entry.To]; !ok {
			reached[entry.To] = entry.At
		}
	}

	steps := make([]TimelineStep, 0, len(order.Lifecycle()))
	for _, status := range order.Lifecycle() {
		at, ok := reached[status]
		if !ok && (status == order.Cancelled || current == order.Cancelled) {
			continue
		}
		step := TimelineStep{Status: status, Reached: ok, Current: status == current}
		if ok {
			step.ReachedAt = &at
		}
		steps = append(steps, step)
	}
	return steps
}
