// Package ports defines the contracts between the order core and its
// infrastructure: repositories, the unit of work, the delivery channel and
// the event publisher.
package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

// OrderFilter narrows the role-scoped order listings.
type OrderFilter struct {
	// Statuses restricts results to these statuses; empty means all.
	Statuses []order.Status
	Limit    int
	Offset   int
}

// OrderRepository defines the persistence contract for order aggregates.
// Single-order mutations are conditional writes: a losing concurrent writer
// receives an errs.ConflictError instead of silently overwriting.
type OrderRepository interface {
	// Add inserts the order with its items and its initial status change.
	Add(ctx context.Context, aggregate *order.Order) error

	// UpdateIfStatus writes the status related columns (status, delivered_at,
	// cancelled_at, cancellation_reason, rider_earning) and appends the status
	// change, but only while the stored status still equals expected.
	UpdateIfStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// UpdateIfUnassigned writes rider_id while the stored order is ready and has no rider.
	UpdateIfUnassigned(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its items, or errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// FindByCustomer, FindByRestaurant and FindByRider list orders with their items, newest first.
	FindByCustomer(ctx context.Context, customerID kernel.UUID, filter OrderFilter) ([]*order.Order, error)
	FindByRestaurant(ctx context.Context, restaurantID kernel.UUID, filter OrderFilter) ([]*order.Order, error)
	FindByRider(ctx context.Context, riderID kernel.UUID, filter OrderFilter) ([]*order.Order, error)

	// CountByRiderAndStatuses counts the rider's orders in any of statuses.
	CountByRiderAndStatuses(ctx context.Context, riderID kernel.UUID, statuses []order.Status) (int, error)

	// FindOldestUnassignedReady returns up to limit ready orders without a rider, oldest first.
	FindOldestUnassignedReady(ctx context.Context, limit int) ([]*order.Order, error)
}
