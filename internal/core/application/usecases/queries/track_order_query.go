// Package queries contains read operations that never change system state.
// Handlers that render read models run raw SQL against the database; listings
// that reuse aggregate loading go through the repositories.
package queries

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/guard"
)

var (
	ErrTrackOrderQueryIsNotConstructed = errors.New(
		"TrackOrderQuery must be created via NewTrackOrderQuery constructor",
	)
)

// TrackOrderQuery retrieves one order with its items and its status timeline.
// Only the ordering customer, the owner of the restaurant and the assigned
// rider may track an order.
//
// Example:
//
//	actor, _ := order.NewActor(customerID, order.RoleCustomer)
//	query, err := NewTrackOrderQuery(orderID, actor)
//	if err != nil {
//	    return err
//	}
//
//	tracked, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to track order: %w", err)
//	}
//	for _, step := range tracked.Timeline {
//	    fmt.Println(step.Status, step.Reached)
//	}
type TrackOrderQuery struct {
	orderID kernel.UUID
	actor   order.Actor

	guard guard.ConstructorGuard
}

// NewTrackOrderQuery creates a tracking query for orderID on behalf of actor.
func NewTrackOrderQuery(orderID kernel.UUID, actor order.Actor) (TrackOrderQuery, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return TrackOrderQuery{}, err
	}
	return TrackOrderQuery{orderID: orderID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrTrackOrderQueryIsNotConstructed if validation fails.
func (q TrackOrderQuery) Validate() error {
	return q.guard.Validate(ErrTrackOrderQueryIsNotConstructed)
}

func (q TrackOrderQuery) OrderID() kernel.UUID { return q.orderID }
func (q TrackOrderQuery) Actor() order.Actor   { return q.actor }

// TrackOrderQueryResponse is the tracking view of an order.
type TrackOrderQueryResponse struct {
	ID                 kernel.UUID
	Number             string
	Status             order.Status
	CustomerID         kernel.UUID
	RestaurantID       kernel.UUID
	RestaurantName     string
	RiderID            *kernel.UUID
	Items              []TrackedItem
	Subtotal           kernel.Money
	DeliveryFee        kernel.Money
	Total              kernel.Money
	PaymentStatus      string
	RiderEarning       *kernel.Money
	CancellationReason string
	CreatedAt          time.Time
	DeliveredAt        *time.Time
	CancelledAt        *time.Time
	Timeline           []TimelineStep
	History            []StatusChangeEntry
}

// TrackedItem is one order line as snapshotted at placement.
type TrackedItem struct {
	MenuItemID kernel.UUID
	Name       string
	Quantity   int
	Price      kernel.Money
	LineTotal  kernel.Money
}

// TimelineStep tells whether the order has reached Status and when.
// Steps follow the delivery lifecycle; cancelled appears only once reached,
// and steps after a cancellation are omitted.
type TimelineStep struct {
	Status    order.Status
	Reached   bool
	Current   bool
	ReachedAt *time.Time
}

// StatusChangeEntry is one row of the audit trail. From is empty for the initial entry.
type StatusChangeEntry struct {
	From      order.Status
	To        order.Status
	ActorID   kernel.UUID
	ActorRole order.Role
	Reason    string
	At        time.Time
}
