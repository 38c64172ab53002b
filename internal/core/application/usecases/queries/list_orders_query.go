package queries

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
)

// ListOrdersQuery lists the orders visible to the actor in its role:
// customers see their own orders, riders the orders assigned to them and
// restaurant owners the orders of one of their restaurants.
//
// Example:
//
//	actor, _ := order.NewActor(ownerID, order.RoleRestaurantOwner)
//	query, err := NewListOrdersQuery(actor, &restaurantID, []order.Status{order.Pending}, 20, 0)
//	if err != nil {
//	    return err
//	}
//	orders, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	actor        order.Actor
	restaurantID *kernel.UUID
	statuses     []order.Status
	limit        int
	offset       int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery validates the listing parameters. A zero limit means
// DefaultListLimit. restaurantID is required for restaurant owners and
// ignored for other roles.
func NewListOrdersQuery(
	actor order.Actor,
	restaurantID *kernel.UUID,
	statuses []order.Status,
	limit, offset int,
) (ListOrdersQuery, error) {
	if limit == 0 {
		limit = DefaultListLimit
	}

	validation := []error{actor.Validate()}
	if limit < 1 || limit > MaxListLimit {
		validation = append(validation, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxListLimit))
	}
	if offset < 0 {
		validation = append(validation, errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded"))
	}
	for _, status := range statuses {
		validation = append(validation, status.Validate())
	}
	if actor.Role() == order.RoleRestaurantOwner {
		if restaurantID == nil {
			validation = append(validation, errs.NewValueIsRequiredError("restaurantID"))
		} else {
			validation = append(validation, restaurantID.Validate())
		}
	}
	if err := errors.Join(validation...); err != nil {
		return ListOrdersQuery{}, err
	}

	return ListOrdersQuery{
		actor:        actor,
		restaurantID: restaurantID,
		statuses:     append([]order.Status(nil), statuses...),
		limit:        limit,
		offset:       offset,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Actor() order.Actor         { return q.actor }
func (q ListOrdersQuery) RestaurantID() *kernel.UUID { return q.restaurantID }
func (q ListOrdersQuery) Statuses() []order.Status   { return append([]order.Status(nil), q.statuses...) }
func (q ListOrdersQuery) Limit() int                 { return q.limit }
func (q ListOrdersQuery) Offset() int                { return q.offset }
