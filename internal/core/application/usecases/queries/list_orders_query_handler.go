package queries

import (
	"context"
	"fmt"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// ListOrdersQueryHandler dispatches the listing to the repository finder
// that matches the actor's role.
type ListOrdersQueryHandler struct {
	orders      ports.OrderRepository
	restaurants ports.RestaurantRepository
}

func NewListOrdersQueryHandler(
	orders ports.OrderRepository,
	restaurants ports.RestaurantRepository,
) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{orders: orders, restaurants: restaurants}
}

// Handle returns the matching orders newest first.
//
// Errors:
//   - ObjectNotFoundError if an owner names an unknown restaurant
//   - ForbiddenError if an owner names a restaurant they do not own
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	actor := query.Actor()
	filter := ports.OrderFilter{
		Statuses: query.Statuses(),
		Limit:    query.Limit(),
		Offset:   query.Offset(),
	}

	switch actor.Role() {
	case order.RoleCustomer:
		return h.orders.FindByCustomer(ctx, actor.ID(), filter)
	case order.RoleRider:
		return h.orders.FindByRider(ctx, actor.ID(), filter)
	case order.RoleRestaurantOwner:
		restaurantID := *query.RestaurantID()
		r, err := h.restaurants.Get(ctx, restaurantID)
		if err != nil {
			return nil, err
		}
		if !r.OwnerID().IsEqual(actor.ID()) {
			return nil, errs.NewForbiddenError(fmt.Sprintf("owner %s does not own restaurant %s", actor.ID(), restaurantID))
		}
		return h.orders.FindByRestaurant(ctx, restaurantID, filter)
	default:
		return nil, errs.NewForbiddenError(fmt.Sprintf("role %s may not list orders", actor.Role()))
	}
}
