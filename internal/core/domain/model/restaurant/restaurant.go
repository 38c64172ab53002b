package restaurant

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

// ErrRestaurantUnavailable is returned when an inactive or closed restaurant would receive an order.
var ErrRestaurantUnavailable = errs.NewUnavailableError("restaurant is not accepting orders")

// Restaurant is the read model of a restaurant as far as the order core needs it.
type Restaurant struct {
	id              kernel.UUID
	ownerID         kernel.UUID
	name            string
	isActive        bool
	acceptingOrders bool
}

// RestoreRestaurant reconstructs a restaurant from storage.
func RestoreRestaurant(id, ownerID kernel.UUID, name string, isActive, acceptingOrders bool) (*Restaurant, error) {
	if err := errors.Join(id.Validate(), ownerID.Validate()); err != nil {
		return nil, err
	}
	return &Restaurant{
		id:              id,
		ownerID:         ownerID,
		name:            name,
		isActive:        isActive,
		acceptingOrders: acceptingOrders,
	}, nil
}

func (r *Restaurant) ID() kernel.UUID      { return r.id }
func (r *Restaurant) OwnerID() kernel.UUID { return r.ownerID }
func (r *Restaurant) Name() string         { return r.name }
func (r *Restaurant) IsActive() bool       { return r.isActive }

// AcceptsOrders returns ErrRestaurantUnavailable unless the restaurant is
// both active and currently accepting orders.
func (r *Restaurant) AcceptsOrders() error {
	if !r.isActive || !r.acceptingOrders {
		return ErrRestaurantUnavailable
	}
	return nil
}
