package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderCommand converts the customer's cart into an order delivered to addressID.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand(customerID, addressID)
//	if err != nil {
//	    return fmt.Errorf("invalid checkout: %w", err)
//	}
//	o, err := handler.Handle(ctx, cmd)
type PlaceOrderCommand struct {
	customerID kernel.UUID
	addressID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand validates both identifiers.
func NewPlaceOrderCommand(customerID, addressID kernel.UUID) (PlaceOrderCommand, error) {
	if err := errors.Join(customerID.Validate(), addressID.Validate()); err != nil {
		return PlaceOrderCommand{}, err
	}
	return PlaceOrderCommand{
		customerID: customerID,
		addressID:  addressID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c PlaceOrderCommand) AddressID() kernel.UUID {
	return c.addressID
}
