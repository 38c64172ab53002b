package commands

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

// DefaultDeliveryFeeCents is the flat delivery fee (50.00).
const DefaultDeliveryFeeCents int64 = 5000

// PlaceOrderCommandHandler materializes a cart as a pending order in one transaction.
//
// Steps, all inside the unit of work:
//   - load the cart (EmptyCart when missing or without items)
//   - check the address belongs to the customer (Forbidden)
//   - check the restaurant accepts orders (Unavailable)
//   - draw the next per-day sequence and build ORD-YYYYMMDD-NNN
//   - insert order, items and initial status change, delete the cart
//
// Any failure rolls everything back. The "order placed" and "new order"
// notifications follow from the PlacedEvent written to the outbox on commit.
type PlaceOrderCommandHandler struct {
	uowFactory  PlaceOrderUoWFactory
	deliveryFee kernel.Money
}

// NewPlaceOrderCommandHandler creates a handler charging deliveryFee per order.
func NewPlaceOrderCommandHandler(uowFactory PlaceOrderUoWFactory, deliveryFee kernel.Money) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory:  uowFactory,
		deliveryFee: deliveryFee,
	}
}

// Handle places the order and returns it.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cart, err := uow.CartRepository().GetByUser(ctx, cmd.CustomerID())
	if err != nil {
		return nil, err
	}
	items, err := cart.OrderItems()
	if err != nil {
		return nil, err
	}

	address, err := uow.AddressRepository().Get(ctx, cmd.AddressID())
	if err != nil {
		return nil, err
	}
	if err = address.EnsureOwnedBy(cmd.CustomerID()); err != nil {
		return nil, err
	}

	restaurant, err := uow.RestaurantRepository().Get(ctx, cart.RestaurantID())
	if err != nil {
		return nil, err
	}
	if err = restaurant.AcceptsOrders(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	seq, err := uow.OrderSequence().Next(ctx, now)
	if err != nil {
		return nil, err
	}
	number, err := order.NewNumber(now, seq)
	if err != nil {
		return nil, err
	}

	placed, err := order.NewOrder(
		kernel.NewUUID(), number,
		cmd.CustomerID(), restaurant.ID(), address.ID(),
		items, h.deliveryFee, now,
	)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, placed); err != nil {
		return nil, err
	}
	if err = uow.CartRepository().Delete(ctx, cart.ID()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return placed, nil
}
