package commands

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/order"
)

// TransitionOrderStatusCommandHandler applies one state machine step.
//
// Errors:
//   - errs.ObjectNotFoundError when the order does not exist
//   - errs.ForbiddenError when the actor is not a party of the order
//   - order.ErrInvalidTransition when the role table forbids the move
//   - errs.ConflictError when the order changed status concurrently
//
// Notifications and dispatch chaining (auto assignment on ready, backlog
// drain on delivered) run after commit from the StatusChangedEvent in the
// outbox and never affect the result of Handle.
type TransitionOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewTransitionOrderStatusCommandHandler(uowFactory OrderUoWFactory) TransitionOrderStatusCommandHandler {
	return TransitionOrderStatusCommandHandler{uowFactory: uowFactory}
}

// Handle returns the updated order.
func (h TransitionOrderStatusCommandHandler) Handle(ctx context.Context, cmd TransitionOrderStatusCommand) (*order.Order, error) {
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

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	restaurant, err := uow.RestaurantRepository().Get(ctx, o.RestaurantID())
	if err != nil {
		return nil, err
	}

	expected := o.Status()
	if err = o.TransitionTo(cmd.Actor(), restaurant.OwnerID(), cmd.Target(), cmd.Reason(), time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = orderRepo.UpdateIfStatus(ctx, o, expected); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
