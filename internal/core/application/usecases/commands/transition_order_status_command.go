package commands

import (
	"errors"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrTransitionOrderStatusCommandIsNotConstructed = errors.New(
	"TransitionOrderStatusCommand must be created via NewTransitionOrderStatusCommand constructor",
)

// maxReasonLength bounds the stored cancellation reason.
const maxReasonLength = 500

// TransitionOrderStatusCommand asks to move an order to target on behalf of actor.
type TransitionOrderStatusCommand struct {
	orderID kernel.UUID
	actor   order.Actor
	target  order.Status
	reason  string

	guard guard.ConstructorGuard
}

// NewTransitionOrderStatusCommand validates the request shape. Whether the
// move is allowed is decided by the order itself.
func NewTransitionOrderStatusCommand(
	orderID kernel.UUID,
	actor order.Actor,
	target order.Status,
	reason string,
) (TransitionOrderStatusCommand, error) {
	reason = strings.TrimSpace(reason)
	var reasonErr error
	if len(reason) > maxReasonLength {
		reasonErr = errs.NewValueIsOutOfRangeError("reason length", len(reason), 0, maxReasonLength)
	}
	if err := errors.Join(orderID.Validate(), actor.Validate(), target.Validate(), reasonErr); err != nil {
		return TransitionOrderStatusCommand{}, err
	}
	return TransitionOrderStatusCommand{
		orderID: orderID,
		actor:   actor,
		target:  target,
		reason:  reason,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderStatusCommandIsNotConstructed)
}

func (c TransitionOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }
func (c TransitionOrderStatusCommand) Actor() order.Actor   { return c.actor }
func (c TransitionOrderStatusCommand) Target() order.Status { return c.target }
func (c TransitionOrderStatusCommand) Reason() string       { return c.reason }
