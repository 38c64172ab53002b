package commands

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrFanoutNotificationsCommandIsNotConstructed = errors.New(
	"FanoutNotificationsCommand must be created via NewFanoutNotificationsCommand constructor",
)

// FanoutNotificationsCommand carries one order event to be turned into notifications.
type FanoutNotificationsCommand struct {
	event        kernel.DomainEvent
	restaurantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewFanoutNotificationsCommand accepts the order events the planner understands.
func NewFanoutNotificationsCommand(event kernel.DomainEvent) (FanoutNotificationsCommand, error) {
	var restaurantID kernel.UUID
	switch e := event.(type) {
	case order.PlacedEvent:
		restaurantID = e.RestaurantID
	case order.StatusChangedEvent:
		restaurantID = e.RestaurantID
	case order.RiderAssignedEvent:
		restaurantID = e.RestaurantID
	case nil:
		return FanoutNotificationsCommand{}, errs.NewValueIsRequiredError("event")
	default:
		return FanoutNotificationsCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"event", fmt.Errorf("%s does not produce notifications", event.EventType()),
		)
	}
	if err := errors.Join(event.EventID().Validate(), restaurantID.Validate()); err != nil {
		return FanoutNotificationsCommand{}, err
	}
	return FanoutNotificationsCommand{event: event, restaurantID: restaurantID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c FanoutNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrFanoutNotificationsCommandIsNotConstructed)
}

func (c FanoutNotificationsCommand) Event() kernel.DomainEvent {
	return c.event
}

func (c FanoutNotificationsCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}
