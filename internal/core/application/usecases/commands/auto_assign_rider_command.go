package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrAutoAssignRiderCommandIsNotConstructed = errors.New(
	"AutoAssignRiderCommand must be created via NewAutoAssignRiderCommand constructor",
)

// AutoAssignRiderCommand asks the dispatch engine to find a rider for one ready order.
type AutoAssignRiderCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAutoAssignRiderCommand(orderID kernel.UUID) (AutoAssignRiderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AutoAssignRiderCommand{}, err
	}
	return AutoAssignRiderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c AutoAssignRiderCommand) Validate() error {
	return c.guard.Validate(ErrAutoAssignRiderCommandIsNotConstructed)
}

func (c AutoAssignRiderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// AssignmentOutcome tells how an assignment attempt ended.
type AssignmentOutcome string

const (
	// AssignmentAssigned means a rider was attached by this attempt.
	AssignmentAssigned AssignmentOutcome = "assigned"
	// AssignmentAlreadyAssigned means the order had a rider before; nothing changed.
	AssignmentAlreadyAssigned AssignmentOutcome = "already_assigned"
	// AssignmentDeclined means the attempt was refused without error (wrong status, no riders).
	AssignmentDeclined AssignmentOutcome = "declined"
	// AssignmentFailed is only reported by backlog drain, for orders whose attempt returned an error.
	AssignmentFailed AssignmentOutcome = "failed"
)

// AssignmentResult reports one assignment attempt.
type AssignmentResult struct {
	OrderID kernel.UUID
	Outcome AssignmentOutcome
	RiderID *kernel.UUID
	Reason  string
}

// Assigned reports whether the order has a rider after the attempt.
func (r AssignmentResult) Assigned() bool {
	return r.Outcome == AssignmentAssigned || r.Outcome == AssignmentAlreadyAssigned
}
