package commands

import (
	"errors"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrDrainBacklogCommandIsNotConstructed = errors.New(
	"DrainBacklogCommand must be created via NewDrainBacklogCommand constructor",
)

// maxDrainAssignments bounds one drain run.
const maxDrainAssignments = 100

// DrainBacklogCommand asks to assign up to MaxAssignments waiting ready orders.
type DrainBacklogCommand struct {
	maxAssignments int

	guard guard.ConstructorGuard
}

func NewDrainBacklogCommand(maxAssignments int) (DrainBacklogCommand, error) {
	if maxAssignments < 1 || maxAssignments > maxDrainAssignments {
		return DrainBacklogCommand{}, errs.NewValueIsOutOfRangeError("maxAssignments", maxAssignments, 1, maxDrainAssignments)
	}
	return DrainBacklogCommand{maxAssignments: maxAssignments, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c DrainBacklogCommand) Validate() error {
	return c.guard.Validate(ErrDrainBacklogCommandIsNotConstructed)
}

func (c DrainBacklogCommand) MaxAssignments() int {
	return c.maxAssignments
}
