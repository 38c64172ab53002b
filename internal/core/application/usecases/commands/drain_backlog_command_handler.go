package commands

import (
	"context"
)

// AutoAssigner is the single-order assignment the backlog drain delegates to.
type AutoAssigner interface {
	Handle(ctx context.Context, cmd AutoAssignRiderCommand) (AssignmentResult, error)
}

// DrainBacklogCommandHandler assigns the oldest unassigned ready orders, one
// at a time in creation order. A failing order is reported and the drain
// moves on to the next one.
type DrainBacklogCommandHandler struct {
	uowFactory OrderUoWFactory
	assigner   AutoAssigner
}

func NewDrainBacklogCommandHandler(uowFactory OrderUoWFactory, assigner AutoAssigner) DrainBacklogCommandHandler {
	return DrainBacklogCommandHandler{uowFactory: uowFactory, assigner: assigner}
}

// Handle returns one result per backlog order considered. Only the backlog
// lookup itself can fail the whole run.
func (h DrainBacklogCommandHandler) Handle(ctx context.Context, cmd DrainBacklogCommand) ([]AssignmentResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	backlog, err := h.uowFactory.Create().OrderRepository().FindOldestUnassignedReady(ctx, cmd.MaxAssignments())
	if err != nil {
		return nil, err
	}

	results := make([]AssignmentResult, 0, len(backlog))
	for _, o := range backlog {
		assignCmd, cmdErr := NewAutoAssignRiderCommand(o.ID())
		if cmdErr != nil {
			results = append(results, AssignmentResult{OrderID: o.ID(), Outcome: AssignmentFailed, Reason: cmdErr.Error()})
			continue
		}

		result, assignErr := h.assigner.Handle(ctx, assignCmd)
		if assignErr != nil {
			results = append(results, AssignmentResult{OrderID: o.ID(), Outcome: AssignmentFailed, Reason: assignErr.Error()})
			continue
		}
		results = append(results, result)
	}

	return results, nil
}
