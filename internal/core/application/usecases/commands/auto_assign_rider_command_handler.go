package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/errs"
)

// DefaultCandidatePoolSize caps how many available riders one attempt considers.
const DefaultCandidatePoolSize = 10

// AutoAssignRiderCommandHandler binds a ready order to the least loaded available rider.
//
// Outcomes that are not errors:
//   - declined when the order is not ready
//   - already assigned when a rider is attached (idempotent no-op)
//   - declined with "no riders available" when the pool is empty
//
// The chosen rider's row is locked and its load recounted inside the
// transaction; a rider that filled up concurrently is skipped in favour of
// the next candidate. The rider_id write is guarded by status = ready and
// rider_id IS NULL, so a concurrent winner turns this attempt into a ConflictError.
//
// Example:
//
//	handler := NewAutoAssignRiderCommandHandler(uowFactory, dispatcher, DefaultCandidatePoolSize)
//	cmd, _ := NewAutoAssignRiderCommand(orderID)
//	result, err := handler.Handle(ctx, cmd)
//	if err == nil && !result.Assigned() {
//	    log.Printf("order %s waits in the backlog: %s", orderID, result.Reason)
//	}
type AutoAssignRiderCommandHandler struct {
	uowFactory DispatchUoWFactory
	dispatcher services.RiderDispatcher
	poolSize   int
}

func NewAutoAssignRiderCommandHandler(
	uowFactory DispatchUoWFactory,
	dispatcher services.RiderDispatcher,
	poolSize int,
) AutoAssignRiderCommandHandler {
	if poolSize < 1 {
		poolSize = DefaultCandidatePoolSize
	}
	return AutoAssignRiderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		poolSize:   poolSize,
	}
}

// Handle runs one assignment attempt.
func (h AutoAssignRiderCommandHandler) Handle(ctx context.Context, cmd AutoAssignRiderCommand) (AssignmentResult, error) {
	if err := cmd.Validate(); err != nil {
		return AssignmentResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AssignmentResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	riderRepo := uow.RiderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return AssignmentResult{}, err
	}

	result := AssignmentResult{OrderID: o.ID()}
	if o.Status() != order.Ready {
		result.Outcome = AssignmentDeclined
		result.Reason = fmt.Sprintf("order must be in %s status, is %s", order.Ready, o.Status())
		return result, nil
	}
	if o.HasRider() {
		result.Outcome = AssignmentAlreadyAssigned
		result.RiderID = o.RiderID()
		result.Reason = "order already has a rider"
		return result, nil
	}

	candidates, err := riderRepo.FindAvailable(ctx, h.dispatcher.MaxActiveOrders(), h.poolSize)
	if err != nil {
		return AssignmentResult{}, err
	}

	for _, candidate := range h.dispatcher.Rank(candidates) {
		locked, lockErr := riderRepo.LockCandidate(ctx, candidate.RiderID())
		if errors.Is(lockErr, errs.ErrObjectNotFound) {
			continue
		}
		if lockErr != nil {
			return AssignmentResult{}, lockErr
		}

		dispatchErr := h.dispatcher.Dispatch(o, locked, time.Now().UTC())
		if errors.Is(dispatchErr, services.ErrNoRidersAvailable) {
			continue
		}
		if dispatchErr != nil {
			return AssignmentResult{}, dispatchErr
		}

		if err = orderRepo.UpdateIfUnassigned(ctx, o); err != nil {
			return AssignmentResult{}, err
		}
		if err = uow.Commit(ctx); err != nil {
			return AssignmentResult{}, err
		}

		result.Outcome = AssignmentAssigned
		result.RiderID = o.RiderID()
		return result, nil
	}

	result.Outcome = AssignmentDeclined
	result.Reason = services.ErrNoRidersAvailable.Resource
	return result, nil
}
