package services

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/rider"
	"fooddelivery/internal/pkg/errs"
)

// ErrNoRidersAvailable is returned when no candidate has spare capacity.
// Callers report it as a declined assignment rather than a failure.
var ErrNoRidersAvailable = errs.NewUnavailableError("no riders available")

// DefaultMaxActiveOrdersPerRider keeps a rider to one order in ready or out_for_delivery at a time.
const DefaultMaxActiveOrdersPerRider = 1

// RiderDispatcher is a domain service that picks the rider for a ready order
// using least-active-load balancing.
//
// Business rules:
//   - a rider is available while it holds fewer than maxActiveOrders orders
//     in ready or out_for_delivery
//   - the candidate with the smallest load wins
//   - ties keep the order in which candidates were supplied
//
// Example usage:
//
//	dispatcher, _ := services.NewRiderDispatcher(1)
//	best, err := dispatcher.Select(candidates)
//	if errors.Is(err, services.ErrNoRidersAvailable) {
//	    // decline, the order stays in the backlog
//	}
//	err = dispatcher.Dispatch(o, best, time.Now())
type RiderDispatcher struct {
	maxActiveOrders int
}

// NewRiderDispatcher creates a dispatcher with the given per-rider capacity.
func NewRiderDispatcher(maxActiveOrders int) (RiderDispatcher, error) {
	if maxActiveOrders < 1 {
		return RiderDispatcher{}, errs.NewValueIsOutOfRangeError("maxActiveOrders", maxActiveOrders, 1, "unbounded")
	}
	return RiderDispatcher{maxActiveOrders: maxActiveOrders}, nil
}

// MaxActiveOrders returns the per-rider capacity.
func (d RiderDispatcher) MaxActiveOrders() int {
	return d.maxActiveOrders
}

// Rank drops candidates without capacity and orders the rest by ascending load.
// The input slice is not modified.
func (d RiderDispatcher) Rank(candidates []rider.Candidate) []rider.Candidate {
	ranked := make([]rider.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.HasCapacity(d.maxActiveOrders) {
			ranked = append(ranked, c)
		}
	}
	slices.SortStableFunc(ranked, func(a, b rider.Candidate) int {
		return cmp.Compare(a.ActiveOrders(), b.ActiveOrders())
	})
	return ranked
}

// Select returns the least loaded candidate, or ErrNoRidersAvailable.
func (d RiderDispatcher) Select(candidates []rider.Candidate) (rider.Candidate, error) {
	ranked := d.Rank(candidates)
	if len(ranked) == 0 {
		return rider.Candidate{}, ErrNoRidersAvailable
	}
	return ranked[0], nil
}

// Dispatch assigns the candidate to the order after rechecking its capacity.
func (d RiderDispatcher) Dispatch(o *order.Order, c rider.Candidate, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if !c.HasCapacity(d.maxActiveOrders) {
		return fmt.Errorf("%w: rider %s holds %d active orders", ErrNoRidersAvailable, c.RiderID(), c.ActiveOrders())
	}
	return o.AssignRider(c.RiderID(), now)
}
