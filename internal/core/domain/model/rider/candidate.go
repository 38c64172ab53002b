package rider

import (
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

// Candidate is an available rider together with its current load: the number
// of orders it holds in ready or out_for_delivery.
type Candidate struct {
	riderID      kernel.UUID
	activeOrders int
}

// NewCandidate validates and builds a dispatch candidate.
func NewCandidate(riderID kernel.UUID, activeOrders int) (Candidate, error) {
	if err := riderID.Validate(); err != nil {
		return Candidate{}, err
	}
	if activeOrders < 0 {
		return Candidate{}, errs.NewValueIsOutOfRangeError("activeOrders", activeOrders, 0, "unbounded")
	}
	return Candidate{riderID: riderID, activeOrders: activeOrders}, nil
}

func (c Candidate) RiderID() kernel.UUID {
	return c.riderID
}

func (c Candidate) ActiveOrders() int {
	return c.activeOrders
}

// HasCapacity reports whether the rider may take one more order under maxActive.
func (c Candidate) HasCapacity(maxActive int) bool {
	return c.activeOrders < maxActive
}
