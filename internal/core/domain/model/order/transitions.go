package order

import (
	"slices"

	"fooddelivery/internal/pkg/errs"
)

// ErrInvalidTransition is wrapped by every rejected status change. It is a
// conflict: the order is not in a state from which the actor may move it.
var ErrInvalidTransition = errs.NewConflictError("invalid status transition")

// transitions maps (actor role, current status) to the statuses that role may move the order to.
// Ownership (restaurant owner, assigned rider, ordering customer) is checked separately by Authorize.
var transitions = map[Role]map[Status][]Status{
	RoleRestaurantOwner: {
		Pending:   {Confirmed},
		Confirmed: {Preparing},
		Preparing: {Ready},
	},
	RoleRider: {
		Ready:          {OutForDelivery},
		OutForDelivery: {Delivered},
	},
	RoleCustomer: {
		Pending:        {Cancelled},
		Confirmed:      {Cancelled},
		Preparing:      {Cancelled},
		Ready:          {Cancelled},
		OutForDelivery: {Cancelled},
	},
}

// AllowedTransitions returns the statuses role may move an order in from to.
func AllowedTransitions(role Role, from Status) []Status {
	return slices.Clone(transitions[role][from])
}

// CanTransition reports whether role may move an order from one status to another.
func CanTransition(role Role, from, to Status) bool {
	return slices.Contains(transitions[role][from], to)
}
