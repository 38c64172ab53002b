package order

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// Status is the closed set of lifecycle states of an order.
//
//	pending ─> confirmed ─> preparing ─> ready ─> out_for_delivery ─> delivered*
//	   └──────────┴────────────┴──────────┴──────────────┴──────────> cancelled*
//
// Terminal states are marked with *. Which actor may take which edge is
// decided by the transition table in transitions.go.
type Status string

const (
	Pending        Status = "pending"
	Confirmed      Status = "confirmed"
	Preparing      Status = "preparing"
	Ready          Status = "ready"
	OutForDelivery Status = "out_for_delivery"
	Delivered      Status = "delivered"
	Cancelled      Status = "cancelled"
)

// lifecycle lists the states in the order a successful delivery visits them,
// followed by cancelled. Tracking timelines are rendered in this order.
var lifecycle = []Status{Pending, Confirmed, Preparing, Ready, OutForDelivery, Delivered, Cancelled}

// Lifecycle returns every valid status in timeline order.
func Lifecycle() []Status {
	out := make([]Status, len(lifecycle))
	copy(out, lifecycle)
	return out
}

// ActiveDeliveryStatuses are the states in which an order occupies a rider.
func ActiveDeliveryStatuses() []Status {
	return []Status{Ready, OutForDelivery}
}

// ParseStatus converts external input (HTTP, database) into a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate rejects anything outside of the closed set.
func (s Status) Validate() error {
	for _, known := range lifecycle {
		if s == known {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", string(s)))
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

func (s Status) String() string {
	return string(s)
}

// PaymentStatus is carried on the order for display only; payments are processed elsewhere.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Validate rejects unknown payment states.
func (p PaymentStatus) Validate() error {
	switch p {
	case PaymentPending, PaymentPaid, PaymentRefunded:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"paymentStatus", fmt.Errorf("%q is not a valid payment status", string(p)),
		)
	}
}
