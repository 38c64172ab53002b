package order

import (
	"fmt"
	"strings"
	"time"

	"fooddelivery/internal/pkg/errs"
)

const (
	numberPrefix     = "ORD-"
	numberDateLayout = "20060102"
)

// Number is the human-facing order number ORD-YYYYMMDD-NNN. The day part is
// the placement date, NNN is the per-day sequence (at least three digits,
// growing beyond 999 when a day has more orders).
type Number struct {
	value string
}

// NewNumber formats the number for the n-th order placed on day.
func NewNumber(day time.Time, sequence int64) (Number, error) {
	if sequence < 1 {
		return Number{}, errs.NewValueIsOutOfRangeError("sequence", sequence, 1, "unbounded")
	}
	return Number{value: fmt.Sprintf("%s%s-%03d", numberPrefix, day.Format(numberDateLayout), sequence)}, nil
}

// ParseNumber validates a stored order number.
func ParseNumber(s string) (Number, error) {
	rest, ok := strings.CutPrefix(s, numberPrefix)
	if !ok {
		return Number{}, errs.NewValueIsInvalidErrorWithCause("orderNumber", fmt.Errorf("%q has no %s prefix", s, numberPrefix))
	}
	day, seq, ok := strings.Cut(rest, "-")
	if !ok || len(seq) < 3 {
		return Number{}, errs.NewValueIsInvalidErrorWithCause("orderNumber", fmt.Errorf("%q is malformed", s))
	}
	if _, err := time.Parse(numberDateLayout, day); err != nil {
		return Number{}, errs.NewValueIsInvalidErrorWithCause("orderNumber", err)
	}
	for _, r := range seq {
		if r < '0' || r > '9' {
			return Number{}, errs.NewValueIsInvalidErrorWithCause("orderNumber", fmt.Errorf("%q has a non-numeric sequence", s))
		}
	}
	return Number{value: s}, nil
}

func (n Number) String() string {
	return n.value
}

// IsZero reports whether the number was never assigned.
func (n Number) IsZero() bool {
	return n.value == ""
}
