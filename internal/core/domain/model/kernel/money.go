package kernel

import (
	"fmt"
	"math"

	"fooddelivery/internal/pkg/errs"
)

// Money is a non-negative amount held in minor units (cents).
// Two-decimal rounding is exact in this representation, which keeps
// total = subtotal + delivery_fee free of floating point drift.
type Money struct {
	cents int64
}

// NewMoneyFromCents builds an amount from minor units.
func NewMoneyFromCents(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("cents", cents, 0, math.MaxInt64)
	}
	return Money{cents: cents}, nil
}

// NewMoneyFromFloat converts a decimal amount such as 12.50, rounding half away from zero.
//
// Example:
//
//	fee, err := kernel.NewMoneyFromFloat(50.00)
func NewMoneyFromFloat(amount float64) (Money, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Money{}, errs.NewValueIsInvalidError("amount")
	}
	return NewMoneyFromCents(int64(math.Round(amount * 100)))
}

// ZeroMoney is the additive identity.
func ZeroMoney() Money {
	return Money{}
}

// Cents returns the amount in minor units.
func (m Money) Cents() int64 {
	return m.cents
}

// Float64 returns the amount in major units, for transport DTOs.
func (m Money) Float64() float64 {
	return float64(m.cents) / 100
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// Multiply returns m × quantity. Quantity must be positive.
func (m Money) Multiply(quantity int) (Money, error) {
	if quantity <= 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, math.MaxInt32)
	}
	return Money{cents: m.cents * int64(quantity)}, nil
}

// Share returns round(m × basisPoints / 10000, 2 decimals), rounding half up.
// 8000 basis points is 80%.
func (m Money) Share(basisPoints int64) (Money, error) {
	if basisPoints < 0 || basisPoints > 10000 {
		return Money{}, errs.NewValueIsOutOfRangeError("basisPoints", basisPoints, 0, 10000)
	}
	return Money{cents: (m.cents*basisPoints + 5000) / 10000}, nil
}

// IsZero reports whether the amount is 0.00.
func (m Money) IsZero() bool {
	return m.cents == 0
}

// String formats the amount with two decimals.
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}
