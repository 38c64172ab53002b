package ports

import (
	"context"
	"time"
)

// OrderSequence hands out the per-day order sequence numbers.
type OrderSequence interface {
	// Next atomically increments and returns the counter for day (UTC date).
	Next(ctx context.Context, day time.Time) (int64, error)
}
