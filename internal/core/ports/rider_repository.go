package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/rider"
)

// RiderRepository answers the dispatch engine's availability questions.
type RiderRepository interface {
	// Get returns a rider or errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error)

	// FindAvailable returns up to limit active riders holding fewer than
	// maxActive orders in ready or out_for_delivery, annotated with their load.
	FindAvailable(ctx context.Context, maxActive, limit int) ([]rider.Candidate, error)

	// LockCandidate locks the rider row for the rest of the transaction and
	// recounts its load. Inactive riders are reported as errs.ObjectNotFoundError.
	LockCandidate(ctx context.Context, riderID kernel.UUID) (rider.Candidate, error)
}
