package riderrepo

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/rider"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRiderRepository implements ports.RiderRepository using GORM.
type GormRiderRepository struct {
	db *gorm.DB
}

// NewGormRiderRepository creates a new GORM rider repository.
func NewGormRiderRepository(db *gorm.DB) *GormRiderRepository {
	return &GormRiderRepository{db: db}
}

// Add registers a rider. Used by seeding and tests; the dispatch core never creates riders.
func (r *GormRiderRepository) Add(ctx context.Context, aggregate *rider.Rider) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Select("*").Create(&dto).Error
}

// Get retrieves a rider by ID.
func (r *GormRiderRepository) Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RiderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("rider", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindAvailable returns active riders holding fewer than maxActive orders in
// ready or out_for_delivery, least loaded first.
//
// Example:
//
//	candidates, err := repo.FindAvailable(ctx, 1, 10)
//	if err != nil {
//		return fmt.Errorf("failed to get available riders: %w", err)
//	}
//	for _, c := range candidates {
//		fmt.Printf("rider %s holds %d orders\n", c.RiderID(), c.ActiveOrders())
//	}
func (r *GormRiderRepository) FindAvailable(ctx context.Context, maxActive, limit int) ([]rider.Candidate, error) {
	var rows []candidateRow
	// Join with orders to count each rider's active deliveries
	if err := r.db.WithContext(ctx).
		Table("riders").
		Select("riders.id AS id, COUNT(orders.id) AS active_orders").
		Joins("LEFT JOIN orders ON orders.rider_id = riders.id AND orders.status IN ?", activeStatuses()).
		Where("riders.is_active").
		Group("riders.id").
		Having("COUNT(orders.id) < ?", maxActive).
		Order("active_orders ASC, riders.id ASC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	candidates := make([]rider.Candidate, 0, len(rows))
	for _, row := range rows {
		c, err := toCandidate(row)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}

	return candidates, nil
}

// LockCandidate takes a row lock on the rider for the rest of the transaction
// and recounts its load, so two assignments cannot both see spare capacity.
func (r *GormRiderRepository) LockCandidate(ctx context.Context, riderID kernel.UUID) (rider.Candidate, error) {
	if err := riderID.Validate(); err != nil {
		return rider.Candidate{}, err
	}

	var dto RiderDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ? AND is_active", riderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return rider.Candidate{}, errs.NewObjectNotFoundError("rider", riderID.String())
		}
		return rider.Candidate{}, err
	}

	var active int64
	if err := r.db.WithContext(ctx).
		Table("orders").
		Where("rider_id = ? AND status IN ?", riderID.Bytes(), activeStatuses()).
		Count(&active).Error; err != nil {
		return rider.Candidate{}, err
	}

	return rider.NewCandidate(riderID, int(active))
}

func activeStatuses() []string {
	statuses := order.ActiveDeliveryStatuses()
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, s.String())
	}
	return out
}
