package orderrepo

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// ErrConcurrentStatusChange is returned when a guarded write matched no row
// because another writer changed the order first.
var ErrConcurrentStatusChange = errs.NewConflictError("order was changed concurrently")

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order, its items and the initial status change.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}
	if err := r.appendStatusChange(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateIfStatus writes only the status related columns, guarded by the status
// the caller read. Zero matched rows means a concurrent writer won.
func (r *GormOrderRepository) UpdateIfStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, expected.String()).
		Updates(map[string]any{
			"status":              dto.Status,
			"delivered_at":        dto.DeliveredAt,
			"cancelled_at":        dto.CancelledAt,
			"cancellation_reason": dto.CancellationReason,
			"rider_earning_cents": dto.RiderEarningCents,
			"updated_at":          dto.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConcurrentStatusChange
	}
	if err := r.appendStatusChange(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateIfUnassigned writes rider_id while the stored order is ready without a rider.
func (r *GormOrderRepository) UpdateIfUnassigned(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if !aggregate.HasRider() {
		return errs.NewValueIsRequiredError("riderID")
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ? AND rider_id IS NULL", dto.ID, order.Ready.String()).
		Updates(map[string]any{
			"rider_id":   dto.RiderID,
			"updated_at": dto.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConcurrentStatusChange
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order with its items by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.withItems(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindByCustomer lists the customer's orders, newest first.
func (r *GormOrderRepository) FindByCustomer(
	ctx context.Context,
	customerID kernel.UUID,
	filter ports.OrderFilter,
) ([]*order.Order, error) {
	return r.findBy(ctx, "customer_id", customerID, filter)
}

// FindByRestaurant lists the restaurant's orders, newest first.
func (r *GormOrderRepository) FindByRestaurant(
	ctx context.Context,
	restaurantID kernel.UUID,
	filter ports.OrderFilter,
) ([]*order.Order, error) {
	return r.findBy(ctx, "restaurant_id", restaurantID, filter)
}

// FindByRider lists the orders assigned to the rider, newest first.
func (r *GormOrderRepository) FindByRider(
	ctx context.Context,
	riderID kernel.UUID,
	filter ports.OrderFilter,
) ([]*order.Order, error) {
	return r.findBy(ctx, "rider_id", riderID, filter)
}

// CountByRiderAndStatuses counts the rider's orders in any of statuses.
func (r *GormOrderRepository) CountByRiderAndStatuses(
	ctx context.Context,
	riderID kernel.UUID,
	statuses []order.Status,
) (int, error) {
	if err := riderID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("rider_id = ? AND status IN ?", riderID.Bytes(), statusStrings(statuses)).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// FindOldestUnassignedReady returns the dispatch backlog in creation order.
func (r *GormOrderRepository) FindOldestUnassignedReady(ctx context.Context, limit int) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.withItems(ctx).
		Where("status = ? AND rider_id IS NULL", order.Ready.String()).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}
	return toDomainList(dtos)
}

func (r *GormOrderRepository) findBy(
	ctx context.Context,
	column string,
	id kernel.UUID,
	filter ports.OrderFilter,
) ([]*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	query := r.withItems(ctx).Where(column+" = ?", id.Bytes())
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", statusStrings(filter.Statuses))
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var dtos []OrderDTO
	if err := query.Order("created_at DESC, id DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainList(dtos)
}

func (r *GormOrderRepository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

func (r *GormOrderRepository) appendStatusChange(ctx context.Context, aggregate *order.Order) error {
	change := aggregate.LastChange()
	if change == nil {
		return nil
	}
	dto := statusChangeFromDomain(aggregate.ID(), *change)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func toDomainList(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func statusStrings(statuses []order.Status) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, s.String())
	}
	return out
}
