package cartrepo

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/cart"
	"fooddelivery/internal/core/domain/model/kernel"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCartRepository implements ports.CartRepository using GORM.
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GORM cart repository.
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// GetByUser loads the user's cart with its items and locks the cart row, so a
// second placement from the same cart waits and then finds it gone.
// A user without a cart gets an empty one.
func (r *GormCartRepository) GetByUser(ctx context.Context, userID kernel.UUID) (*cart.Cart, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dto CartDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&dto, "user_id = ?", userID.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return cart.RestoreCart(kernel.NewDerivedUUID("cart", userID.String()), userID, kernel.UUID{}, nil)
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes the cart and its items.
func (r *GormCartRepository) Delete(ctx context.Context, cartID kernel.UUID) error {
	if err := cartID.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	if err := db.Where("cart_id = ?", cartID.Bytes()).Delete(&CartItemDTO{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", cartID.Bytes()).Delete(&CartDTO{}).Error
}
