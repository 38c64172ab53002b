// Package cartrepo reads and deletes shopping carts for order placement.
// Carts are filled by the menu surface; the order core only converts them.
package cartrepo

import (
	"fooddelivery/internal/core/domain/model/cart"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CartDTO represents the database structure for a user's cart.
type CartDTO struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex"`
	RestaurantID *uuid.UUID    `gorm:"type:uuid"`
	Items        []CartItemDTO `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for carts.
func (CartDTO) TableName() string {
	return "carts"
}

// CartItemDTO stores one cart line with the name and price captured when it was added.
type CartItemDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CartID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Position   int       `gorm:"not null"`
	MenuItemID uuid.UUID `gorm:"type:uuid;not null"`
	ItemName   string    `gorm:"type:varchar(255);not null"`
	Quantity   int       `gorm:"not null"`
	PriceCents int64     `gorm:"not null"`
}

// TableName specifies the database table name for cart lines.
func (CartItemDTO) TableName() string {
	return "cart_items"
}

func toDomain(dto CartDTO) (*cart.Cart, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	var restaurantID kernel.UUID
	if dto.RestaurantID != nil {
		restaurantID, err = kernel.UUIDFromBytes((*dto.RestaurantID)[:])
		if err != nil {
			return nil, err
		}
	}

	items := make([]cart.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		menuItemID, idErr := kernel.UUIDFromBytes(itemDTO.MenuItemID[:])
		if idErr != nil {
			return nil, idErr
		}
		price, priceErr := kernel.NewMoneyFromCents(itemDTO.PriceCents)
		if priceErr != nil {
			return nil, priceErr
		}
		items = append(items, cart.Item{
			MenuItemID: menuItemID,
			Name:       itemDTO.ItemName,
			Quantity:   itemDTO.Quantity,
			Price:      price,
		})
	}

	return cart.RestoreCart(id, userID, restaurantID, items)
}
