package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/cart"
	"fooddelivery/internal/core/domain/model/kernel"
)

// CartRepository reads and removes carts. Carts are filled by the menu surface.
type CartRepository interface {
	// GetByUser returns the user's cart locked for update, or an empty cart when the user has none.
	GetByUser(ctx context.Context, userID kernel.UUID) (*cart.Cart, error)

	// Delete removes the cart and its items.
	Delete(ctx context.Context, cartID kernel.UUID) error
}
