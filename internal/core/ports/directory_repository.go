package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/address"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/restaurant"
)

// RestaurantRepository reads restaurants managed by the catalog surface.
type RestaurantRepository interface {
	Get(ctx context.Context, id kernel.UUID) (*restaurant.Restaurant, error)
}

// AddressRepository reads addresses managed by the profile surface.
type AddressRepository interface {
	Get(ctx context.Context, id kernel.UUID) (*address.Address, error)
}
