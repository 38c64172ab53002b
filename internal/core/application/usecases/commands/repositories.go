// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"fooddelivery/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler asks only for the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	// Commit also writes the domain events of touched aggregates to the outbox.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	CartRepoFactory interface {
		CartRepository() ports.CartRepository
	}

	RiderRepoFactory interface {
		RiderRepository() ports.RiderRepository
	}

	RestaurantRepoFactory interface {
		RestaurantRepository() ports.RestaurantRepository
	}

	AddressRepoFactory interface {
		AddressRepository() ports.AddressRepository
	}

	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	SequenceFactory interface {
		OrderSequence() ports.OrderSequence
	}

	// PlaceOrderUoW spans everything the cart to order conversion reads and writes.
	PlaceOrderUoW interface {
		TxManager
		OrderRepoFactory
		CartRepoFactory
		RestaurantRepoFactory
		AddressRepoFactory
		SequenceFactory
	}

	PlaceOrderUoWFactory interface {
		Create() PlaceOrderUoW
	}

	// OrderUoW is used by status transitions, which need the restaurant owner for authorization.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		RestaurantRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// DispatchUoW coordinates order and rider rows during assignment.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().Get(ctx, orderID)
	//   candidates, err := uow.RiderRepository().FindAvailable(ctx, 1, 10)
	//   // ... lock, assign, UpdateIfUnassigned
	//
	//   err = uow.Commit(ctx)
	DispatchUoW interface {
		TxManager
		OrderRepoFactory
		RiderRepoFactory
	}

	DispatchUoWFactory interface {
		Create() DispatchUoW
	}

	// NotificationUoW persists fanout results and read-state changes.
	NotificationUoW interface {
		TxManager
		NotificationRepoFactory
		RestaurantRepoFactory
	}

	NotificationUoWFactory interface {
		Create() NotificationUoW
	}
)
