// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Money columns hold minor units.
type OrderDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderNumber        string     `gorm:"type:varchar(32);not null;uniqueIndex"`
	CustomerID         uuid.UUID  `gorm:"type:uuid;not null;index"`
	RestaurantID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	AddressID          uuid.UUID  `gorm:"type:uuid;not null"`
	RiderID            *uuid.UUID `gorm:"type:uuid;index"`
	Status             string     `gorm:"type:varchar(32);not null;index"`
	SubtotalCents      int64      `gorm:"not null"`
	DeliveryFeeCents   int64      `gorm:"not null"`
	TotalCents         int64      `gorm:"not null"`
	PaymentStatus      string     `gorm:"type:varchar(16);not null"`
	RiderEarningCents  *int64     `gorm:"column:rider_earning_cents"`
	DeliveredAt        *time.Time `gorm:"index"`
	CancelledAt        *time.Time
	CancellationReason string         `gorm:"type:varchar(500)"`
	CreatedAt          time.Time      `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt          time.Time      `gorm:"not null;autoUpdateTime:false"`
	Items              []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO stores one immutable order line. Position keeps the cart order.
type OrderItemDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Position   int       `gorm:"not null"`
	MenuItemID uuid.UUID `gorm:"type:uuid;not null"`
	ItemName   string    `gorm:"type:varchar(255);not null"`
	Quantity   int       `gorm:"not null"`
	PriceCents int64     `gorm:"not null"`
}

// TableName specifies the database table name for order lines.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// StatusChangeDTO is one row of the append-only status trail.
// FromStatus is NULL for the initial pending entry.
type StatusChangeDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	FromStatus *string   `gorm:"type:varchar(32)"`
	ToStatus   string    `gorm:"type:varchar(32);not null"`
	ActorID    uuid.UUID `gorm:"type:uuid;not null"`
	ActorRole  string    `gorm:"type:varchar(32);not null"`
	Reason     string    `gorm:"type:varchar(500)"`
	ChangedAt  time.Time `gorm:"not null;index"`
}

// TableName specifies the database table name for the status trail.
func (StatusChangeDTO) TableName() string {
	return "order_status_changes"
}

// fromDomain converts an order domain aggregate to its database representation,
// items included.
func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()

	var earning *int64
	if e := o.RiderEarning(); e != nil {
		cents := e.Cents()
		earning = &cents
	}

	items := make([]OrderItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, OrderItemDTO{
			ID:         uuid.New(),
			OrderID:    orderID,
			Position:   i,
			MenuItemID: item.MenuItemID().Bytes(),
			ItemName:   item.Name(),
			Quantity:   item.Quantity(),
			PriceCents: item.Price().Cents(),
		})
	}

	return OrderDTO{
		ID:                 orderID,
		OrderNumber:        o.Number().String(),
		CustomerID:         o.CustomerID().Bytes(),
		RestaurantID:       o.RestaurantID().Bytes(),
		AddressID:          o.AddressID().Bytes(),
		RiderID:            kernel.UUIDPtrToBytes(o.RiderID()),
		Status:             o.Status().String(),
		SubtotalCents:      o.Subtotal().Cents(),
		DeliveryFeeCents:   o.DeliveryFee().Cents(),
		TotalCents:         o.Total().Cents(),
		PaymentStatus:      string(o.PaymentStatus()),
		RiderEarningCents:  earning,
		DeliveredAt:        o.DeliveredAt(),
		CancelledAt:        o.CancelledAt(),
		CancellationReason: o.CancellationReason(),
		CreatedAt:          o.CreatedAt(),
		UpdatedAt:          o.UpdatedAt(),
		Items:              items,
	}
}

// statusChangeFromDomain maps the change made since load into a trail row.
func statusChangeFromDomain(orderID kernel.UUID, c order.StatusChange) StatusChangeDTO {
	var from *string
	if c.From != "" {
		s := c.From.String()
		from = &s
	}
	return StatusChangeDTO{
		ID:         uuid.New(),
		OrderID:    orderID.Bytes(),
		FromStatus: from,
		ToStatus:   c.To.String(),
		ActorID:    c.ActorID.Bytes(),
		ActorRole:  string(c.ActorRole),
		Reason:     c.Reason,
		ChangedAt:  c.At,
	}
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}
	addressID, err := kernel.UUIDFromBytes(dto.AddressID[:])
	if err != nil {
		return nil, err
	}
	riderID, err := kernel.UUIDPtrFromBytes(dto.RiderID)
	if err != nil {
		return nil, err
	}
	number, err := order.ParseNumber(dto.OrderNumber)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	subtotal, err := kernel.NewMoneyFromCents(dto.SubtotalCents)
	if err != nil {
		return nil, err
	}
	fee, err := kernel.NewMoneyFromCents(dto.DeliveryFeeCents)
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewMoneyFromCents(dto.TotalCents)
	if err != nil {
		return nil, err
	}
	var earning *kernel.Money
	if dto.RiderEarningCents != nil {
		m, moneyErr := kernel.NewMoneyFromCents(*dto.RiderEarningCents)
		if moneyErr != nil {
			return nil, moneyErr
		}
		earning = &m
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		menuItemID, idErr := kernel.UUIDFromBytes(itemDTO.MenuItemID[:])
		if idErr != nil {
			return nil, idErr
		}
		price, priceErr := kernel.NewMoneyFromCents(itemDTO.PriceCents)
		if priceErr != nil {
			return nil, priceErr
		}
		item, itemErr := order.NewItem(menuItemID, itemDTO.ItemName, itemDTO.Quantity, price)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(order.Snapshot{
		ID:                 id,
		Number:             number,
		CustomerID:         customerID,
		RestaurantID:       restaurantID,
		AddressID:          addressID,
		RiderID:            riderID,
		Status:             status,
		Items:              items,
		Subtotal:           subtotal,
		DeliveryFee:        fee,
		Total:              total,
		PaymentStatus:      order.PaymentStatus(dto.PaymentStatus),
		RiderEarning:       earning,
		DeliveredAt:        dto.DeliveredAt,
		CancelledAt:        dto.CancelledAt,
		CancellationReason: dto.CancellationReason,
		CreatedAt:          dto.CreatedAt,
		UpdatedAt:          dto.UpdatedAt,
	})
}
