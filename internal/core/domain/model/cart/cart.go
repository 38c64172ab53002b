package cart

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
)

// ErrEmptyCart is returned when an order is placed from a cart without items.
var ErrEmptyCart = errs.NewValueIsRequiredError("cart is empty")

// Item is a cart line with the menu item's name and price captured when it was added.
type Item struct {
	MenuItemID kernel.UUID
	Name       string
	Quantity   int
	Price      kernel.Money
}

// Cart is the single-restaurant shopping cart of one user. Carts are filled by
// the menu CRUD surface; the order core only reads and deletes them.
type Cart struct {
	id           kernel.UUID
	userID       kernel.UUID
	restaurantID kernel.UUID
	items        []Item
}

// RestoreCart reconstructs a cart from storage. A cart without items may carry
// a zero restaurant id.
func RestoreCart(id, userID, restaurantID kernel.UUID, items []Item) (*Cart, error) {
	if err := errors.Join(id.Validate(), userID.Validate()); err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := restaurantID.Validate(); err != nil {
			return nil, fmt.Errorf("cart with items must reference a restaurant: %w", err)
		}
	}
	return &Cart{id: id, userID: userID, restaurantID: restaurantID, items: append([]Item(nil), items...)}, nil
}

func (c *Cart) ID() kernel.UUID           { return c.id }
func (c *Cart) UserID() kernel.UUID       { return c.userID }
func (c *Cart) RestaurantID() kernel.UUID { return c.restaurantID }
func (c *Cart) Items() []Item             { return append([]Item(nil), c.items...) }
func (c *Cart) IsEmpty() bool             { return len(c.items) == 0 }

// OrderItems snapshots the cart lines into order items.
func (c *Cart) OrderItems() ([]order.Item, error) {
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}
	items := make([]order.Item, 0, len(c.items))
	var errList []error
	for _, it := range c.items {
		oi, err := order.NewItem(it.MenuItemID, it.Name, it.Quantity, it.Price)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		items = append(items, oi)
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}
	return items, nil
}
