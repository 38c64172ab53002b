package order

import (
	"errors"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

// Item is an immutable line of an order. Name and unit price are snapshots
// taken from the cart at placement time, so later menu edits never change
// what the customer was charged.
type Item struct {
	menuItemID kernel.UUID
	name       string
	quantity   int
	price      kernel.Money
}

// NewItem validates and builds an order line.
func NewItem(menuItemID kernel.UUID, name string, quantity int, price kernel.Money) (Item, error) {
	item := Item{}
	if err := errors.Join(
		item.setMenuItemID(menuItemID),
		item.setName(name),
		item.setQuantity(quantity),
	); err != nil {
		return Item{}, err
	}
	item.price = price
	return item, nil
}

func (i Item) MenuItemID() kernel.UUID {
	return i.menuItemID
}

func (i Item) Name() string {
	return i.name
}

func (i Item) Quantity() int {
	return i.quantity
}

func (i Item) Price() kernel.Money {
	return i.price
}

// LineTotal is quantity × unit price.
func (i Item) LineTotal() kernel.Money {
	total, err := i.price.Multiply(i.quantity)
	if err != nil {
		return kernel.ZeroMoney()
	}
	return total
}

func (i *Item) setMenuItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.menuItemID = id
	return nil
}

func (i *Item) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("itemName")
	}
	i.name = name
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	i.quantity = quantity
	return nil
}
