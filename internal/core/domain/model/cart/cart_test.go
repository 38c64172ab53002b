package cart_test

import (
	"testing"

	"fooddelivery/internal/core/domain/model/cart"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_OrderItems(t *testing.T) {
	price, _ := kernel.NewMoneyFromCents(1250)

	t.Run("should snapshot name, quantity and price", func(t *testing.T) {
		menuItemID := kernel.NewUUID()
		c, err := cart.RestoreCart(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), []cart.Item{
			{MenuItemID: menuItemID, Name: "Margherita", Quantity: 2, Price: price},
		})
		require.NoError(t, err)

		items, err := c.OrderItems()

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.True(t, items[0].MenuItemID().IsEqual(menuItemID))
		assert.Equal(t, "Margherita", items[0].Name())
		assert.Equal(t, 2, items[0].Quantity())
		assert.Equal(t, price, items[0].Price())
	})

	t.Run("should report empty cart", func(t *testing.T) {
		c, err := cart.RestoreCart(kernel.NewUUID(), kernel.NewUUID(), kernel.UUID{}, nil)
		require.NoError(t, err)

		_, err = c.OrderItems()

		assert.ErrorIs(t, err, cart.ErrEmptyCart)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject invalid lines", func(t *testing.T) {
		c, err := cart.RestoreCart(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), []cart.Item{
			{MenuItemID: kernel.NewUUID(), Name: "Cola", Quantity: 0, Price: price},
		})
		require.NoError(t, err)

		_, err = c.OrderItems()

		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should require restaurant when items exist", func(t *testing.T) {
		_, err := cart.RestoreCart(kernel.NewUUID(), kernel.NewUUID(), kernel.UUID{}, []cart.Item{
			{MenuItemID: kernel.NewUUID(), Name: "Cola", Quantity: 1, Price: price},
		})

		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}
