package services_test

import (
	"testing"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/rider"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(t *testing.T, load int) rider.Candidate {
	t.Helper()
	c, err := rider.NewCandidate(kernel.NewUUID(), load)
	require.NoError(t, err)
	return c
}

func readyOrder(t *testing.T, riderID *kernel.UUID) *order.Order {
	t.Helper()
	number, _ := order.NewNumber(time.Now(), 1)
	fee, _ := kernel.NewMoneyFromCents(5000)
	subtotal, _ := kernel.NewMoneyFromCents(1000)
	o, err := order.RestoreOrder(order.Snapshot{
		ID:            kernel.NewUUID(),
		Number:        number,
		CustomerID:    kernel.NewUUID(),
		RestaurantID:  kernel.NewUUID(),
		AddressID:     kernel.NewUUID(),
		RiderID:       riderID,
		Status:        order.Ready,
		Subtotal:      subtotal,
		DeliveryFee:   fee,
		Total:         subtotal.Add(fee),
		PaymentStatus: order.PaymentPending,
	})
	require.NoError(t, err)
	return o
}

func TestNewRiderDispatcher(t *testing.T) {
	_, err := services.NewRiderDispatcher(0)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestRiderDispatcher_Select(t *testing.T) {
	t.Run("should pick the least loaded rider", func(t *testing.T) {
		dispatcher, err := services.NewRiderDispatcher(3)
		require.NoError(t, err)
		a, b, c := candidate(t, 2), candidate(t, 0), candidate(t, 1)

		best, err := dispatcher.Select([]rider.Candidate{a, b, c})

		require.NoError(t, err)
		assert.True(t, best.RiderID().IsEqual(b.RiderID()))
	})

	t.Run("should keep input order on ties", func(t *testing.T) {
		dispatcher, _ := services.NewRiderDispatcher(3)
		a, b, c := candidate(t, 1), candidate(t, 0), candidate(t, 0)

		ranked := dispatcher.Rank([]rider.Candidate{a, b, c})

		require.Len(t, ranked, 3)
		assert.True(t, ranked[0].RiderID().IsEqual(b.RiderID()))
		assert.True(t, ranked[1].RiderID().IsEqual(c.RiderID()))
		assert.True(t, ranked[2].RiderID().IsEqual(a.RiderID()))
	})

	t.Run("should skip riders at capacity", func(t *testing.T) {
		dispatcher, _ := services.NewRiderDispatcher(services.DefaultMaxActiveOrdersPerRider)
		busy, free := candidate(t, 1), candidate(t, 0)

		ranked := dispatcher.Rank([]rider.Candidate{busy, free})

		require.Len(t, ranked, 1)
		assert.True(t, ranked[0].RiderID().IsEqual(free.RiderID()))
	})

	t.Run("should report no riders available", func(t *testing.T) {
		dispatcher, _ := services.NewRiderDispatcher(1)

		_, err := dispatcher.Select(nil)
		assert.ErrorIs(t, err, services.ErrNoRidersAvailable)

		_, err = dispatcher.Select([]rider.Candidate{candidate(t, 1)})
		assert.ErrorIs(t, err, services.ErrNoRidersAvailable)
		assert.ErrorIs(t, err, errs.ErrUnavailable)
	})
}

func TestRiderDispatcher_Dispatch(t *testing.T) {
	dispatcher, _ := services.NewRiderDispatcher(1)

	t.Run("should assign rider", func(t *testing.T) {
		o := readyOrder(t, nil)
		c := candidate(t, 0)

		require.NoError(t, dispatcher.Dispatch(o, c, time.Now()))

		require.NotNil(t, o.RiderID())
		assert.True(t, o.RiderID().IsEqual(c.RiderID()))
	})

	t.Run("should refuse full rider", func(t *testing.T) {
		o := readyOrder(t, nil)

		err := dispatcher.Dispatch(o, candidate(t, 1), time.Now())

		assert.ErrorIs(t, err, services.ErrNoRidersAvailable)
		assert.Nil(t, o.RiderID())
	})

	t.Run("should refuse already assigned order", func(t *testing.T) {
		riderID := kernel.NewUUID()
		o := readyOrder(t, &riderID)

		err := dispatcher.Dispatch(o, candidate(t, 0), time.Now())

		assert.ErrorIs(t, err, order.ErrRiderAlreadyAssigned)
	})

	t.Run("should refuse unconstructed order", func(t *testing.T) {
		err := dispatcher.Dispatch(&order.Order{}, candidate(t, 0), time.Now())

		assert.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
	})
}
