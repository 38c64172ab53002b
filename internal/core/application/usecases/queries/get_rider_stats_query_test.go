package queries

import (
	"testing"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRiderStats(t *testing.T) {
	riderID := kernel.NewUUID()

	stats, err := buildRiderStats(riderID, riderCounters{
		Total:         3,
		Delivered:     2,
		Active:        1,
		EarningsTotal: 8001,
		EarningsToday: 4000,
		EarningsMonth: 8001,
	})

	require.NoError(t, err)
	assert.True(t, stats.RiderID.IsEqual(riderID))
	assert.Equal(t, int64(3), stats.TotalOrders)
	assert.Equal(t, int64(1), stats.ActiveOrders)
	assert.InDelta(t, 66.67, stats.CompletionRate, 0.0001)
	assert.Equal(t, int64(8001), stats.TotalEarnings.Cents())
	assert.Equal(t, int64(4000), stats.TodayEarnings.Cents())
	assert.Equal(t, int64(4001), stats.AverageEarning.Cents())
}

func TestBuildRiderStats_NoOrders(t *testing.T) {
	stats, err := buildRiderStats(kernel.NewUUID(), riderCounters{})

	require.NoError(t, err)
	assert.Zero(t, stats.CompletionRate)
	assert.True(t, stats.AverageEarning.IsZero())
	assert.True(t, stats.TotalEarnings.IsZero())
}

func TestBuildRiderStats_NothingDeliveredYet(t *testing.T) {
	stats, err := buildRiderStats(kernel.NewUUID(), riderCounters{Total: 2, Active: 1})

	require.NoError(t, err)
	assert.Zero(t, stats.CompletionRate)
	assert.True(t, stats.AverageEarning.IsZero())
}

func TestNewGetRiderStatsQuery_OwnStats(t *testing.T) {
	riderID := kernel.NewUUID()

	q, err := NewGetRiderStatsQuery(riderID, mustActor(t, riderID, order.RoleRider))

	require.NoError(t, err)
	assert.NoError(t, q.Validate())
	assert.True(t, q.RiderID().IsEqual(riderID))
}

func TestNewGetRiderStatsQuery_OtherRider_Forbidden(t *testing.T) {
	_, err := NewGetRiderStatsQuery(kernel.NewUUID(), mustActor(t, kernel.NewUUID(), order.RoleRider))

	assert.ErrorIs(t, err, errs.ErrForbidden)
}

func TestNewGetRiderStatsQuery_NotRider_Forbidden(t *testing.T) {
	id := kernel.NewUUID()

	_, err := NewGetRiderStatsQuery(id, mustActor(t, id, order.RoleCustomer))

	assert.ErrorIs(t, err, errs.ErrForbidden)
}
