package queries

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var (
	ErrGetRiderStatsQueryIsNotConstructed = errors.New(
		"GetRiderStatsQuery must be created via NewGetRiderStatsQuery constructor",
	)
)

// GetRiderStatsQuery asks for the delivery counters and earnings of one rider.
// Riders may only read their own statistics.
type GetRiderStatsQuery struct {
	riderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetRiderStatsQuery checks that actor is the rider the statistics belong to.
func NewGetRiderStatsQuery(riderID kernel.UUID, actor order.Actor) (GetRiderStatsQuery, error) {
	if err := errors.Join(riderID.Validate(), actor.Validate()); err != nil {
		return GetRiderStatsQuery{}, err
	}
	if actor.Role() != order.RoleRider || !actor.ID().IsEqual(riderID) {
		return GetRiderStatsQuery{}, errs.NewForbiddenError(
			fmt.Sprintf("%s %s may not read stats of rider %s", actor.Role(), actor.ID(), riderID))
	}
	return GetRiderStatsQuery{riderID: riderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRiderStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetRiderStatsQueryIsNotConstructed)
}

func (q GetRiderStatsQuery) RiderID() kernel.UUID { return q.riderID }

// GetRiderStatsQueryResponse holds the rider's counters. CompletionRate is a
// percentage rounded to two decimals; AverageEarning is per delivered order.
type GetRiderStatsQueryResponse struct {
	RiderID         kernel.UUID
	TotalOrders     int64
	DeliveredOrders int64
	ActiveOrders    int64
	CompletionRate  float64
	TotalEarnings   kernel.Money
	TodayEarnings   kernel.Money
	MonthEarnings   kernel.Money
	AverageEarning  kernel.Money
}
