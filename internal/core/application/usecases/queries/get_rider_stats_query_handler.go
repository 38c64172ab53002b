package queries

import (
	"context"
	"math"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GetRiderStatsQueryHandler aggregates a rider's orders in a single pass over
// the orders table. Earnings only count delivered orders.
type GetRiderStatsQueryHandler struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGetRiderStatsQueryHandler(db *gorm.DB) GetRiderStatsQueryHandler {
	return GetRiderStatsQueryHandler{db: db, now: time.Now}
}

// riderCounters is the raw aggregate row.
type riderCounters struct {
	Total         int64
	Delivered     int64
	Active        int64
	EarningsTotal int64
	EarningsToday int64
	EarningsMonth int64
}

// Handle returns zero counters for a rider without orders.
func (h GetRiderStatsQueryHandler) Handle(ctx context.Context, query GetRiderStatsQuery) (*GetRiderStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	now := h.now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	active := make([]string, 0, 2)
	for _, s := range order.ActiveDeliveryStatuses() {
		active = append(active, s.String())
	}

	var counters riderCounters
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = ?) AS delivered,
			COUNT(*) FILTER (WHERE status = ANY(?)) AS active,
			COALESCE(SUM(rider_earning_cents) FILTER (WHERE status = ?), 0) AS earnings_total,
			COALESCE(SUM(rider_earning_cents) FILTER (WHERE status = ? AND delivered_at >= ?), 0) AS earnings_today,
			COALESCE(SUM(rider_earning_cents) FILTER (WHERE status = ? AND delivered_at >= ?), 0) AS earnings_month
		FROM orders
		WHERE rider_id = ?
	`,
		order.Delivered.String(),
		pq.Array(active),
		order.Delivered.String(),
		order.Delivered.String(), dayStart,
		order.Delivered.String(), monthStart,
		query.RiderID().Bytes(),
	).Scan(&counters).Error
	if err != nil {
		return nil, err
	}

	return buildRiderStats(query.RiderID(), counters)
}

func buildRiderStats(riderID kernel.UUID, c riderCounters) (*GetRiderStatsQueryResponse, error) {
	resp := &GetRiderStatsQueryResponse{
		RiderID:         riderID,
		TotalOrders:     c.Total,
		DeliveredOrders: c.Delivered,
		ActiveOrders:    c.Active,
	}
	if c.Total > 0 {
		resp.CompletionRate = math.Round(float64(c.Delivered)/float64(c.Total)*10000) / 100
	}

	var err error
	if resp.TotalEarnings, err = kernel.NewMoneyFromCents(c.EarningsTotal); err != nil {
		return nil, err
	}
	if resp.TodayEarnings, err = kernel.NewMoneyFromCents(c.EarningsToday); err != nil {
		return nil, err
	}
	if resp.MonthEarnings, err = kernel.NewMoneyFromCents(c.EarningsMonth); err != nil {
		return nil, err
	}
	resp.AverageEarning = kernel.ZeroMoney()
	if c.Delivered > 0 {
		avg := int64(math.Round(float64(c.EarningsTotal) / float64(c.Delivered)))
		if resp.AverageEarning, err = kernel.NewMoneyFromCents(avg); err != nil {
			return nil, err
		}
	}
	return resp, nil
}
