package http_test

import (
	"context"

	"fooddelivery/internal/adapters/out/redispush"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/notification"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
)

type MockOrderPlacer struct{ mock.Mock }

func (m *MockOrderPlacer) Handle(ctx context.Context, cmd commands.PlaceOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockStatusTransitioner struct{ mock.Mock }

func (m *MockStatusTransitioner) Handle(ctx context.Context, cmd commands.TransitionOrderStatusCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockRiderAssigner struct{ mock.Mock }

func (m *MockRiderAssigner) Handle(ctx context.Context, cmd commands.AutoAssignRiderCommand) (commands.AssignmentResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.AssignmentResult), args.Error(1)
}

type MockBacklogDrainer struct{ mock.Mock }

func (m *MockBacklogDrainer) Handle(ctx context.Context, cmd commands.DrainBacklogCommand) ([]commands.AssignmentResult, error) {
	args := m.Called(ctx, cmd)
	results, _ := args.Get(0).([]commands.AssignmentResult)
	return results, args.Error(1)
}

type MockNotificationMarker struct{ mock.Mock }

func (m *MockNotificationMarker) Handle(ctx context.Context, cmd commands.MarkNotificationReadCommand) (*notification.Notification, error) {
	args := m.Called(ctx, cmd)
	n, _ := args.Get(0).(*notification.Notification)
	return n, args.Error(1)
}

func (m *MockNotificationMarker) HandleAll(ctx context.Context, cmd commands.MarkAllNotificationsReadCommand) (int64, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(int64), args.Error(1)
}

type MockOrderTracker struct{ mock.Mock }

func (m *MockOrderTracker) Handle(ctx context.Context, query queries.TrackOrderQuery) (*queries.TrackOrderQueryResponse, error) {
	args := m.Called(ctx, query)
	r, _ := args.Get(0).(*queries.TrackOrderQueryResponse)
	return r, args.Error(1)
}

type MockOrderLister struct{ mock.Mock }

func (m *MockOrderLister) Handle(ctx context.Context, query queries.ListOrdersQuery) ([]*order.Order, error) {
	args := m.Called(ctx, query)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockRiderStatsReader struct{ mock.Mock }

func (m *MockRiderStatsReader) Handle(ctx context.Context, query queries.GetRiderStatsQuery) (*queries.GetRiderStatsQueryResponse, error) {
	args := m.Called(ctx, query)
	r, _ := args.Get(0).(*queries.GetRiderStatsQueryResponse)
	return r, args.Error(1)
}

type MockNotificationLister struct{ mock.Mock }

func (m *MockNotificationLister) Handle(ctx context.Context, query queries.ListNotificationsQuery) (*queries.ListNotificationsQueryResponse, error) {
	args := m.Called(ctx, query)
	r, _ := args.Get(0).(*queries.ListNotificationsQueryResponse)
	return r, args.Error(1)
}

type fakeSubscriber struct {
	envelopes chan redispush.Envelope
	userID    kernel.UUID
}

func (f *fakeSubscriber) Subscribe(_ context.Context, userID kernel.UUID) (<-chan redispush.Envelope, func() error, error) {
	f.userID = userID
	return f.envelopes, func() error { return nil }, nil
}
