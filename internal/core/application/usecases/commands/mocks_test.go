package commands_test

import (
	"context"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/address"
	"fooddelivery/internal/core/domain/model/cart"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/notification"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/core/domain/model/rider"
	"fooddelivery/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) UpdateIfStatus(ctx context.Context, o *order.Order, expected order.Status) error {
	return m.Called(ctx, o, expected).Error(0)
}

func (m *MockOrderRepository) UpdateIfUnassigned(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByCustomer(ctx context.Context, id kernel.UUID, f ports.OrderFilter) ([]*order.Order, error) {
	args := m.Called(ctx, id, f)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByRestaurant(ctx context.Context, id kernel.UUID, f ports.OrderFilter) ([]*order.Order, error) {
	args := m.Called(ctx, id, f)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByRider(ctx context.Context, id kernel.UUID, f ports.OrderFilter) ([]*order.Order, error) {
	args := m.Called(ctx, id, f)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) CountByRiderAndStatuses(ctx context.Context, id kernel.UUID, s []order.Status) (int, error) {
	args := m.Called(ctx, id, s)
	return args.Int(0), args.Error(1)
}

func (m *MockOrderRepository) FindOldestUnassignedReady(ctx context.Context, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockCartRepository struct{ mock.Mock }

func (m *MockCartRepository) GetByUser(ctx context.Context, userID kernel.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartRepository) Delete(ctx context.Context, cartID kernel.UUID) error {
	return m.Called(ctx, cartID).Error(0)
}

type MockRiderRepository struct{ mock.Mock }

func (m *MockRiderRepository) Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rider.Rider), args.Error(1)
}

func (m *MockRiderRepository) FindAvailable(ctx context.Context, maxActive, limit int) ([]rider.Candidate, error) {
	args := m.Called(ctx, maxActive, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rider.Candidate), args.Error(1)
}

func (m *MockRiderRepository) LockCandidate(ctx context.Context, riderID kernel.UUID) (rider.Candidate, error) {
	args := m.Called(ctx, riderID)
	return args.Get(0).(rider.Candidate), args.Error(1)
}

type MockRestaurantRepository struct{ mock.Mock }

func (m *MockRestaurantRepository) Get(ctx context.Context, id kernel.UUID) (*restaurant.Restaurant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*restaurant.Restaurant), args.Error(1)
}

type MockAddressRepository struct{ mock.Mock }

func (m *MockAddressRepository) Get(ctx context.Context, id kernel.UUID) (*address.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*address.Address), args.Error(1)
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) Add(ctx context.Context, n *notification.Notification) (bool, error) {
	args := m.Called(ctx, n)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotificationRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) UpdateReadState(ctx context.Context, n *notification.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID kernel.UUID, now time.Time) (int64, error) {
	args := m.Called(ctx, userID, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockOrderSequence struct{ mock.Mock }

func (m *MockOrderSequence) Next(ctx context.Context, day time.Time) (int64, error) {
	args := m.Called(ctx, day)
	return args.Get(0).(int64), args.Error(1)
}

type MockDeliveryChannel struct{ mock.Mock }

func (m *MockDeliveryChannel) PushToUser(ctx context.Context, userID kernel.UUID, event string, payload any) error {
	return m.Called(ctx, userID, event, payload).Error(0)
}

// MockUoW satisfies every unit of work flavour used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) CartRepository() ports.CartRepository {
	return m.Called().Get(0).(ports.CartRepository)
}

func (m *MockUoW) RiderRepository() ports.RiderRepository {
	return m.Called().Get(0).(ports.RiderRepository)
}

func (m *MockUoW) RestaurantRepository() ports.RestaurantRepository {
	return m.Called().Get(0).(ports.RestaurantRepository)
}

func (m *MockUoW) AddressRepository() ports.AddressRepository {
	return m.Called().Get(0).(ports.AddressRepository)
}

func (m *MockUoW) NotificationRepository() ports.NotificationRepository {
	return m.Called().Get(0).(ports.NotificationRepository)
}

func (m *MockUoW) OrderSequence() ports.OrderSequence {
	return m.Called().Get(0).(ports.OrderSequence)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) uow() *MockUoW { return m.Called().Get(0).(*MockUoW) }

type placeOrderFactory struct{ *MockUoWFactory }

func (f placeOrderFactory) Create() commands.PlaceOrderUoW { return f.uow() }

type orderFactory struct{ *MockUoWFactory }

func (f orderFactory) Create() commands.OrderUoW { return f.uow() }

type dispatchFactory struct{ *MockUoWFactory }

func (f dispatchFactory) Create() commands.DispatchUoW { return f.uow() }

type notificationFactory struct{ *MockUoWFactory }

func (f notificationFactory) Create() commands.NotificationUoW { return f.uow() }

// fixtures

var fixedNow = time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)

func mustMoney(cents int64) kernel.Money {
	m, err := kernel.NewMoneyFromCents(cents)
	if err != nil {
		panic(err)
	}
	return m
}

func mustActor(id kernel.UUID, role order.Role) order.Actor {
	a, err := order.NewActor(id, role)
	if err != nil {
		panic(err)
	}
	return a
}

func mustRestaurant(id, ownerID kernel.UUID, open bool) *restaurant.Restaurant {
	r, err := restaurant.RestoreRestaurant(id, ownerID, "Luigi's", true, open)
	if err != nil {
		panic(err)
	}
	return r
}

func mustCandidate(id kernel.UUID, load int) rider.Candidate {
	c, err := rider.NewCandidate(id, load)
	if err != nil {
		panic(err)
	}
	return c
}

type orderFixture struct {
	customerID   kernel.UUID
	restaurantID kernel.UUID
	riderID      *kernel.UUID
	status       order.Status
	createdAt    time.Time
}

func (f orderFixture) build() *order.Order {
	number, _ := order.NewNumber(fixedNow, 1)
	customerID := f.customerID
	if customerID.IsZero() {
		customerID = kernel.NewUUID()
	}
	restaurantID := f.restaurantID
	if restaurantID.IsZero() {
		restaurantID = kernel.NewUUID()
	}
	o, err := order.RestoreOrder(order.Snapshot{
		ID:            kernel.NewUUID(),
		Number:        number,
		CustomerID:    customerID,
		RestaurantID:  restaurantID,
		AddressID:     kernel.NewUUID(),
		RiderID:       f.riderID,
		Status:        f.status,
		Subtotal:      mustMoney(2500),
		DeliveryFee:   mustMoney(5000),
		Total:         mustMoney(7500),
		PaymentStatus: order.PaymentPending,
		CreatedAt:     f.createdAt,
		UpdatedAt:     f.createdAt,
	})
	if err != nil {
		panic(err)
	}
	return o
}
