package postgres_test

import (
	"context"
	"time"

	postgres_adapter "fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/adapters/out/postgres/notificationrepo"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
)

type orderFactory struct {
	factory *postgres_adapter.GormUnitOfWorkFactory
}

func (f orderFactory) Create() commands.OrderUoW { return f.factory.Create() }

func (suite *UnitOfWorkIntegrationTestSuite) TestTrackOrder_TimelineAndAccess() {
	ctx := context.Background()
	customerID, ownerID := kernel.NewUUID(), kernel.NewUUID()
	restaurantID, addressID := suite.seedRestaurant(ownerID, true), suite.seedAddress(customerID)
	suite.seedCart(customerID, restaurantID)

	fee, _ := kernel.NewMoneyFromCents(commands.DefaultDeliveryFeeCents)
	placeCmd, err := commands.NewPlaceOrderCommand(customerID, addressID)
	suite.Require().NoError(err)
	placed, err := commands.NewPlaceOrderCommandHandler(placeOrderFactory{suite.factory}, fee).Handle(ctx, placeCmd)
	suite.Require().NoError(err)

	owner, _ := order.NewActor(ownerID, order.RoleRestaurantOwner)
	confirmCmd, err := commands.NewTransitionOrderStatusCommand(placed.ID(), owner, order.Confirmed, "")
	suite.Require().NoError(err)
	_, err = commands.NewTransitionOrderStatusCommandHandler(orderFactory{suite.factory}).Handle(ctx, confirmCmd)
	suite.Require().NoError(err)

	handler := queries.NewTrackOrderQueryHandler(suite.db)
	customer, _ := order.NewActor(customerID, order.RoleCustomer)
	query, err := queries.NewTrackOrderQuery(placed.ID(), customer)
	suite.Require().NoError(err)

	tracked, err := handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, tracked.Status)
	suite.Equal("Luigi's", tracked.RestaurantName)
	suite.Len(tracked.Items, 2)
	suite.Equal(int64(7500), tracked.Total.Cents())
	suite.Require().Len(tracked.History, 2)
	suite.Equal(order.Pending, tracked.History[1].From)
	suite.Equal(order.RoleRestaurantOwner, tracked.History[1].ActorRole)
	suite.Require().Len(tracked.Timeline, 6)
	suite.True(tracked.Timeline[0].Reached)
	suite.True(tracked.Timeline[1].Current)
	suite.False(tracked.Timeline[2].Reached)

	stranger, _ := order.NewActor(kernel.NewUUID(), order.RoleCustomer)
	strangerQuery, err := queries.NewTrackOrderQuery(placed.ID(), stranger)
	suite.Require().NoError(err)
	_, err = handler.Handle(ctx, strangerQuery)
	suite.ErrorIs(err, errs.ErrForbidden)

	missingQuery, err := queries.NewTrackOrderQuery(kernel.NewUUID(), customer)
	suite.Require().NoError(err)
	_, err = handler.Handle(ctx, missingQuery)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestGetRiderStats_Aggregates() {
	ctx := context.Background()
	riderID := kernel.NewUUID()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	orders := []*order.Order{suite.newOrder(1), suite.newOrder(2), suite.newOrder(3), suite.newOrder(4)}
	for _, o := range orders {
		suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	}
	suite.Require().NoError(uow.Commit(ctx))

	deliveredAt := time.Now().UTC()
	for _, o := range orders[:2] {
		suite.Require().NoError(suite.db.Exec(
			`UPDATE orders SET rider_id = ?, status = ?, rider_earning_cents = 4000, delivered_at = ? WHERE id = ?`,
			riderID.Bytes(), string(order.Delivered), deliveredAt, o.ID().Bytes()).Error)
	}
	suite.Require().NoError(suite.db.Exec(`UPDATE orders SET rider_id = ?, status = ? WHERE id = ?`,
		riderID.Bytes(), string(order.OutForDelivery), orders[2].ID().Bytes()).Error)

	rider, _ := order.NewActor(riderID, order.RoleRider)
	query, err := queries.NewGetRiderStatsQuery(riderID, rider)
	suite.Require().NoError(err)

	stats, err := queries.NewGetRiderStatsQueryHandler(suite.db).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal(int64(3), stats.TotalOrders)
	suite.Equal(int64(2), stats.DeliveredOrders)
	suite.Equal(int64(1), stats.ActiveOrders)
	suite.InDelta(66.67, stats.CompletionRate, 0.0001)
	suite.Equal(int64(8000), stats.TotalEarnings.Cents())
	suite.Equal(int64(8000), stats.MonthEarnings.Cents())
	suite.Equal(int64(4000), stats.AverageEarning.Cents())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestListNotifications_UnreadFilterAndCount() {
	ctx := context.Background()
	repo := notificationrepo.NewGormNotificationRepository(suite.db)
	userID := kernel.NewUUID()
	read, unread := suite.newNotification(userID), suite.newNotification(userID)
	_, err := repo.Add(ctx, read)
	suite.Require().NoError(err)
	_, err = repo.Add(ctx, unread)
	suite.Require().NoError(err)
	_, err = repo.Add(ctx, suite.newNotification(kernel.NewUUID()))
	suite.Require().NoError(err)
	suite.Require().NoError(read.MarkRead(userID, time.Now().UTC()))
	suite.Require().NoError(repo.UpdateReadState(ctx, read))

	handler := queries.NewListNotificationsQueryHandler(suite.db)

	all, err := queries.NewListNotificationsQuery(userID, false, 0)
	suite.Require().NoError(err)
	page, err := handler.Handle(ctx, all)
	suite.Require().NoError(err)
	suite.Len(page.Notifications, 2)
	suite.Equal(int64(1), page.UnreadCount)

	unreadOnly, err := queries.NewListNotificationsQuery(userID, true, 0)
	suite.Require().NoError(err)
	page, err = handler.Handle(ctx, unreadOnly)
	suite.Require().NoError(err)
	suite.Require().Len(page.Notifications, 1)
	suite.True(page.Notifications[0].ID.IsEqual(unread.ID()))
	suite.Equal("ORD-20240102-001", page.Notifications[0].Payload.OrderNumber)
}
