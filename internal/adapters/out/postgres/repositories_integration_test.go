package postgres_test

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/adapters/out/postgres/notificationrepo"
	"fooddelivery/internal/adapters/out/postgres/outboxrepo"
	"fooddelivery/internal/adapters/out/postgres/sequencerepo"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/notification"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

func (suite *UnitOfWorkIntegrationTestSuite) TestOrderSequence_PerDayCounter() {
	ctx := context.Background()
	seq := sequencerepo.NewGormOrderSequence(suite.db)
	day := time.Date(2024, 1, 2, 23, 30, 0, 0, time.UTC)

	first, err := seq.Next(ctx, day)
	suite.Require().NoError(err)
	second, err := seq.Next(ctx, day.Add(-time.Hour))
	suite.Require().NoError(err)
	nextDay, err := seq.Next(ctx, day.Add(time.Hour))
	suite.Require().NoError(err)

	suite.Equal(int64(1), first)
	suite.Equal(int64(2), second)
	suite.Equal(int64(1), nextDay)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestNotificationRepository_AddIsIdempotent() {
	ctx := context.Background()
	repo := notificationrepo.NewGormNotificationRepository(suite.db)
	userID := kernel.NewUUID()
	n := suite.newNotification(userID)

	created, err := repo.Add(ctx, n)
	suite.Require().NoError(err)
	suite.True(created)

	created, err = repo.Add(ctx, n)
	suite.Require().NoError(err)
	suite.False(created)

	got, err := repo.Get(ctx, n.ID())
	suite.Require().NoError(err)
	suite.Equal(n.Title(), got.Title())
	suite.Equal("ORD-20240102-001", got.Payload().OrderNumber)
	suite.Equal(order.Confirmed, got.Payload().Status)
	suite.False(got.IsRead())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestNotificationRepository_ReadState() {
	ctx := context.Background()
	repo := notificationrepo.NewGormNotificationRepository(suite.db)
	userID := kernel.NewUUID()
	first, second, foreign := suite.newNotification(userID), suite.newNotification(userID), suite.newNotification(kernel.NewUUID())
	for _, n := range []*notification.Notification{first, second, foreign} {
		_, err := repo.Add(ctx, n)
		suite.Require().NoError(err)
	}

	suite.Require().NoError(first.MarkRead(userID, time.Now().UTC()))
	suite.Require().NoError(repo.UpdateReadState(ctx, first))
	got, _ := repo.Get(ctx, first.ID())
	suite.True(got.IsRead())
	suite.NotNil(got.ReadAt())

	changed, err := repo.MarkAllRead(ctx, userID, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Equal(int64(1), changed)

	untouched, _ := repo.Get(ctx, foreign.ID())
	suite.False(untouched.IsRead())

	_, err = repo.Get(ctx, kernel.NewUUID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOutbox_FetchMarkAndRetry() {
	ctx := context.Background()
	outbox := outboxrepo.NewGormOutboxTx(suite.db)
	o := suite.newOrder(1)
	suite.Require().NoError(outboxrepo.NewGormOutboxRepository(suite.db).Add(ctx, o.DomainEvents()))

	var fetched []ports.OutboxMessage
	err := outbox.WithinTx(ctx, func(ctx context.Context, repo ports.OutboxRepository) error {
		var fetchErr error
		fetched, fetchErr = repo.FetchPending(ctx, 10, 2)
		if fetchErr != nil {
			return fetchErr
		}
		return repo.MarkFailed(ctx, fetched[0].ID, errors.New("broker down"))
	})
	suite.Require().NoError(err)
	suite.Require().Len(fetched, 1)
	suite.Equal(order.EventTypePlaced, fetched[0].EventType)

	decoded, err := order.DecodeEvent(fetched[0].EventType, fetched[0].Payload)
	suite.Require().NoError(err)
	suite.True(decoded.AggregateID().IsEqual(o.ID()))

	err = outbox.WithinTx(ctx, func(ctx context.Context, repo ports.OutboxRepository) error {
		retry, fetchErr := repo.FetchPending(ctx, 10, 2)
		suite.Require().NoError(fetchErr)
		suite.Require().Len(retry, 1)
		suite.Equal(1, retry[0].Attempts)
		return repo.MarkProcessed(ctx, retry[0].ID, time.Now().UTC())
	})
	suite.Require().NoError(err)

	err = outbox.WithinTx(ctx, func(ctx context.Context, repo ports.OutboxRepository) error {
		rest, fetchErr := repo.FetchPending(ctx, 10, 2)
		suite.Empty(rest)
		return fetchErr
	})
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOutbox_ConcurrentRelaysSkipLockedRows() {
	ctx := context.Background()
	o := suite.newOrder(1)
	suite.Require().NoError(outboxrepo.NewGormOutboxRepository(suite.db).Add(ctx, o.DomainEvents()))
	outbox := outboxrepo.NewGormOutboxTx(suite.db)

	err := outbox.WithinTx(ctx, func(ctx context.Context, repo ports.OutboxRepository) error {
		locked, fetchErr := repo.FetchPending(ctx, 10, 5)
		suite.Require().NoError(fetchErr)
		suite.Require().Len(locked, 1)

		return outbox.WithinTx(ctx, func(ctx context.Context, other ports.OutboxRepository) error {
			seen, otherErr := other.FetchPending(ctx, 10, 5)
			suite.Empty(seen, "A row held by one relay is invisible to another")
			return otherErr
		})
	})
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) newNotification(userID kernel.UUID) *notification.Notification {
	n, err := notification.NewNotification(
		kernel.NewUUID(), userID, order.RoleCustomer, notification.TypeOrderConfirmed,
		"Order confirmed", "Your order ORD-20240102-001 was confirmed",
		notification.Payload{
			OrderID: kernel.NewUUID(), RestaurantID: kernel.NewUUID(), OrderNumber: "ORD-20240102-001", Status: order.Confirmed,
		},
		time.Now().UTC(),
	)
	suite.Require().NoError(err)
	return n
}
