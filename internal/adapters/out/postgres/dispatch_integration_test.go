package postgres_test

import (
	"context"
	"errors"
	"sync"

	postgres_adapter "fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/adapters/out/postgres/orderrepo"
	"fooddelivery/internal/adapters/out/postgres/riderrepo"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
)

type dispatchFactory struct {
	factory *postgres_adapter.GormUnitOfWorkFactory
}

func (f dispatchFactory) Create() commands.DispatchUoW { return f.factory.Create() }

func (suite *UnitOfWorkIntegrationTestSuite) TestAutoAssign_ConcurrentOrdersShareOneRider() {
	ctx := context.Background()
	riderID := kernel.NewUUID()
	suite.Require().NoError(suite.db.Create(&riderrepo.RiderDTO{ID: riderID.Bytes(), Name: "Ada", IsActive: true}).Error)

	const orders = 4
	cmds := make([]commands.AutoAssignRiderCommand, 0, orders)
	for i := range orders {
		o := suite.seedReadyOrder(int64(i + 1))
		cmd, err := commands.NewAutoAssignRiderCommand(o.ID())
		suite.Require().NoError(err)
		cmds = append(cmds, cmd)
	}

	dispatcher, err := services.NewRiderDispatcher(services.DefaultMaxActiveOrdersPerRider)
	suite.Require().NoError(err)
	handler := commands.NewAutoAssignRiderCommandHandler(dispatchFactory{suite.factory}, dispatcher, commands.DefaultCandidatePoolSize)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results []commands.AssignmentResult
		failed  error
	)
	for _, cmd := range cmds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := handler.Handle(ctx, cmd)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed = errors.Join(failed, err)
				return
			}
			results = append(results, result)
		}()
	}
	wg.Wait()

	suite.Require().NoError(failed)
	suite.Require().Len(results, orders)

	assigned, declined := 0, 0
	for _, result := range results {
		switch result.Outcome {
		case commands.AssignmentAssigned:
			assigned++
			suite.Require().NotNil(result.RiderID)
			suite.True(result.RiderID.IsEqual(riderID))
		case commands.AssignmentDeclined:
			declined++
			suite.Equal(services.ErrNoRidersAvailable.Resource, result.Reason)
		default:
			suite.Failf("unexpected outcome", "%s for order %s", result.Outcome, result.OrderID)
		}
	}
	suite.Equal(1, assigned)
	suite.Equal(orders-1, declined)

	var held int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).
		Where("rider_id = ?", riderID.Bytes()).Count(&held).Error)
	suite.Equal(int64(1), held)
}

// seedReadyOrder stores an unassigned order already moved to ready.
func (suite *UnitOfWorkIntegrationTestSuite) seedReadyOrder(sequence int64) *order.Order {
	ctx := context.Background()
	o := suite.newOrder(sequence)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(suite.db.Exec(`UPDATE orders SET status = ? WHERE id = ?`,
		string(order.Ready), o.ID().Bytes()).Error)
	return o
}
