package cmd

import (
	"context"
	"errors"
	"log/slog"

	apihttp "fooddelivery/internal/adapters/in/http"
	kafkain "fooddelivery/internal/adapters/in/kafka"
	kafkaout "fooddelivery/internal/adapters/out/kafka"
	"fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/adapters/out/postgres/outboxrepo"
	"fooddelivery/internal/adapters/out/redispush"
	"fooddelivery/internal/core/application/eventhandlers"
	"fooddelivery/internal/core/application/outbox"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters, use cases and background workers.
type CompositionRoot struct {
	cfg         Config
	gormDB      *gorm.DB
	logger      *slog.Logger
	uowFactory  *postgres.GormUnitOfWorkFactory
	channel     *redispush.RedisDeliveryChannel
	dispatcher  services.RiderDispatcher
	deliveryFee kernel.Money

	relay          *outbox.Relay
	kafkaPublisher *kafkaout.Publisher
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, redisClient *redis.Client, logger *slog.Logger) (*CompositionRoot, error) {
	dispatcher, err := services.NewRiderDispatcher(cfg.MaxActiveOrdersPerRider)
	if err != nil {
		return nil, err
	}
	fee, err := kernel.NewMoneyFromCents(cfg.DeliveryFeeCents)
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		cfg:         cfg,
		gormDB:      gormDB,
		logger:      logger,
		channel:     redispush.NewRedisDeliveryChannel(redisClient, cfg.PushTimeout),
		dispatcher:  dispatcher,
		deliveryFee: fee,
	}
	// The relay is created last; commits made before that have nothing to wake.
	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, postgres.WithAfterCommit(func() {
		if c.relay != nil {
			c.relay.Notify()
		}
	}))
	c.relay = outbox.NewRelay(
		outboxrepo.NewGormOutboxTx(gormDB),
		c.createEventPublisher(),
		cfg.OutboxBatchSize,
		cfg.OutboxMaxAttempts,
		logger,
	)
	return c, nil
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	var f commands.PlaceOrderUoWFactory = FuncPlaceOrderUoWFactory(func() commands.PlaceOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceOrderCommandHandler(f, c.deliveryFee)
}

func (c *CompositionRoot) CreateTransitionOrderStatusCommandHandler() commands.TransitionOrderStatusCommandHandler {
	return commands.NewTransitionOrderStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAutoAssignRiderCommandHandler() commands.AutoAssignRiderCommandHandler {
	var f commands.DispatchUoWFactory = FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAutoAssignRiderCommandHandler(f, c.dispatcher, c.cfg.CandidatePoolSize)
}

func (c *CompositionRoot) CreateDrainBacklogCommandHandler() commands.DrainBacklogCommandHandler {
	return commands.NewDrainBacklogCommandHandler(c.orderUoWFactory(), c.CreateAutoAssignRiderCommandHandler())
}

func (c *CompositionRoot) CreateFanoutNotificationsCommandHandler() commands.FanoutNotificationsCommandHandler {
	return commands.NewFanoutNotificationsCommandHandler(c.notificationUoWFactory(), c.channel, c.logger)
}

func (c *CompositionRoot) CreateMarkNotificationReadCommandHandler() commands.MarkNotificationReadCommandHandler {
	return commands.NewMarkNotificationReadCommandHandler(c.notificationUoWFactory())
}

func (c *CompositionRoot) CreateTrackOrderQueryHandler() queries.TrackOrderQueryHandler {
	return queries.NewTrackOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	// Reads go through a unit of work that is never begun, i.e. straight to the pool.
	uow := c.uowFactory.Create()
	return queries.NewListOrdersQueryHandler(uow.OrderRepository(), uow.RestaurantRepository())
}

func (c *CompositionRoot) CreateGetRiderStatsQueryHandler() queries.GetRiderStatsQueryHandler {
	return queries.NewGetRiderStatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListNotificationsQueryHandler() queries.ListNotificationsQueryHandler {
	return queries.NewListNotificationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateOrderEventHandler() *eventhandlers.OrderEventHandler {
	return eventhandlers.NewOrderEventHandler(
		c.CreateFanoutNotificationsCommandHandler(),
		c.CreateAutoAssignRiderCommandHandler(),
		c.CreateDrainBacklogCommandHandler(),
		c.logger,
	)
}

// Relay returns the outbox relay shared by the commit hook and the sweep job.
func (c *CompositionRoot) Relay() *outbox.Relay {
	return c.relay
}

// CreateKafkaConsumer returns nil for the local transport.
func (c *CompositionRoot) CreateKafkaConsumer() *kafkain.Consumer {
	if c.cfg.EventTransport != TransportKafka {
		return nil
	}
	return kafkain.NewConsumer(c.cfg.KafkaBrokers, c.cfg.KafkaConsumerGroup, c.cfg.KafkaOrderTopic, c.CreateOrderEventHandler(), c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.relay, c.cfg.OutboxSweepSchedule, c.logger)
}

func (c *CompositionRoot) CreateHTTPServer() *apihttp.Server {
	return apihttp.NewServer(apihttp.Handlers{
		PlaceOrder:        c.CreatePlaceOrderCommandHandler(),
		TransitionStatus:  c.CreateTransitionOrderStatusCommandHandler(),
		AssignRider:       c.CreateAutoAssignRiderCommandHandler(),
		DrainBacklog:      c.CreateDrainBacklogCommandHandler(),
		MarkNotifications: c.CreateMarkNotificationReadCommandHandler(),
		TrackOrder:        c.CreateTrackOrderQueryHandler(),
		ListOrders:        c.CreateListOrdersQueryHandler(),
		RiderStats:        c.CreateGetRiderStatsQueryHandler(),
		ListNotifications: c.CreateListNotificationsQueryHandler(),
		Notifications:     c.channel,
	})
}

func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	return apihttp.NewRouter(c.CreateHTTPServer(), apihttp.RouterConfig{
		JWTSecret: []byte(c.cfg.JWTSecret),
		Logger:    c.logger,
		Health:    c.health,
	})
}

// Close releases the broker writer. The database and Redis are owned by main.
func (c *CompositionRoot) Close() error {
	if c.kafkaPublisher != nil {
		return c.kafkaPublisher.Close()
	}
	return nil
}

func (c *CompositionRoot) health(ctx context.Context) error {
	sqlDB, err := c.gormDB.DB()
	if err != nil {
		return err
	}
	return errors.Join(sqlDB.PingContext(ctx), c.channel.Ping(ctx))
}

func (c *CompositionRoot) createEventPublisher() ports.EventPublisher {
	if c.cfg.EventTransport == TransportKafka {
		c.kafkaPublisher = kafkaout.NewPublisher(c.cfg.KafkaBrokers, c.cfg.KafkaOrderTopic)
		return c.kafkaPublisher
	}
	return eventhandlers.NewDirectPublisher(c.CreateOrderEventHandler())
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) notificationUoWFactory() commands.NotificationUoWFactory {
	return FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
}

type FuncPlaceOrderUoWFactory func() commands.PlaceOrderUoW

func (f FuncPlaceOrderUoWFactory) Create() commands.PlaceOrderUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDispatchUoWFactory func() commands.DispatchUoW

func (f FuncDispatchUoWFactory) Create() commands.DispatchUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}
