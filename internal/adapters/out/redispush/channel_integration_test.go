package redispush_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"fooddelivery/internal/adapters/out/redispush"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// RedisChannelIntegrationTestSuite runs the delivery channel against a real Redis.
type RedisChannelIntegrationTestSuite struct {
	suite.Suite
	container testcontainers.Container
	channel   *redispush.RedisDeliveryChannel
}

func (suite *RedisChannelIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	suite.Require().NoError(err)
	suite.container = container

	host, err := container.Host(ctx)
	suite.Require().NoError(err)
	port, err := container.MappedPort(ctx, "6379")
	suite.Require().NoError(err)

	client := redispush.NewClient(fmt.Sprintf("%s:%s", host, port.Port()), "", 0)
	suite.channel = redispush.NewRedisDeliveryChannel(client, time.Second)
	suite.Require().NoError(suite.channel.Ping(ctx))
}

func (suite *RedisChannelIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *RedisChannelIntegrationTestSuite) TestPushReachesSubscriber() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	userID, otherID := kernel.NewUUID(), kernel.NewUUID()

	messages, closeSub, err := suite.channel.Subscribe(ctx, userID)
	suite.Require().NoError(err)
	defer func() { _ = closeSub() }()

	suite.Require().NoError(suite.channel.PushToUser(ctx, otherID, "notification", map[string]string{"title": "not for you"}))
	suite.Require().NoError(suite.channel.PushToUser(ctx, userID, "notification", map[string]string{"title": "Order ready"}))

	select {
	case env := <-messages:
		suite.Equal("notification", env.Event)
		var payload map[string]string
		suite.Require().NoError(json.Unmarshal(env.Payload, &payload))
		suite.Equal("Order ready", payload["title"])
	case <-ctx.Done():
		suite.Fail("no message received")
	}
}

func (suite *RedisChannelIntegrationTestSuite) TestPushWithoutSubscriberSucceeds() {
	err := suite.channel.PushToUser(context.Background(), kernel.NewUUID(), "notification", struct{}{})
	suite.NoError(err)
}

func (suite *RedisChannelIntegrationTestSuite) TestUnencodablePayloadFails() {
	err := suite.channel.PushToUser(context.Background(), kernel.NewUUID(), "notification", make(chan int))
	suite.Error(err)
}

func TestRedisChannelIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RedisChannelIntegrationTestSuite))
}
