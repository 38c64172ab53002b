// Package redispush implements the real-time delivery channel on Redis
// pub/sub. Every user has one channel; any API instance holding the user's
// stream relays what is published there.
package redispush

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/redis/go-redis/v9"
)

const (
	channelPrefix = "notifications:user:"

	// DefaultPublishTimeout bounds one push so a slow Redis never holds up fanout.
	DefaultPublishTimeout = 2 * time.Second
)

// Envelope is what travels over the user's channel.
type Envelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// ChannelName returns the pub/sub channel of a user.
func ChannelName(userID kernel.UUID) string {
	return channelPrefix + userID.String()
}

// RedisDeliveryChannel implements ports.DeliveryChannel.
type RedisDeliveryChannel struct {
	client  *redis.Client
	timeout time.Duration
}

// NewClient connects to Redis at addr.
func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  DefaultPublishTimeout,
		ReadTimeout:  DefaultPublishTimeout,
		WriteTimeout: DefaultPublishTimeout,
	})
}

func NewRedisDeliveryChannel(client *redis.Client, timeout time.Duration) *RedisDeliveryChannel {
	if timeout <= 0 {
		timeout = DefaultPublishTimeout
	}
	return &RedisDeliveryChannel{client: client, timeout: timeout}
}

// PushToUser publishes event to the user's channel. Nobody listening is not an error.
func (c *RedisDeliveryChannel) PushToUser(ctx context.Context, userID kernel.UUID, event string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", event, err)
	}
	msg, err := json.Marshal(Envelope{Event: event, Payload: body})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	if err = c.client.Publish(ctx, ChannelName(userID), msg).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", ChannelName(userID), err)
	}
	return nil
}

// Subscribe streams the envelopes pushed to userID until ctx is done or the
// returned close function is called. Undecodable messages are dropped.
func (c *RedisDeliveryChannel) Subscribe(ctx context.Context, userID kernel.UUID) (<-chan Envelope, func() error, error) {
	sub := c.client.Subscribe(ctx, ChannelName(userID))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, fmt.Errorf("subscribe to %s: %w", ChannelName(userID), err)
	}

	out := make(chan Envelope)
	go func() {
		defer close(out)
		messages := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-messages:
				if !ok {
					return
				}
				var env Envelope
				if err := json.Unmarshal([]byte(m.Payload), &env); err != nil {
					continue
				}
				select {
				case out <- env:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, sub.Close, nil
}

// Ping checks the connection, for readiness.
func (c *RedisDeliveryChannel) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
