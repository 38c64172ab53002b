// Package kafka consumes order events from Kafka and hands them to the
// in-process event handler.
package kafka

import (
	"context"
	"errors"
	"log/slog"
	"time"

	outkafka "fooddelivery/internal/adapters/out/kafka"

	"github.com/segmentio/kafka-go"
)

const defaultMaxAttempts = 5

// retryBackoff is multiplied by the attempt number between handler retries.
var retryBackoff = 200 * time.Millisecond

// MessageHandler handles one decoded event. Returning nil allows the offset to be committed.
type MessageHandler interface {
	HandleMessage(ctx context.Context, eventType string, payload []byte) error
}

// Consumer reads the order events topic in a consumer group and commits
// offsets manually after the handler accepted a message.
//
// Messages of one partition are handled one at a time, which keeps the
// events of one order in order. A message the handler keeps rejecting is
// logged and skipped after maxAttempts so it cannot block its partition.
type Consumer struct {
	reader      *kafka.Reader
	handler     MessageHandler
	maxAttempts int
	logger      *slog.Logger
}

func NewConsumer(brokers []string, group, topic string, handler MessageHandler, logger *slog.Logger) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        brokers,
			GroupID:        group,
			Topic:          topic,
			MinBytes:       1,
			MaxBytes:       10e6,
			CommitInterval: 0,
		}),
		handler:     handler,
		maxAttempts: defaultMaxAttempts,
		logger:      logger.With("component", "KafkaConsumer", "topic", topic),
	}
}

// Run consumes until ctx is done. It returns nil on shutdown and the reader
// error otherwise.
func (c *Consumer) Run(ctx context.Context) error {
	defer func() {
		_ = c.reader.Close()
	}()
	c.logger.InfoContext(ctx, "kafka consumer started")

	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				c.logger.InfoContext(context.Background(), "kafka consumer stopped")
				return nil
			}
			return err
		}

		c.process(ctx, m)

		if err = c.reader.CommitMessages(ctx, m); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.logger.ErrorContext(ctx, "commit failed", "partition", m.Partition, "offset", m.Offset, "error", err)
		}
	}
}

func (c *Consumer) process(ctx context.Context, m kafka.Message) {
	env, err := outkafka.DecodeEnvelope(m.Value)
	if err != nil {
		c.logger.ErrorContext(ctx, "dropping undecodable message", "partition", m.Partition, "offset", m.Offset, "error", err)
		return
	}

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		err = c.handler.HandleMessage(ctx, env.EventType, env.Payload)
		if err == nil {
			return
		}
		c.logger.WarnContext(ctx, "event handling failed",
			"event_id", env.EventID.String(),
			"event_type", env.EventType,
			"attempt", attempt,
			"error", err)

		select {
		case <-ctx.Done():
			return
		case <-time.After(retryBackoff * time.Duration(attempt)):
		}
	}
	c.logger.ErrorContext(ctx, "giving up on event", "event_id", env.EventID.String(), "event_type", env.EventType)
}
