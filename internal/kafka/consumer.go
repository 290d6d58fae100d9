package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Domenick1991/tablebook/config"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// EventHandler processes one decoded booking event.
type EventHandler func(ctx context.Context, event BookingEvent) error

type Consumer struct {
	reader *kafka.Reader
	logger *zap.Logger
}

func NewConsumer(cfg config.KafkaConfig, logger *zap.Logger) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           cfg.Brokers,
			GroupID:           cfg.GroupID,
			Topic:             cfg.NotificationsTopic,
			MinBytes:          cfg.MinBytes,
			MaxBytes:          cfg.MaxBytes,
			CommitInterval:    time.Duration(cfg.CommitIntervalSeconds) * time.Second,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
		logger: logger,
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume reads booking events until the context is canceled or the handler
// fails. A payload that does not decode is logged and skipped; poison
// messages must not wedge the notification stream.
func (c *Consumer) Consume(ctx context.Context, handler EventHandler) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		if err := c.handleMessage(ctx, msg.Value, handler); err != nil {
			return err
		}
	}
}

func (c *Consumer) handleMessage(ctx context.Context, payload []byte, handler EventHandler) error {
	var event BookingEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		c.logger.Warn("skipping malformed booking event", zap.Error(err))
		return nil
	}
	return handler(ctx, event)
}
