package messaging

import (
	"context"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"cafe-system/internal/logger"
)

// EventHandler processes a single raw event body. Returning an error
// nacks and requeues the delivery.
type EventHandler func(ctx context.Context, routingKey string, body []byte) error

// Consumer consumes cafe events from a queue.
type Consumer struct {
	conn        *Connection
	logger      *logger.Logger
	queueName   string
	consumerTag string
	prefetch    int
}

// NewConsumer creates a new event consumer
func NewConsumer(conn *Connection, log *logger.Logger, queueName, consumerTag string, prefetch int) *Consumer {
	return &Consumer{
		conn:        conn,
		logger:      log,
		queueName:   queueName,
		consumerTag: consumerTag,
		prefetch:    prefetch,
	}
}

// StartConsuming consumes deliveries until ctx is cancelled.
func (c *Consumer) StartConsuming(ctx context.Context, handler EventHandler) error {
	if c.conn.IsClosed() {
		if err := c.conn.Reconnect(); err != nil {
			return fmt.Errorf("failed to reconnect: %w", err)
		}
	}

	if err := c.conn.Channel().Qos(c.prefetch, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	msgs, err := c.conn.Channel().Consume(
		c.queueName,   // queue
		c.consumerTag, // consumer
		false,         // auto-ack (acked manually)
		false,         // exclusive
		false,         // no-local
		false,         // no-wait
		nil,           // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("consumer_started",
		fmt.Sprintf("Started consuming from queue %s", c.queueName),
		"", map[string]interface{}{
			"queue":    c.queueName,
			"consumer": c.consumerTag,
			"prefetch": c.prefetch,
		})

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("consumer_stopped", "Consumer stopped by context", "", nil)
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				c.logger.Error("consumer_channel_closed", "Delivery channel closed, attempting to reconnect", "", nil, nil)
				if err := c.conn.Reconnect(); err != nil {
					return fmt.Errorf("failed to reconnect after channel closed: %w", err)
				}
				return c.StartConsuming(ctx, handler)
			}
			c.processDelivery(ctx, d, handler)
		}
	}
}

func (c *Consumer) processDelivery(ctx context.Context, delivery amqp091.Delivery, handler EventHandler) {
	start := time.Now()

	processingCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	err := handler(processingCtx, delivery.RoutingKey, delivery.Body)
	duration := time.Since(start)

	if err != nil {
		c.logger.Error("event_processing_failed", "Failed to process event", "", err, map[string]interface{}{
			"queue":       c.queueName,
			"routing_key": delivery.RoutingKey,
			"duration_ms": duration.Milliseconds(),
		})
		if nackErr := delivery.Nack(false, true); nackErr != nil {
			c.logger.Error("event_nack_failed", "Failed to nack event", "", nackErr, nil)
		}
		return
	}

	c.logger.Debug("event_processed", "Successfully processed event", "", map[string]interface{}{
		"queue":       c.queueName,
		"routing_key": delivery.RoutingKey,
		"duration_ms": duration.Milliseconds(),
	})
	if ackErr := delivery.Ack(false); ackErr != nil {
		c.logger.Error("event_ack_failed", "Failed to ack event", "", ackErr, nil)
	}
}

// Close cancels the consumer and closes the connection.
func (c *Consumer) Close() error {
	if c.conn != nil && !c.conn.IsClosed() {
		if err := c.conn.Channel().Cancel(c.consumerTag, false); err != nil {
			c.logger.Error("consumer_cancel_failed", "Failed to cancel consumer", "", err, nil)
		}
		return c.conn.Close()
	}
	return nil
}
