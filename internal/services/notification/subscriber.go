// Package notification renders cafe events as human-readable console
// notices for the counter display.
package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cafe-system/internal/logger"
	"cafe-system/internal/messaging"
	"cafe-system/internal/models"
)

// Subscriber consumes cafe events and prints them.
type Subscriber struct {
	consumer *messaging.Consumer
	logger   *logger.Logger

	shutdown chan os.Signal
	done     chan bool
}

// NewSubscriber creates a new notification subscriber
func NewSubscriber(consumer *messaging.Consumer, log *logger.Logger) *Subscriber {
	return &Subscriber{
		consumer: consumer,
		logger:   log,
		shutdown: make(chan os.Signal, 1),
		done:     make(chan bool, 1),
	}
}

// Start consumes events until the process is signalled to stop.
func (s *Subscriber) Start(ctx context.Context) error {
	requestID := logger.GenerateRequestID()

	signal.Notify(s.shutdown, syscall.SIGINT, syscall.SIGTERM)

	s.logger.Info("service_started", "Notification subscriber started", requestID, nil)

	go func() {
		if err := s.consumer.StartConsuming(ctx, s.handleEvent); err != nil {
			s.logger.Error("consumer_failed", "Notification consumer failed", requestID, err, nil)
		}
		s.done <- true
	}()

	select {
	case <-s.shutdown:
		s.logger.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		return s.gracefulShutdown(requestID)
	case <-s.done:
		return nil
	}
}

// handleEvent dispatches a raw delivery by routing key.
func (s *Subscriber) handleEvent(_ context.Context, routingKey string, body []byte) error {
	requestID := logger.GenerateRequestID()

	message, err := s.formatEvent(routingKey, body)
	if err != nil {
		s.logger.Error("message_parsing_failed", "Failed to parse event", requestID, err, map[string]interface{}{
			"routing_key": routingKey,
		})
		return fmt.Errorf("failed to parse event %s: %w", routingKey, err)
	}

	fmt.Println(message)

	s.logger.Info("notification_displayed", "Notification displayed", requestID, map[string]interface{}{
		"routing_key": routingKey,
	})
	return nil
}

// formatEvent turns an event body into a one-line console notice.
func (s *Subscriber) formatEvent(routingKey string, body []byte) (string, error) {
	switch routingKey {
	case models.RoutingKeyOrderPlaced:
		var event models.OrderPlacedEvent
		if err := json.Unmarshal(body, &event); err != nil {
			return "", err
		}
		timestamp := event.Timestamp.Format("2006-01-02 15:04:05")
		if event.PlacedBy != event.Login {
			return fmt.Sprintf("[%s] Order #%d placed for %s by %s: %s ($%.2f)",
				timestamp, event.OrderID, event.Login, event.PlacedBy, event.ItemName, event.Total), nil
		}
		return fmt.Sprintf("[%s] Order #%d placed by %s: %s ($%.2f)",
			timestamp, event.OrderID, event.Login, event.ItemName, event.Total), nil

	case models.RoutingKeyLineStatusChanged:
		var event models.LineStatusChangedEvent
		if err := json.Unmarshal(body, &event); err != nil {
			return "", err
		}
		timestamp := event.Timestamp.Format("2006-01-02 15:04:05")
		return fmt.Sprintf("[%s] Order #%d: %s moved from '%s' to '%s' by %s",
			timestamp, event.OrderID, event.ItemName, event.OldStatus, event.NewStatus, event.ChangedBy), nil

	case models.RoutingKeyOrderPaidChanged:
		var event models.OrderPaidChangedEvent
		if err := json.Unmarshal(body, &event); err != nil {
			return "", err
		}
		timestamp := event.Timestamp.Format("2006-01-02 15:04:05")
		if event.Paid {
			return fmt.Sprintf("[%s] Order #%d marked paid by %s", timestamp, event.OrderID, event.ChangedBy), nil
		}
		return fmt.Sprintf("[%s] Order #%d marked unpaid by %s", timestamp, event.OrderID, event.ChangedBy), nil

	default:
		return fmt.Sprintf("[event] %s: %s", routingKey, string(body)), nil
	}
}

func (s *Subscriber) gracefulShutdown(requestID string) error {
	s.logger.Info("graceful_shutdown", "Starting graceful shutdown", requestID, nil)

	if s.consumer != nil {
		s.consumer.Close()
	}

	s.logger.Info("graceful_shutdown", "Graceful shutdown completed", requestID, nil)
	return nil
}
