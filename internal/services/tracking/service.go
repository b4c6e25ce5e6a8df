// Package tracking advances order lines through their preparation
// states and records customer comments on them.
package tracking

import (
	"context"
	"time"

	"cafe-system/internal/auth"
	"cafe-system/internal/logger"
	"cafe-system/internal/models"
)

// Service implements the line status tracker.
type Service struct {
	repo      Repository
	publisher EventPublisher
	logger    *logger.Logger
}

// NewService creates a new tracking service
func NewService(repo Repository, publisher EventPublisher, log *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    log,
	}
}

// SetStatus moves a line to newStatus and stamps last_updated. Any
// transition between the three states is allowed, including resets
// back to not-started; kitchen staff are trusted to use them
// correctly.
func (s *Service) SetStatus(ctx context.Context, sess models.Session, orderID int, itemName string, newStatus models.LineStatus, requestID string) error {
	if _, err := models.ParseLineStatus(string(newStatus)); err != nil {
		return models.ValidationError{Field: "status", Message: err.Error()}
	}
	if !auth.Can(sess, auth.ActionSetLineStatus, "") {
		return models.ErrUnauthorized
	}

	line, err := s.repo.GetLine(ctx, orderID, itemName)
	if err != nil {
		return err
	}

	if err := s.repo.SetStatus(ctx, orderID, itemName, newStatus); err != nil {
		return err
	}

	s.logger.Info("line_status_changed", "Line status changed", requestID, map[string]interface{}{
		"order_id":   orderID,
		"item":       itemName,
		"old_status": string(line.Status),
		"new_status": string(newStatus),
	})
	s.publish(ctx, models.RoutingKeyLineStatusChanged, models.LineStatusChangedEvent{
		OrderID:   orderID,
		ItemName:  itemName,
		OldStatus: line.Status,
		NewStatus: newStatus,
		ChangedBy: sess.Login,
		Timestamp: time.Now().UTC(),
	}, requestID)

	return nil
}

// SetComment records a free-text note on a line. Staff may comment at
// any time; the owning customer only while the order is unpaid and
// the line has not been started.
func (s *Service) SetComment(ctx context.Context, sess models.Session, orderID int, itemName, text, requestID string) error {
	if len(text) > models.MaxCommentLength {
		return models.ErrCommentTooLong
	}

	line, err := s.repo.GetLine(ctx, orderID, itemName)
	if err != nil {
		return err
	}
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}

	if !auth.Can(sess, auth.ActionEditComment, order.Login) {
		return models.ErrUnauthorized
	}
	if !sess.Role.IsStaff() && (order.Paid || line.Status != models.StatusNotStarted) {
		return models.ErrUnauthorized
	}

	if err := s.repo.SetComment(ctx, orderID, itemName, text); err != nil {
		return err
	}

	s.logger.Info("line_comment_set", "Line comment updated", requestID, map[string]interface{}{
		"order_id": orderID,
		"item":     itemName,
	})

	return nil
}

// ListLines returns all lines of an order with their statuses.
func (s *Service) ListLines(ctx context.Context, sess models.Session, orderID int) ([]models.OrderLine, error) {
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !auth.Can(sess, auth.ActionViewOrder, order.Login) {
		return nil, models.ErrUnauthorized
	}
	return s.repo.ListLines(ctx, orderID)
}

// ListModifiableLines returns the lines a customer may still edit,
// i.e. those not yet started.
func (s *Service) ListModifiableLines(ctx context.Context, sess models.Session, orderID int) ([]models.OrderLine, error) {
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !auth.Can(sess, auth.ActionViewOrder, order.Login) {
		return nil, models.ErrUnauthorized
	}
	return s.repo.ListLinesByStatus(ctx, orderID, models.StatusNotStarted)
}

func (s *Service) publish(ctx context.Context, routingKey string, event interface{}, requestID string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishEvent(ctx, routingKey, event); err != nil {
		s.logger.Error("event_publish_failed", "Failed to publish event", requestID, err, map[string]interface{}{
			"routing_key": routingKey,
		})
	}
}
