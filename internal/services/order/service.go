package order

import (
	"context"
	"time"

	"cafe-system/internal/auth"
	"cafe-system/internal/logger"
	"cafe-system/internal/models"
)

// Service implements the order lifecycle: creation, line attachment
// with price aggregation, and payment-state transitions. Every
// operation checks validation and authorization before touching the
// store.
type Service struct {
	repo      Repository
	publisher EventPublisher
	logger    *logger.Logger
}

// NewService creates a new order service
func NewService(repo Repository, publisher EventPublisher, log *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    log,
	}
}

// PlaceOrder creates a new unpaid order owned by ownerLogin with a
// single line for itemName and returns its identifier. Customers may
// only place orders for themselves; staff may place orders on behalf
// of walk-ins.
func (s *Service) PlaceOrder(ctx context.Context, sess models.Session, ownerLogin, itemName, requestID string) (int, error) {
	if err := validateLogin(ownerLogin); err != nil {
		return 0, err
	}
	if err := validateItemName(itemName); err != nil {
		return 0, err
	}
	if !auth.Can(sess, auth.ActionPlaceOrder, ownerLogin) {
		return 0, models.ErrUnauthorized
	}

	o, err := s.repo.CreateOrder(ctx, ownerLogin, itemName)
	if err != nil {
		return 0, err
	}

	s.logger.Info("order_placed", "Order placed", requestID, map[string]interface{}{
		"order_id": o.ID,
		"login":    o.Login,
		"item":     itemName,
		"total":    o.Total,
	})
	s.publish(ctx, models.RoutingKeyOrderPlaced, models.OrderPlacedEvent{
		OrderID:   o.ID,
		Login:     o.Login,
		ItemName:  itemName,
		Total:     o.Total,
		PlacedBy:  sess.Login,
		Timestamp: time.Now().UTC(),
	}, requestID)

	return o.ID, nil
}

// AddLine attaches itemName to an existing unpaid order and returns
// the new running total. The price is captured from the catalog at
// add time.
func (s *Service) AddLine(ctx context.Context, sess models.Session, orderID int, itemName, requestID string) (float64, error) {
	if err := validateItemName(itemName); err != nil {
		return 0, err
	}

	o, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return 0, err
	}
	if !auth.Can(sess, auth.ActionAddLine, o.Login) {
		return 0, models.ErrUnauthorized
	}
	// The paid flag is rechecked inside the repository transaction;
	// this early check only spares a transaction for the common case.
	if o.Paid {
		return 0, models.ErrOrderAlreadyPaid
	}

	total, err := s.repo.AddLine(ctx, orderID, itemName)
	if err != nil {
		return 0, err
	}

	s.logger.Info("line_added", "Line added to order", requestID, map[string]interface{}{
		"order_id": orderID,
		"item":     itemName,
		"total":    total,
	})

	return total, nil
}

// SetPaid sets the order's paid flag. Setting the current value again
// is a no-op success.
func (s *Service) SetPaid(ctx context.Context, sess models.Session, orderID int, paid bool, requestID string) error {
	if !auth.Can(sess, auth.ActionSetPaid, "") {
		return models.ErrUnauthorized
	}

	o, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if o.Paid == paid {
		return nil
	}

	if err := s.repo.SetPaid(ctx, orderID, paid); err != nil {
		return err
	}

	s.logger.Info("order_paid_changed", "Order paid flag changed", requestID, map[string]interface{}{
		"order_id": orderID,
		"paid":     paid,
	})
	s.publish(ctx, models.RoutingKeyOrderPaidChanged, models.OrderPaidChangedEvent{
		OrderID:   orderID,
		Paid:      paid,
		ChangedBy: sess.Login,
		Timestamp: time.Now().UTC(),
	}, requestID)

	return nil
}

// GetTotal returns the order's current running total.
func (s *Service) GetTotal(ctx context.Context, sess models.Session, orderID int) (float64, error) {
	o, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return 0, err
	}
	if !auth.Can(sess, auth.ActionViewOrder, o.Login) {
		return 0, models.ErrUnauthorized
	}
	return o.Total, nil
}

// GetOrder returns the order header.
func (s *Service) GetOrder(ctx context.Context, sess models.Session, orderID int) (models.Order, error) {
	o, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return models.Order{}, err
	}
	if !auth.Can(sess, auth.ActionViewOrder, o.Login) {
		return models.Order{}, models.ErrUnauthorized
	}
	return o, nil
}

// ListOrdersForUser returns login's most recent orders, newest first,
// bounded by limit.
func (s *Service) ListOrdersForUser(ctx context.Context, sess models.Session, login string, limit int) ([]models.Order, error) {
	if err := validateLogin(login); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, models.ValidationError{Field: "limit", Message: "must be positive"}
	}
	if !auth.Can(sess, auth.ActionViewOrder, login) {
		return nil, models.ErrUnauthorized
	}
	return s.repo.OrdersForUser(ctx, login, limit)
}

// ListOpenOrders returns unpaid orders received within the trailing
// window. Staff only.
func (s *Service) ListOpenOrders(ctx context.Context, sess models.Session, within time.Duration) ([]models.Order, error) {
	if within <= 0 {
		return nil, models.ValidationError{Field: "within", Message: "must be positive"}
	}
	if !auth.Can(sess, auth.ActionViewOpenOrders, "") {
		return nil, models.ErrUnauthorized
	}
	return s.repo.OpenOrders(ctx, time.Now().UTC().Add(-within))
}

// publish sends an event if a publisher is configured. The mutation
// is already committed at this point; a lost event only delays a
// notification, so failures are logged and not surfaced.
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

func validateLogin(login string) error {
	if login == "" {
		return models.ValidationError{Field: "login", Message: "is required"}
	}
	if len(login) > 50 {
		return models.ValidationError{Field: "login", Message: "must not exceed 50 characters"}
	}
	return nil
}

func validateItemName(name string) error {
	if name == "" {
		return models.ValidationError{Field: "item_name", Message: "is required"}
	}
	if len(name) > 60 {
		return models.ValidationError{Field: "item_name", Message: "must not exceed 60 characters"}
	}
	return nil
}
