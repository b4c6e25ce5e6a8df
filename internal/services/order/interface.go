package order

import (
	"context"
	"time"

	"cafe-system/internal/models"
)

// Repository is the data-access contract for orders. Each mutation is
// one atomic unit against the store: CreateOrder and AddLine run their
// multi-step writes inside a single transaction so no caller can
// observe a partially created order or a lost total update.
type Repository interface {
	// CreateOrder inserts a new unpaid order for login with its first
	// line and returns the created order. The order identifier comes
	// back from the insert itself.
	CreateOrder(ctx context.Context, login, itemName string) (models.Order, error)

	// AddLine attaches itemName to the order at the item's current
	// catalog price and returns the new total. Serialized per order.
	AddLine(ctx context.Context, orderID int, itemName string) (float64, error)

	GetOrder(ctx context.Context, orderID int) (models.Order, error)
	SetPaid(ctx context.Context, orderID int, paid bool) error
	OrdersForUser(ctx context.Context, login string, limit int) ([]models.Order, error)
	OpenOrders(ctx context.Context, since time.Time) ([]models.Order, error)
}

// EventPublisher publishes domain events after a mutation has
// committed.
type EventPublisher interface {
	PublishEvent(ctx context.Context, routingKey string, event interface{}) error
}
