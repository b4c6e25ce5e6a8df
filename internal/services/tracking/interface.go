package tracking

import (
	"context"

	"cafe-system/internal/models"
)

// Repository is the data-access contract for order lines.
type Repository interface {
	GetOrder(ctx context.Context, orderID int) (models.Order, error)
	GetLine(ctx context.Context, orderID int, itemName string) (models.OrderLine, error)
	SetStatus(ctx context.Context, orderID int, itemName string, status models.LineStatus) error
	SetComment(ctx context.Context, orderID int, itemName, comment string) error
	ListLines(ctx context.Context, orderID int) ([]models.OrderLine, error)
	ListLinesByStatus(ctx context.Context, orderID int, status models.LineStatus) ([]models.OrderLine, error)
}

// EventPublisher publishes domain events after a mutation has
// committed.
type EventPublisher interface {
	PublishEvent(ctx context.Context, routingKey string, event interface{}) error
}
