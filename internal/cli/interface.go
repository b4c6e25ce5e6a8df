package cli

import (
	"context"
	"time"

	"cafe-system/internal/models"
)

// Accounts is the slice of the account service the CLI needs.
type Accounts interface {
	Register(ctx context.Context, login, password, phone, requestID string) error
	Login(ctx context.Context, login, password, requestID string) (models.Session, string, error)
	Logout(ctx context.Context, token string) error
	ChangePassword(ctx context.Context, sess models.Session, login, currentPassword, newPassword, requestID string) error
	ChangeFavorites(ctx context.Context, sess models.Session, login, favItems, requestID string) error
	ChangeRole(ctx context.Context, sess models.Session, login string, role models.Role, requestID string) error
	GetProfile(ctx context.Context, sess models.Session, login string) (models.User, error)
}

// Catalog is the slice of the catalog service the CLI needs.
type Catalog interface {
	AddItem(ctx context.Context, sess models.Session, item models.MenuItem, requestID string) error
	UpdateItem(ctx context.Context, sess models.Session, item models.MenuItem, requestID string) error
	RemoveItem(ctx context.Context, sess models.Session, name, requestID string) error
	GetItem(ctx context.Context, name string) (models.MenuItem, error)
	ListByType(ctx context.Context, itemType string) ([]models.MenuItem, error)
	ListAll(ctx context.Context) ([]models.MenuItem, error)
}

// Orders is the slice of the order service the CLI needs.
type Orders interface {
	PlaceOrder(ctx context.Context, sess models.Session, ownerLogin, itemName, requestID string) (int, error)
	AddLine(ctx context.Context, sess models.Session, orderID int, itemName, requestID string) (float64, error)
	SetPaid(ctx context.Context, sess models.Session, orderID int, paid bool, requestID string) error
	GetOrder(ctx context.Context, sess models.Session, orderID int) (models.Order, error)
	ListOrdersForUser(ctx context.Context, sess models.Session, login string, limit int) ([]models.Order, error)
	ListOpenOrders(ctx context.Context, sess models.Session, within time.Duration) ([]models.Order, error)
}

// Tracking is the slice of the tracking service the CLI needs.
type Tracking interface {
	SetStatus(ctx context.Context, sess models.Session, orderID int, itemName string, newStatus models.LineStatus, requestID string) error
	SetComment(ctx context.Context, sess models.Session, orderID int, itemName, text, requestID string) error
	ListLines(ctx context.Context, sess models.Session, orderID int) ([]models.OrderLine, error)
	ListModifiableLines(ctx context.Context, sess models.Session, orderID int) ([]models.OrderLine, error)
}
