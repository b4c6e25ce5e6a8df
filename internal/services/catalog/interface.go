package catalog

import (
	"context"

	"cafe-system/internal/models"
)

// Repository is the menu storage contract.
type Repository interface {
	CreateItem(ctx context.Context, item models.MenuItem) error
	UpdateItem(ctx context.Context, item models.MenuItem) error
	DeleteItem(ctx context.Context, name string) error
	GetItem(ctx context.Context, name string) (models.MenuItem, error)
	ListByType(ctx context.Context, itemType string) ([]models.MenuItem, error)
	ListAll(ctx context.Context) ([]models.MenuItem, error)
}
