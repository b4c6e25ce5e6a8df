package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"cafe-system/internal/database"
	"cafe-system/internal/models"
)

// PostgresRepository implements Repository on top of the shared
// connection pool.
type PostgresRepository struct {
	db *database.DB
}

// NewPostgresRepository creates a Postgres-backed menu repository.
func NewPostgresRepository(db *database.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateItem(ctx context.Context, item models.MenuItem) error {
	_, err := r.db.Exec(ctx, database.InsertMenuItemSQL,
		item.Name, item.Type, item.Price, item.Description, item.ImageURL)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return models.ErrItemExists
		}
		return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *PostgresRepository) UpdateItem(ctx context.Context, item models.MenuItem) error {
	affected, err := r.db.Exec(ctx, database.UpdateMenuItemSQL,
		item.Type, item.Price, item.Description, item.ImageURL, item.Name)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	if affected == 0 {
		return models.ErrItemNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteItem(ctx context.Context, name string) error {
	affected, err := r.db.Exec(ctx, database.DeleteMenuItemSQL, name)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	if affected == 0 {
		return models.ErrItemNotFound
	}
	return nil
}

func (r *PostgresRepository) GetItem(ctx context.Context, name string) (models.MenuItem, error) {
	var item models.MenuItem
	err := r.db.QueryRow(ctx, database.GetMenuItemSQL, name).
		Scan(&item.Name, &item.Type, &item.Price, &item.Description, &item.ImageURL)
	if err != nil {
		if database.IsNoRows(err) {
			return models.MenuItem{}, models.ErrItemNotFound
		}
		return models.MenuItem{}, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	return item, nil
}

func (r *PostgresRepository) ListByType(ctx context.Context, itemType string) ([]models.MenuItem, error) {
	rows, err := r.db.Query(ctx, database.ListMenuByTypeSQL, itemType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	defer rows.Close()
	return scanItems(rows)
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]models.MenuItem, error) {
	rows, err := r.db.Query(ctx, database.ListMenuSQL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	defer rows.Close()
	return scanItems(rows)
}

func scanItems(rows pgx.Rows) ([]models.MenuItem, error) {
	var items []models.MenuItem
	for rows.Next() {
		var item models.MenuItem
		if err := rows.Scan(&item.Name, &item.Type, &item.Price, &item.Description, &item.ImageURL); err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	return items, nil
}
