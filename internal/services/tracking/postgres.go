package tracking

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

// NewPostgresRepository creates a Postgres-backed tracking repository.
func NewPostgresRepository(db *database.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetOrder(ctx context.Context, orderID int) (models.Order, error) {
	var o models.Order
	err := r.db.QueryRow(ctx, database.GetOrderSQL, orderID).
		Scan(&o.ID, &o.Login, &o.Paid, &o.Total, &o.CreatedAt)
	if err != nil {
		if database.IsNoRows(err) {
			return models.Order{}, models.ErrOrderNotFound
		}
		return models.Order{}, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	return o, nil
}

func (r *PostgresRepository) GetLine(ctx context.Context, orderID int, itemName string) (models.OrderLine, error) {
	var line models.OrderLine
	err := r.db.QueryRow(ctx, database.GetOrderLineSQL, orderID, itemName).
		Scan(&line.OrderID, &line.ItemName, &line.Price, &line.Status, &line.Comment, &line.LastUpdated)
	if err != nil {
		if database.IsNoRows(err) {
			return models.OrderLine{}, models.ErrLineNotFound
		}
		return models.OrderLine{}, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	return line, nil
}

func (r *PostgresRepository) SetStatus(ctx context.Context, orderID int, itemName string, status models.LineStatus) error {
	affected, err := r.db.Exec(ctx, database.SetLineStatusSQL, status, orderID, itemName)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	if affected == 0 {
		return models.ErrLineNotFound
	}
	return nil
}

func (r *PostgresRepository) SetComment(ctx context.Context, orderID int, itemName, comment string) error {
	affected, err := r.db.Exec(ctx, database.SetLineCommentSQL, comment, orderID, itemName)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	if affected == 0 {
		return models.ErrLineNotFound
	}
	return nil
}

func (r *PostgresRepository) ListLines(ctx context.Context, orderID int) ([]models.OrderLine, error) {
	rows, err := r.db.Query(ctx, database.ListOrderLinesSQL, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	defer rows.Close()
	return scanLines(rows)
}

func (r *PostgresRepository) ListLinesByStatus(ctx context.Context, orderID int, status models.LineStatus) ([]models.OrderLine, error) {
	rows, err := r.db.Query(ctx, database.ListOrderLinesByStatusSQL, orderID, status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	defer rows.Close()
	return scanLines(rows)
}

func scanLines(rows pgx.Rows) ([]models.OrderLine, error) {
	var lines []models.OrderLine
	for rows.Next() {
		var line models.OrderLine
		if err := rows.Scan(&line.OrderID, &line.ItemName, &line.Price, &line.Status, &line.Comment, &line.LastUpdated); err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	return lines, nil
}
