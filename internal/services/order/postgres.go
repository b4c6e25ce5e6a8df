package order

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"cafe-system/internal/database"
	"cafe-system/internal/models"
)

// PostgresRepository implements Repository on top of the shared
// connection pool.
type PostgresRepository struct {
	db *database.DB
}

// NewPostgresRepository creates a Postgres-backed order repository.
func NewPostgresRepository(db *database.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateOrder inserts the order header and its first line in one
// transaction. The generated identifier comes back from the insert
// statement itself, never from a separate sequence read.
func (r *PostgresRepository) CreateOrder(ctx context.Context, login, itemName string) (models.Order, error) {
	var o models.Order

	err := r.db.InTx(ctx, func(tx pgx.Tx) error {
		var price float64
		err := tx.QueryRow(ctx, database.GetMenuItemPriceSQL, itemName).Scan(&price)
		if err != nil {
			if database.IsNoRows(err) {
				return models.ErrItemNotFound
			}
			return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
		}

		err = tx.QueryRow(ctx, database.InsertOrderSQL, login, price).Scan(&o.ID, &o.CreatedAt)
		if err != nil {
			if database.IsForeignKeyViolation(err) {
				return models.ErrUserNotFound
			}
			return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
		}

		if _, err := tx.Exec(ctx, database.InsertOrderLineSQL, o.ID, itemName, price, models.StatusNotStarted); err != nil {
			return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
		}

		o.Login = login
		o.Paid = false
		o.Total = price
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}
	return o, nil
}

// AddLine locks the order row for the duration of the transaction so
// two concurrent adds on the same order cannot lose a total update.
func (r *PostgresRepository) AddLine(ctx context.Context, orderID int, itemName string) (float64, error) {
	var newTotal float64

	err := r.db.InTx(ctx, func(tx pgx.Tx) error {
		var o models.Order
		err := tx.QueryRow(ctx, database.LockOrderSQL, orderID).
			Scan(&o.ID, &o.Login, &o.Paid, &o.Total, &o.CreatedAt)
		if err != nil {
			if database.IsNoRows(err) {
				return models.ErrOrderNotFound
			}
			return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
		}
		if o.Paid {
			return models.ErrOrderAlreadyPaid
		}

		var price float64
		err = tx.QueryRow(ctx, database.GetMenuItemPriceSQL, itemName).Scan(&price)
		if err != nil {
			if database.IsNoRows(err) {
				return models.ErrItemNotFound
			}
			return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
		}

		if _, err := tx.Exec(ctx, database.InsertOrderLineSQL, orderID, itemName, price, models.StatusNotStarted); err != nil {
			if database.IsUniqueViolation(err) {
				return models.ErrDuplicateLine
			}
			return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
		}

		if err := tx.QueryRow(ctx, database.AddToOrderTotalSQL, price, orderID).Scan(&newTotal); err != nil {
			return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newTotal, nil
}

// GetOrder returns the order header.
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

// SetPaid updates the paid flag.
func (r *PostgresRepository) SetPaid(ctx context.Context, orderID int, paid bool) error {
	affected, err := r.db.Exec(ctx, database.SetOrderPaidSQL, paid, orderID)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	if affected == 0 {
		return models.ErrOrderNotFound
	}
	return nil
}

// OrdersForUser returns login's orders, newest first.
func (r *PostgresRepository) OrdersForUser(ctx context.Context, login string, limit int) ([]models.Order, error) {
	rows, err := r.db.Query(ctx, database.ListOrdersForUserSQL, login, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	defer rows.Close()
	return scanOrders(rows)
}

// OpenOrders returns unpaid orders received at or after since.
func (r *PostgresRepository) OpenOrders(ctx context.Context, since time.Time) ([]models.Order, error) {
	rows, err := r.db.Query(ctx, database.ListOpenOrdersSQL, since)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	defer rows.Close()
	return scanOrders(rows)
}

func scanOrders(rows pgx.Rows) ([]models.Order, error) {
	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.Login, &o.Paid, &o.Total, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	return orders, nil
}
