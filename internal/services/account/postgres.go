package account

import (
	"context"
	"fmt"

	"cafe-system/internal/database"
	"cafe-system/internal/models"
)

// PostgresRepository implements Repository on top of the shared
// connection pool.
type PostgresRepository struct {
	db *database.DB
}

// NewPostgresRepository creates a Postgres-backed user repository.
func NewPostgresRepository(db *database.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateUser(ctx context.Context, user models.User) error {
	_, err := r.db.Exec(ctx, database.InsertUserSQL, user.Login, user.Password, user.Phone, user.Role)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return models.ErrUserExists
		}
		return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *PostgresRepository) GetUser(ctx context.Context, login string) (models.User, error) {
	var user models.User
	var rawRole string
	err := r.db.QueryRow(ctx, database.GetUserByLoginSQL, login).
		Scan(&user.Login, &user.Password, &user.Phone, &user.FavItems, &rawRole, &user.CreatedAt)
	if err != nil {
		if database.IsNoRows(err) {
			return models.User{}, models.ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}

	// Legacy directories store roles with inconsistent casing and
	// whitespace; normalize on read.
	role, err := models.ParseRole(rawRole)
	if err != nil {
		return models.User{}, fmt.Errorf("user %s: %w", login, err)
	}
	user.Role = role
	return user, nil
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, login, passwordHash string) error {
	return r.updateField(ctx, database.UpdateUserPasswordSQL, passwordHash, login)
}

func (r *PostgresRepository) UpdateFavItems(ctx context.Context, login, favItems string) error {
	return r.updateField(ctx, database.UpdateUserFavItemsSQL, favItems, login)
}

func (r *PostgresRepository) UpdateRole(ctx context.Context, login string, role models.Role) error {
	return r.updateField(ctx, database.UpdateUserRoleSQL, string(role), login)
}

func (r *PostgresRepository) updateField(ctx context.Context, sql, value, login string) error {
	affected, err := r.db.Exec(ctx, sql, value, login)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	if affected == 0 {
		return models.ErrUserNotFound
	}
	return nil
}
