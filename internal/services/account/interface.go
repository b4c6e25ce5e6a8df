package account

import (
	"context"
	"time"

	"cafe-system/internal/models"
)

// Repository is the data-access contract for the user directory.
type Repository interface {
	CreateUser(ctx context.Context, user models.User) error
	GetUser(ctx context.Context, login string) (models.User, error)
	UpdatePassword(ctx context.Context, login, passwordHash string) error
	UpdateFavItems(ctx context.Context, login, favItems string) error
	UpdateRole(ctx context.Context, login string, role models.Role) error
}

// SessionStore tracks issued tokens so sessions can be revoked before
// their signature expires.
type SessionStore interface {
	Save(ctx context.Context, token, login string, ttl time.Duration) error
	Exists(ctx context.Context, token string) (bool, error)
	Delete(ctx context.Context, token string) error
}
