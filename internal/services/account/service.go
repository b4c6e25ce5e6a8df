// Package account is the user directory: signup, login, session
// tokens and profile mutations.
package account

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"cafe-system/internal/auth"
	"cafe-system/internal/logger"
	"cafe-system/internal/models"
)

// Service implements signup, credential checks and profile updates.
type Service struct {
	repo     Repository
	tokens   *TokenManager
	sessions SessionStore
	logger   *logger.Logger
}

// NewService creates a new account service
func NewService(repo Repository, tokens *TokenManager, sessions SessionStore, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		tokens:   tokens,
		sessions: sessions,
		logger:   log,
	}
}

// Register creates a new customer account. Passwords are stored as
// bcrypt hashes, never as plain text.
func (s *Service) Register(ctx context.Context, login, password, phone, requestID string) error {
	if err := validateLogin(login); err != nil {
		return err
	}
	if err := validatePassword(password); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := models.User{
		Login:    login,
		Password: string(hash),
		Phone:    phone,
		Role:     models.RoleCustomer,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return err
	}

	s.logger.Info("user_registered", "User registered", requestID, map[string]interface{}{
		"login": login,
	})
	return nil
}

// Login checks the credentials and, on success, returns the session
// and a signed token recorded in the session store.
func (s *Service) Login(ctx context.Context, login, password, requestID string) (models.Session, string, error) {
	user, err := s.repo.GetUser(ctx, login)
	if err != nil {
		// A missing user and a wrong password look the same to the
		// caller.
		if errors.Is(err, models.ErrUserNotFound) {
			return models.Session{}, "", models.ErrInvalidCredentials
		}
		return models.Session{}, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return models.Session{}, "", models.ErrInvalidCredentials
	}

	sess := models.Session{Login: user.Login, Role: user.Role}
	token, err := s.tokens.Issue(sess)
	if err != nil {
		return models.Session{}, "", err
	}
	if err := s.sessions.Save(ctx, token, user.Login, s.tokens.TTL()); err != nil {
		return models.Session{}, "", err
	}

	s.logger.Info("user_logged_in", "User logged in", requestID, map[string]interface{}{
		"login": user.Login,
		"role":  string(user.Role),
	})
	return sess, token, nil
}

// Verify resolves a token back into a session. Revoked and expired
// tokens are rejected.
func (s *Service) Verify(ctx context.Context, token string) (models.Session, error) {
	sess, err := s.tokens.Parse(token)
	if err != nil {
		return models.Session{}, models.ErrInvalidCredentials
	}

	active, err := s.sessions.Exists(ctx, token)
	if err != nil {
		return models.Session{}, err
	}
	if !active {
		return models.Session{}, models.ErrInvalidCredentials
	}
	return sess, nil
}

// Logout revokes the token.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// ChangePassword updates a user's password. Non-managers must present
// the current password; managers may reset anyone's without it.
func (s *Service) ChangePassword(ctx context.Context, sess models.Session, login, currentPassword, newPassword, requestID string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	if !auth.Can(sess, auth.ActionEditProfile, login) {
		return models.ErrUnauthorized
	}

	user, err := s.repo.GetUser(ctx, login)
	if err != nil {
		return err
	}

	if sess.Role != models.RoleManager {
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)) != nil {
			return models.ErrInvalidCredentials
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, login, string(hash)); err != nil {
		return err
	}

	s.logger.Info("password_changed", "Password changed", requestID, map[string]interface{}{
		"login":      login,
		"changed_by": sess.Login,
	})
	return nil
}

// ChangeFavorites replaces the user's favorite-items note.
func (s *Service) ChangeFavorites(ctx context.Context, sess models.Session, login, favItems, requestID string) error {
	if !auth.Can(sess, auth.ActionEditProfile, login) {
		return models.ErrUnauthorized
	}
	if err := s.repo.UpdateFavItems(ctx, login, favItems); err != nil {
		return err
	}

	s.logger.Info("favorites_changed", "Favorite items changed", requestID, map[string]interface{}{
		"login":      login,
		"changed_by": sess.Login,
	})
	return nil
}

// ChangeRole assigns a new role to a user. Manager only.
func (s *Service) ChangeRole(ctx context.Context, sess models.Session, login string, role models.Role, requestID string) error {
	if !auth.Can(sess, auth.ActionChangeRole, login) {
		return models.ErrUnauthorized
	}
	parsed, err := models.ParseRole(string(role))
	if err != nil {
		return models.ValidationError{Field: "role", Message: err.Error()}
	}

	if err := s.repo.UpdateRole(ctx, login, parsed); err != nil {
		return err
	}

	s.logger.Info("role_changed", "User role changed", requestID, map[string]interface{}{
		"login":      login,
		"role":       string(parsed),
		"changed_by": sess.Login,
	})
	return nil
}

// GetProfile returns a user's directory entry. Users see their own;
// managers see anyone's.
func (s *Service) GetProfile(ctx context.Context, sess models.Session, login string) (models.User, error) {
	if !auth.Can(sess, auth.ActionEditProfile, login) {
		return models.User{}, models.ErrUnauthorized
	}
	user, err := s.repo.GetUser(ctx, login)
	if err != nil {
		return models.User{}, err
	}
	user.Password = ""
	return user, nil
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

func validatePassword(password string) error {
	if password == "" {
		return models.ValidationError{Field: "password", Message: "is required"}
	}
	return nil
}
