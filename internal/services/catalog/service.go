// Package catalog manages the menu: browsing for everyone, edits for
// managers.
package catalog

import (
	"context"

	"cafe-system/internal/auth"
	"cafe-system/internal/logger"
	"cafe-system/internal/models"
)

// Service implements menu browsing and maintenance.
type Service struct {
	repo   Repository
	logger *logger.Logger
}

// NewService creates a new catalog service
func NewService(repo Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, logger: log}
}

// AddItem puts a new item on the menu. Manager only.
func (s *Service) AddItem(ctx context.Context, sess models.Session, item models.MenuItem, requestID string) error {
	if !auth.Can(sess, auth.ActionEditCatalog, "") {
		return models.ErrUnauthorized
	}
	if err := validateItem(item); err != nil {
		return err
	}

	if err := s.repo.CreateItem(ctx, item); err != nil {
		return err
	}

	s.logger.Info("menu_item_added", "Menu item added", requestID, map[string]interface{}{
		"item":  item.Name,
		"price": item.Price,
		"by":    sess.Login,
	})
	return nil
}

// UpdateItem replaces an item's type, price, description and image.
// Manager only. The name is the identity and cannot change.
func (s *Service) UpdateItem(ctx context.Context, sess models.Session, item models.MenuItem, requestID string) error {
	if !auth.Can(sess, auth.ActionEditCatalog, "") {
		return models.ErrUnauthorized
	}
	if err := validateItem(item); err != nil {
		return err
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return err
	}

	s.logger.Info("menu_item_updated", "Menu item updated", requestID, map[string]interface{}{
		"item":  item.Name,
		"price": item.Price,
		"by":    sess.Login,
	})
	return nil
}

// RemoveItem takes an item off the menu. Manager only. Order lines
// already placed keep the price they were sold at.
func (s *Service) RemoveItem(ctx context.Context, sess models.Session, name, requestID string) error {
	if !auth.Can(sess, auth.ActionEditCatalog, "") {
		return models.ErrUnauthorized
	}
	if name == "" {
		return models.ValidationError{Field: "name", Message: "is required"}
	}

	if err := s.repo.DeleteItem(ctx, name); err != nil {
		return err
	}

	s.logger.Info("menu_item_removed", "Menu item removed", requestID, map[string]interface{}{
		"item": name,
		"by":   sess.Login,
	})
	return nil
}

// GetItem looks up a single menu item by name.
func (s *Service) GetItem(ctx context.Context, name string) (models.MenuItem, error) {
	return s.repo.GetItem(ctx, name)
}

// ListByType returns the items of one menu section, e.g. "Drinks".
func (s *Service) ListByType(ctx context.Context, itemType string) ([]models.MenuItem, error) {
	return s.repo.ListByType(ctx, itemType)
}

// ListAll returns the whole menu grouped by type.
func (s *Service) ListAll(ctx context.Context) ([]models.MenuItem, error) {
	return s.repo.ListAll(ctx)
}

func validateItem(item models.MenuItem) error {
	if item.Name == "" {
		return models.ValidationError{Field: "name", Message: "is required"}
	}
	if len(item.Name) > 60 {
		return models.ValidationError{Field: "name", Message: "must not exceed 60 characters"}
	}
	if item.Type == "" {
		return models.ValidationError{Field: "type", Message: "is required"}
	}
	if item.Price < 0 {
		return models.ValidationError{Field: "price", Message: "must not be negative"}
	}
	return nil
}
