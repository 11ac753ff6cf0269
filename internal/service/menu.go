package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tableside/tableside/internal/model"
	"github.com/tableside/tableside/internal/repository"
)

// ErrMenuItemNotFound is returned when a referenced menu item does not exist.
var ErrMenuItemNotFound = errors.New("menu item not found")

// MenuService exposes read access to the menu.
// Items are seeded through migrations; there is no mutation path.
type MenuService struct {
	repo *repository.Repository
}

// NewMenuService creates a new MenuService.
func NewMenuService(repo *repository.Repository) *MenuService {
	return &MenuService{repo: repo}
}

// List returns the full menu.
func (s *MenuService) List(ctx context.Context) ([]*model.MenuItem, error) {
	items, err := s.repo.ListMenuItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu: %w", err)
	}
	return items, nil
}

// Get returns a single menu item.
func (s *MenuService) Get(ctx context.Context, id int64) (*model.MenuItem, error) {
	item, err := s.repo.GetMenuItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMenuItemNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	return item, nil
}
