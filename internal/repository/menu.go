package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/tableside/tableside/internal/model"
)

// ErrMenuItemNotFound is returned when a menu item does not exist.
var ErrMenuItemNotFound = errors.New("menu item not found")

// ListMenuItems retrieves the full menu ordered by ID.
func (r *Repository) ListMenuItems(ctx context.Context) ([]*model.MenuItem, error) {
	query := `
		SELECT id, name, COALESCE(description, ''), price_cents, COALESCE(image_url, ''), tags
		FROM menu
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	defer rows.Close()

	var items []*model.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate menu items: %w", err)
	}

	return items, nil
}

// GetMenuItemByID retrieves a single menu item.
func (r *Repository) GetMenuItemByID(ctx context.Context, id int64) (*model.MenuItem, error) {
	query := `
		SELECT id, name, COALESCE(description, ''), price_cents, COALESCE(image_url, ''), tags
		FROM menu
		WHERE id = $1
	`

	item, err := scanMenuItem(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}

	return item, nil
}

// GetMenuItemsByIDs retrieves menu items keyed by ID.
// IDs absent from the menu are simply missing from the result; the caller
// decides whether that is an error.
func (r *Repository) GetMenuItemsByIDs(ctx context.Context, ids []int64) (map[int64]*model.MenuItem, error) {
	if len(ids) == 0 {
		return map[int64]*model.MenuItem{}, nil
	}

	query := `
		SELECT id, name, COALESCE(description, ''), price_cents, COALESCE(image_url, ''), tags
		FROM menu
		WHERE id = ANY($1)
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get menu items by IDs: %w", err)
	}
	defer rows.Close()

	items := make(map[int64]*model.MenuItem, len(ids))
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items[item.ID] = item
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate menu items: %w", err)
	}

	return items, nil
}

// scanMenuItem scans a menu row into a MenuItem.
func scanMenuItem(row pgx.Row) (*model.MenuItem, error) {
	var item model.MenuItem
	var tags []string
	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.Price,
		&item.ImageURL,
		pq.Array(&tags),
	)
	if err != nil {
		return nil, err
	}
	item.Tags = tags
	return &item, nil
}
