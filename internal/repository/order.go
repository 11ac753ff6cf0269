package repository

import (
	"context"
	"fmt"

	"github.com/tableside/tableside/internal/model"
)

// CreateOrder persists an order and all its lines in a single transaction.
// Either the whole order becomes visible or nothing does.
func (r *Repository) CreateOrder(ctx context.Context, order *model.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin order transaction: %w", err)
	}
	defer func() {
		// No-op after a successful commit.
		_ = tx.Rollback(ctx)
	}()

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (id, user_id, total_cents, created_at)
		VALUES ($1, $2, $3, $4)
	`, order.ID, order.UserID, order.Total, order.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for _, line := range order.Lines {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_lines (order_id, menu_item_id, quantity, unit_price_cents, line_total_cents)
			VALUES ($1, $2, $3, $4, $5)
		`, order.ID, line.MenuItemID, line.Quantity, line.UnitPrice, line.LineTotal)
		if err != nil {
			return fmt.Errorf("failed to insert order line: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}

	return nil
}

// ListOrdersByUser retrieves a user's orders with their lines,
// most recent first.
func (r *Repository) ListOrdersByUser(ctx context.Context, userID string) ([]*model.Order, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, total_cents, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []*model.Order
	byID := make(map[string]*model.Order)
	var ids []string

	for rows.Next() {
		var order model.Order
		if err := rows.Scan(&order.ID, &order.UserID, &order.Total, &order.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		order.Lines = []model.OrderLine{}
		orders = append(orders, &order)
		byID[order.ID] = &order
		ids = append(ids, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}

	if len(orders) == 0 {
		return orders, nil
	}

	lineRows, err := r.pool.Query(ctx, `
		SELECT ol.order_id, ol.menu_item_id, m.name, ol.quantity, ol.unit_price_cents, ol.line_total_cents
		FROM order_lines ol
		JOIN menu m ON m.id = ol.menu_item_id
		WHERE ol.order_id = ANY($1)
		ORDER BY ol.order_id, ol.menu_item_id
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list order lines: %w", err)
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var orderID string
		var line model.OrderLine
		err := lineRows.Scan(
			&orderID,
			&line.MenuItemID,
			&line.Name,
			&line.Quantity,
			&line.UnitPrice,
			&line.LineTotal,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		if order, ok := byID[orderID]; ok {
			order.Lines = append(order.Lines, line)
		}
	}
	if err := lineRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order lines: %w", err)
	}

	return orders, nil
}
