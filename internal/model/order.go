package model

import "time"

// OrderLine is one (menu item, quantity) pair within an order.
// UnitPrice is captured from the menu at creation time so later menu
// changes never alter historical orders.
type OrderLine struct {
	MenuItemID int64  `json:"menu_item_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	UnitPrice  Cents  `json:"unit_price"`
	LineTotal  Cents  `json:"line_total"`
}

// Order represents a purchase request by a user.
// Orders are append-only: created is the only state they ever reach.
type Order struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"`
	Lines     []OrderLine `json:"lines"`
	Total     Cents       `json:"total"`
	CreatedAt time.Time   `json:"created_at"`
}
