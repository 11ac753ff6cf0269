package dto

import (
	"time"

	"github.com/tableside/tableside/internal/model"
)

// OrderLineRequest is one requested order line.
// Field names match what the frontend sends.
type OrderLineRequest struct {
	MenuItemID int64 `json:"menuItemId"`
	Quantity   int   `json:"quantity"`
}

// CreateOrderRequest represents the request body for creating an order.
type CreateOrderRequest struct {
	Lines []OrderLineRequest `json:"lines"`
}

// OrderLineResponse represents one line of an order in API responses.
type OrderLineResponse struct {
	MenuItemID int64       `json:"menu_item_id"`
	Name       string      `json:"name"`
	Quantity   int         `json:"quantity"`
	UnitPrice  model.Cents `json:"unit_price"`
	LineTotal  model.Cents `json:"line_total"`
}

// OrderResponse represents an order in API responses.
type OrderResponse struct {
	ID        string              `json:"id"`
	Lines     []OrderLineResponse `json:"lines"`
	Total     model.Cents         `json:"total"`
	CreatedAt time.Time           `json:"created_at"`
}

// OrderListResponse represents a sequence of orders, most recent first.
type OrderListResponse struct {
	Data []OrderResponse `json:"data"`
}

// ToOrderResponse converts an Order model to an OrderResponse DTO.
func ToOrderResponse(order *model.Order) *OrderResponse {
	lines := make([]OrderLineResponse, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, OrderLineResponse{
			MenuItemID: line.MenuItemID,
			Name:       line.Name,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			LineTotal:  line.LineTotal,
		})
	}
	return &OrderResponse{
		ID:        order.ID,
		Lines:     lines,
		Total:     order.Total,
		CreatedAt: order.CreatedAt,
	}
}

// ToOrderListResponse converts orders to an OrderListResponse.
func ToOrderListResponse(orders []*model.Order) *OrderListResponse {
	data := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		data = append(data, *ToOrderResponse(order))
	}
	return &OrderListResponse{Data: data}
}
