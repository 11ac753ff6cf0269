package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tableside/tableside/internal/auth"
	"github.com/tableside/tableside/internal/handler/dto"
	"github.com/tableside/tableside/internal/service"
)

// OrderHandler handles HTTP requests for order operations.
// All routes are behind RequireUser.
type OrderHandler struct {
	svc    *service.OrderService
	logger *slog.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(svc *service.OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /api/orders.
// Prices come from the menu at creation time, never from the client.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	lines := make([]service.OrderLineInput, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, service.OrderLineInput{
			MenuItemID: l.MenuItemID,
			Quantity:   l.Quantity,
		})
	}

	userID := auth.UserIDFromContext(r.Context())

	order, err := h.svc.Create(r.Context(), userID, lines)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("order_created",
		"order_id", order.ID,
		"user_id", userID,
		"line_count", len(order.Lines),
		"total_cents", int64(order.Total),
	)

	writeJSON(w, http.StatusCreated, dto.ToOrderResponse(order))
}

// List handles GET /api/orders.
// Returns only the caller's orders, most recent first.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	orders, err := h.svc.List(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToOrderListResponse(orders))
}

// handleServiceError maps order service errors to HTTP responses.
func (h *OrderHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNoLines):
		writeError(w, http.StatusBadRequest, "NO_LINES", "Order must contain at least one line")
	case errors.Is(err, service.ErrInvalidQuantity):
		writeError(w, http.StatusBadRequest, "INVALID_QUANTITY", "Line quantity must be between 1 and 100")
	case errors.Is(err, service.ErrDuplicateLine):
		writeError(w, http.StatusBadRequest, "DUPLICATE_LINE", "Order lines must reference distinct menu items")
	case errors.Is(err, service.ErrMenuItemNotFound):
		writeError(w, http.StatusNotFound, "MENU_ITEM_NOT_FOUND", "Menu item not found")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
