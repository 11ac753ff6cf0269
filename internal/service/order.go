package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/tableside/tableside/internal/model"
	"github.com/tableside/tableside/internal/repository"
)

// Order service errors.
var (
	ErrNoLines         = errors.New("order must have at least one line")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrDuplicateLine   = errors.New("duplicate menu item in order")
)

// maxLineQuantity bounds a single line so a typo cannot order 10000 pizzas.
const maxLineQuantity = 100

// OrderLineInput is one requested (menu item, quantity) pair.
// Prices are never accepted from the client.
type OrderLineInput struct {
	MenuItemID int64
	Quantity   int
}

// OrderNotifier is notified after an order has been persisted.
// Implementations must not block the request path.
type OrderNotifier interface {
	OrderCreated(ctx context.Context, order *model.Order)
}

// noopNotifier is used when no kitchen webhook is configured.
type noopNotifier struct{}

func (noopNotifier) OrderCreated(context.Context, *model.Order) {}

// OrderService handles order creation and listing.
type OrderService struct {
	repo     *repository.Repository
	notifier OrderNotifier
}

// NewOrderService creates a new OrderService.
func NewOrderService(repo *repository.Repository, notifier OrderNotifier) *OrderService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &OrderService{repo: repo, notifier: notifier}
}

// Create validates the requested lines, prices them from the stored menu,
// and persists the order atomically.
func (s *OrderService) Create(ctx context.Context, userID string, lines []OrderLineInput) (*model.Order, error) {
	if err := validateLines(lines); err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.MenuItemID)
	}

	items, err := s.repo.GetMenuItemsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu items: %w", err)
	}

	priced, total, err := priceLines(lines, items)
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		ID:        ulid.Make().String(),
		UserID:    userID,
		Lines:     priced,
		Total:     total,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.notifier.OrderCreated(ctx, order)

	return order, nil
}

// List returns the caller's orders, most recent first.
func (s *OrderService) List(ctx context.Context, userID string) ([]*model.Order, error) {
	orders, err := s.repo.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if orders == nil {
		orders = []*model.Order{}
	}
	return orders, nil
}

// validateLines checks the shape of requested order lines.
func validateLines(lines []OrderLineInput) error {
	if len(lines) == 0 {
		return ErrNoLines
	}

	seen := make(map[int64]bool, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 || line.Quantity > maxLineQuantity {
			return ErrInvalidQuantity
		}
		if seen[line.MenuItemID] {
			return ErrDuplicateLine
		}
		seen[line.MenuItemID] = true
	}

	return nil
}

// priceLines resolves each requested line against the stored menu and
// computes per-line and order totals from current stored prices.
func priceLines(lines []OrderLineInput, items map[int64]*model.MenuItem) ([]model.OrderLine, model.Cents, error) {
	priced := make([]model.OrderLine, 0, len(lines))
	var total model.Cents

	for _, line := range lines {
		item, ok := items[line.MenuItemID]
		if !ok {
			return nil, 0, fmt.Errorf("menu item %d: %w", line.MenuItemID, ErrMenuItemNotFound)
		}

		lineTotal := item.Price * model.Cents(line.Quantity)
		priced = append(priced, model.OrderLine{
			MenuItemID: item.ID,
			Name:       item.Name,
			Quantity:   line.Quantity,
			UnitPrice:  item.Price,
			LineTotal:  lineTotal,
		})
		total += lineTotal
	}

	return priced, total, nil
}
