//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/tableside/tableside/internal/model"
	"github.com/tableside/tableside/internal/testutil"
)

func TestIntegrationOrderRepository_CreateAndList(t *testing.T) {
	ctx, repo := newTestEnv(t)
	user := mustCreateUser(t, ctx, repo)

	items, err := repo.ListMenuItems(ctx)
	if err != nil {
		t.Fatalf("ListMenuItems failed: %v", err)
	}
	if len(items) < 2 {
		t.Fatal("need at least two seeded items")
	}

	order := buildOrder(user.ID, items[0].ID, items[0].Price, 2)
	if err := repo.CreateOrder(ctx, order); err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	orders, err := repo.ListOrdersByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListOrdersByUser failed: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("got %d orders, want 1", len(orders))
	}

	got := orders[0]
	if got.ID != order.ID {
		t.Errorf("ID mismatch: got %q, want %q", got.ID, order.ID)
	}
	if got.Total != order.Total {
		t.Errorf("Total mismatch: got %d, want %d", got.Total, order.Total)
	}
	if len(got.Lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(got.Lines))
	}
	if got.Lines[0].Name != items[0].Name {
		t.Errorf("line name = %q, want %q", got.Lines[0].Name, items[0].Name)
	}
	if got.Lines[0].Quantity != 2 {
		t.Errorf("quantity = %d, want 2", got.Lines[0].Quantity)
	}
}

func TestIntegrationOrderRepository_ListScopedToUser(t *testing.T) {
	ctx, repo := newTestEnv(t)
	alice := mustCreateUser(t, ctx, repo)
	bob := mustCreateUser(t, ctx, repo)

	items, err := repo.ListMenuItems(ctx)
	if err != nil {
		t.Fatalf("ListMenuItems failed: %v", err)
	}

	if err := repo.CreateOrder(ctx, buildOrder(alice.ID, items[0].ID, items[0].Price, 1)); err != nil {
		t.Fatalf("CreateOrder (alice) failed: %v", err)
	}

	orders, err := repo.ListOrdersByUser(ctx, bob.ID)
	if err != nil {
		t.Fatalf("ListOrdersByUser failed: %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("bob sees %d of alice's orders", len(orders))
	}
}

func TestIntegrationOrderRepository_ListNewestFirst(t *testing.T) {
	ctx, repo := newTestEnv(t)
	user := mustCreateUser(t, ctx, repo)

	items, err := repo.ListMenuItems(ctx)
	if err != nil {
		t.Fatalf("ListMenuItems failed: %v", err)
	}

	first := buildOrder(user.ID, items[0].ID, items[0].Price, 1)
	second := buildOrder(user.ID, items[0].ID, items[0].Price, 3)
	second.CreatedAt = first.CreatedAt.Add(time.Second)

	if err := repo.CreateOrder(ctx, first); err != nil {
		t.Fatalf("CreateOrder (first) failed: %v", err)
	}
	if err := repo.CreateOrder(ctx, second); err != nil {
		t.Fatalf("CreateOrder (second) failed: %v", err)
	}

	orders, err := repo.ListOrdersByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListOrdersByUser failed: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("got %d orders, want 2", len(orders))
	}
	if orders[0].ID != second.ID {
		t.Errorf("newest order should come first, got %q", orders[0].ID)
	}
}

func TestIntegrationOrderRepository_RollbackOnBadLine(t *testing.T) {
	ctx, repo := newTestEnv(t)
	user := mustCreateUser(t, ctx, repo)

	items, err := repo.ListMenuItems(ctx)
	if err != nil {
		t.Fatalf("ListMenuItems failed: %v", err)
	}

	// Second line violates the order_lines foreign key, so the whole
	// order must roll back.
	order := buildOrder(user.ID, items[0].ID, items[0].Price, 1)
	order.Lines = append(order.Lines, model.OrderLine{
		MenuItemID: 999999,
		Quantity:   1,
		UnitPrice:  100,
		LineTotal:  100,
	})

	if err := repo.CreateOrder(ctx, order); err == nil {
		t.Fatal("expected CreateOrder to fail")
	}

	orders, err := repo.ListOrdersByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListOrdersByUser failed: %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("partial order persisted: %d orders", len(orders))
	}
}

func buildOrder(userID string, menuItemID int64, unitPrice model.Cents, quantity int) *model.Order {
	lineTotal := unitPrice * model.Cents(quantity)
	return &model.Order{
		ID:     testutil.UniqueID("order"),
		UserID: userID,
		Lines: []model.OrderLine{
			{MenuItemID: menuItemID, Quantity: quantity, UnitPrice: unitPrice, LineTotal: lineTotal},
		},
		Total:     lineTotal,
		CreatedAt: time.Now().UTC(),
	}
}
