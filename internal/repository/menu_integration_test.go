//go:build integration

package repository

import (
	"errors"
	"testing"
)

func TestIntegrationMenuRepository_ListMenuItems(t *testing.T) {
	ctx, repo := newTestEnv(t)

	items, err := repo.ListMenuItems(ctx)
	if err != nil {
		t.Fatalf("ListMenuItems failed: %v", err)
	}
	if len(items) == 0 {
		t.Fatal("expected seeded menu items")
	}

	for _, item := range items {
		if item.Name == "" {
			t.Errorf("item %d has empty name", item.ID)
		}
		if item.Price <= 0 {
			t.Errorf("item %d has non-positive price %d", item.ID, item.Price)
		}
	}
}

func TestIntegrationMenuRepository_GetMenuItemByID(t *testing.T) {
	ctx, repo := newTestEnv(t)

	items, err := repo.ListMenuItems(ctx)
	if err != nil {
		t.Fatalf("ListMenuItems failed: %v", err)
	}

	want := items[0]
	got, err := repo.GetMenuItemByID(ctx, want.ID)
	if err != nil {
		t.Fatalf("GetMenuItemByID failed: %v", err)
	}

	if got.Name != want.Name {
		t.Errorf("Name mismatch: got %q, want %q", got.Name, want.Name)
	}
	if got.Price != want.Price {
		t.Errorf("Price mismatch: got %d, want %d", got.Price, want.Price)
	}
	// Tags come back as a TEXT[] column; nil and empty both mean no tags.
	if got.Tags == nil && len(want.Tags) > 0 {
		t.Error("Tags were dropped on single-item read")
	}
}

func TestIntegrationMenuRepository_GetMenuItemByID_NotFound(t *testing.T) {
	ctx, repo := newTestEnv(t)

	_, err := repo.GetMenuItemByID(ctx, 999999)
	if !errors.Is(err, ErrMenuItemNotFound) {
		t.Errorf("Expected ErrMenuItemNotFound, got: %v", err)
	}
}

func TestIntegrationMenuRepository_GetMenuItemsByIDs(t *testing.T) {
	ctx, repo := newTestEnv(t)

	items, err := repo.ListMenuItems(ctx)
	if err != nil {
		t.Fatalf("ListMenuItems failed: %v", err)
	}
	if len(items) < 2 {
		t.Fatal("need at least two seeded items")
	}

	ids := []int64{items[0].ID, items[1].ID, 999999}
	found, err := repo.GetMenuItemsByIDs(ctx, ids)
	if err != nil {
		t.Fatalf("GetMenuItemsByIDs failed: %v", err)
	}

	// Unknown IDs are simply absent, not an error.
	if len(found) != 2 {
		t.Fatalf("found %d items, want 2", len(found))
	}
	if _, ok := found[items[0].ID]; !ok {
		t.Errorf("missing item %d in result", items[0].ID)
	}
}
