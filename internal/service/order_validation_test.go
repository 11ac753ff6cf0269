package service

import (
	"errors"
	"testing"

	"github.com/tableside/tableside/internal/model"
)

func TestValidateLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		lines   []OrderLineInput
		wantErr error
	}{
		{
			name:    "empty order",
			lines:   nil,
			wantErr: ErrNoLines,
		},
		{
			name:    "zero quantity",
			lines:   []OrderLineInput{{MenuItemID: 1, Quantity: 0}},
			wantErr: ErrInvalidQuantity,
		},
		{
			name:    "negative quantity",
			lines:   []OrderLineInput{{MenuItemID: 1, Quantity: -2}},
			wantErr: ErrInvalidQuantity,
		},
		{
			name:    "excessive quantity",
			lines:   []OrderLineInput{{MenuItemID: 1, Quantity: 101}},
			wantErr: ErrInvalidQuantity,
		},
		{
			name: "duplicate menu item",
			lines: []OrderLineInput{
				{MenuItemID: 1, Quantity: 1},
				{MenuItemID: 1, Quantity: 2},
			},
			wantErr: ErrDuplicateLine,
		},
		{
			name: "valid order",
			lines: []OrderLineInput{
				{MenuItemID: 1, Quantity: 2},
				{MenuItemID: 2, Quantity: 1},
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateLines(tt.lines)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateLines() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPriceLines(t *testing.T) {
	t.Parallel()

	menu := map[int64]*model.MenuItem{
		1: {ID: 1, Name: "Margherita Pizza", Price: 950},
		2: {ID: 2, Name: "Tiramisu", Price: 650},
	}

	t.Run("totals come from stored prices", func(t *testing.T) {
		lines := []OrderLineInput{
			{MenuItemID: 1, Quantity: 2},
			{MenuItemID: 2, Quantity: 1},
		}

		priced, total, err := priceLines(lines, menu)
		if err != nil {
			t.Fatalf("priceLines: %v", err)
		}

		if total != 2550 {
			t.Errorf("total = %s, want 25.50", total)
		}
		if len(priced) != 2 {
			t.Fatalf("expected 2 lines, got %d", len(priced))
		}
		if priced[0].LineTotal != 1900 {
			t.Errorf("line total = %s, want 19.00", priced[0].LineTotal)
		}
		if priced[0].UnitPrice != 950 {
			t.Errorf("unit price = %s, want 9.50", priced[0].UnitPrice)
		}
		if priced[0].Name != "Margherita Pizza" {
			t.Errorf("line name = %q", priced[0].Name)
		}
	})

	t.Run("unknown menu item", func(t *testing.T) {
		lines := []OrderLineInput{{MenuItemID: 999, Quantity: 1}}

		_, _, err := priceLines(lines, menu)
		if !errors.Is(err, ErrMenuItemNotFound) {
			t.Errorf("expected ErrMenuItemNotFound, got %v", err)
		}
	})
}
