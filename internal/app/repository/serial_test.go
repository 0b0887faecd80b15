package repository

import (
	"context"
	"testing"

	"orders-backend/internal/app/ds"
)

const testBudgetID = "client-budget"

func TestNextSerialFresh(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.addSheet(testBudgetID, ds.SheetSerials)
	repo := New(store, "master")

	serial, err := repo.NextSerial(context.Background(), testBudgetID)
	if err != nil {
		t.Fatalf("NextSerial: %v", err)
	}
	if serial != "AA1" {
		t.Errorf("serial = %q, want AA1", serial)
	}
	if got := store.cell(testBudgetID, ds.SheetSerials, 2, 2); got != "AA1" {
		t.Errorf("counter cell = %q, want AA1", got)
	}
}

func TestNextSerialIncrement(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.addSheet(testBudgetID, ds.SheetSerials)
	store.setCell(testBudgetID, ds.SheetSerials, 2, 2, "AA13")
	repo := New(store, "master")

	serial, err := repo.NextSerial(context.Background(), testBudgetID)
	if err != nil {
		t.Fatalf("NextSerial: %v", err)
	}
	if serial != "AA14" {
		t.Errorf("serial = %q, want AA14", serial)
	}
}

func TestNextSerialBareNumber(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.addSheet(testBudgetID, ds.SheetSerials)
	store.setCell(testBudgetID, ds.SheetSerials, 2, 2, "7")
	repo := New(store, "master")

	serial, err := repo.NextSerial(context.Background(), testBudgetID)
	if err != nil {
		t.Fatalf("NextSerial: %v", err)
	}
	if serial != "AA8" {
		t.Errorf("serial = %q, want AA8", serial)
	}
}

func TestNextSerialGarbageRestartsFromZero(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.addSheet(testBudgetID, ds.SheetSerials)
	store.setCell(testBudgetID, ds.SheetSerials, 2, 2, "мусор")
	repo := New(store, "master")

	serial, err := repo.NextSerial(context.Background(), testBudgetID)
	if err != nil {
		t.Fatalf("NextSerial: %v", err)
	}
	if serial != "AA1" {
		t.Errorf("serial = %q, want AA1", serial)
	}
}

func TestParseSerial(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cell string
		want int
	}{
		{"AA13", 13},
		{"13", 13},
		{" AA5 ", 5},
		{"", 0},
		{"AA", 0},
		{"AA-2", 0},
		{"xyz", 0},
	}
	for _, tc := range tests {
		if got := parseSerial(tc.cell); got != tc.want {
			t.Errorf("parseSerial(%q) = %d, want %d", tc.cell, got, tc.want)
		}
	}
}
