package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"orders-backend/internal/app/ds"
)

func TestCatalog(t *testing.T) {
	t.Parallel()

	repo, store := newLedgerRepo()
	store.addSheet(testBudgetID, ds.SheetCatalog)
	store.seedRow(testBudgetID, ds.SheetCatalog, 1, []string{"Код товара", "Наименование", "Цена", "Категория"})
	store.seedRow(testBudgetID, ds.SheetCatalog, 2, []string{"P-1", "Бумага А4", "10.5", "канцелярия"})
	store.seedRow(testBudgetID, ds.SheetCatalog, 3, []string{"", "строка без кода", "1", ""})
	store.seedRow(testBudgetID, ds.SheetCatalog, 4, []string{"P-2", "Ручки", "не цена", "канцелярия"})

	items, err := repo.Catalog(context.Background(), testBudgetID)
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2 (строка без кода пропущена)", len(items))
	}
	if items[0].ProductCode != "P-1" || !items[0].UnitPrice.Equal(decimal.RequireFromString("10.5")) {
		t.Errorf("items[0] = %+v", items[0])
	}
	// нечитаемая цена декодируется в ноль
	if !items[1].UnitPrice.IsZero() {
		t.Errorf("items[1].UnitPrice = %s, want 0", items[1].UnitPrice)
	}
}

func TestBranchSpending(t *testing.T) {
	t.Parallel()

	repo, store := newLedgerRepo()
	seedLine(store, ds.SheetApproved, 2, waitingLine("AA1", "Филиал Север", "P-1", 5, "10"))
	seedLine(store, ds.SheetApproved, 3, waitingLine("AA2", "Филиал Север", "P-2", 1, "3.5"))
	seedLine(store, ds.SheetApproved, 4, waitingLine("AA3", "Филиал Юг", "P-3", 2, "7"))

	total, err := repo.BranchSpending(context.Background(), testBudgetID, "Филиал Север")
	if err != nil {
		t.Fatalf("BranchSpending: %v", err)
	}
	if !total.Equal(decimal.RequireFromString("53.5")) {
		t.Errorf("total = %s, want 53.5", total)
	}
}
