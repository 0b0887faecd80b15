package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"orders-backend/internal/app/ds"
)

func TestBuildOrdersGroupsBySerial(t *testing.T) {
	t.Parallel()

	lines := []ds.OrderLine{
		waitingLine("AA1", "Филиал Север", "P-1", 5, "10"),
		waitingLine("AA2", "Филиал Юг", "P-2", 1, "3"),
		waitingLine("AA1", "Филиал Север", "P-3", 2, "7"),
	}

	orders := BuildOrders(lines, ds.StatusWaiting)
	if len(orders) != 2 {
		t.Fatalf("orders = %d, want 2", len(orders))
	}
	if orders[0].Serial != "AA1" || orders[1].Serial != "AA2" {
		t.Errorf("order serials = %q,%q", orders[0].Serial, orders[1].Serial)
	}
	if !orders[0].Total.Equal(decimal.NewFromInt(64)) {
		t.Errorf("AA1 total = %s, want 64", orders[0].Total)
	}
	if len(orders[0].Items) != 2 {
		t.Errorf("AA1 items = %d, want 2", len(orders[0].Items))
	}
	if orders[0].Status != ds.StatusWaiting {
		t.Errorf("status = %q", orders[0].Status)
	}
}

func TestBuildOrdersLegacyBranchGrouping(t *testing.T) {
	t.Parallel()

	// строки без серийного номера группируются по филиалу
	lines := []ds.OrderLine{
		waitingLine("", "Филиал Север", "P-1", 5, "10"),
		waitingLine("", "Филиал Север", "P-2", 1, "3"),
		waitingLine("", "Филиал Юг", "P-3", 2, "7"),
	}

	orders := BuildOrders(lines, ds.StatusWaiting)
	if len(orders) != 2 {
		t.Fatalf("orders = %d, want 2", len(orders))
	}
	for _, o := range orders {
		if o.Serial != "" {
			t.Errorf("legacy order must have empty serial, got %q", o.Serial)
		}
	}
}

func TestBuildOrdersMultipleRequesters(t *testing.T) {
	t.Parallel()

	a := waitingLine("AA1", "Филиал Север", "P-1", 5, "10")
	b := waitingLine("AA1", "Филиал Север", "P-2", 1, "3")
	b.RequestedBy = "petrov"

	orders := BuildOrders([]ds.OrderLine{a, b}, ds.StatusWaiting)
	if len(orders) != 1 {
		t.Fatalf("orders = %d, want 1", len(orders))
	}
	if orders[0].RequestedBy != ds.MultipleRequesters {
		t.Errorf("RequestedBy = %q, want sentinel", orders[0].RequestedBy)
	}
}

func TestBuildOrdersEarliestDate(t *testing.T) {
	t.Parallel()

	a := waitingLine("AA1", "Филиал Север", "P-1", 5, "10")
	b := waitingLine("AA1", "Филиал Север", "P-2", 1, "3")
	b.Date = a.Date.Add(-48 * time.Hour)

	orders := BuildOrders([]ds.OrderLine{a, b}, ds.StatusWaiting)
	if !orders[0].CreatedAt.Equal(b.Date) {
		t.Errorf("CreatedAt = %v, want earliest %v", orders[0].CreatedAt, b.Date)
	}
}

func TestBranchSummaries(t *testing.T) {
	t.Parallel()

	repo, store := newLedgerRepo()
	seedLine(store, ds.SheetWaiting, 2, waitingLine("AA1", "Филиал Север", "P-1", 5, "10"))
	seedLine(store, ds.SheetWaiting, 3, waitingLine("AA2", "Филиал Север", "P-2", 1, "3"))
	seedLine(store, ds.SheetWaiting, 4, waitingLine("AA3", "Филиал Юг", "P-3", 2, "7"))

	summaries, err := repo.BranchSummaries(context.Background(), testBudgetID)
	if err != nil {
		t.Fatalf("BranchSummaries: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("summaries = %d, want 2", len(summaries))
	}

	north := summaries[0]
	if north.Branch != "Филиал Север" {
		t.Fatalf("first branch = %q", north.Branch)
	}
	if !north.TotalAmount.Equal(decimal.NewFromInt(53)) {
		t.Errorf("north total = %s, want 53", north.TotalAmount)
	}
	if north.TotalQty != 6 || north.LineCount != 2 {
		t.Errorf("north qty/lines = %d/%d, want 6/2", north.TotalQty, north.LineCount)
	}
}

func TestPendingOrdersSerialRestoredWhenUnanimous(t *testing.T) {
	t.Parallel()

	repo, store := newLedgerRepo()
	// у Севера два серийных номера, у Юга один
	seedLine(store, ds.SheetWaiting, 2, waitingLine("AA1", "Филиал Север", "P-1", 5, "10"))
	seedLine(store, ds.SheetWaiting, 3, waitingLine("AA2", "Филиал Север", "P-2", 1, "3"))
	seedLine(store, ds.SheetWaiting, 4, waitingLine("AA3", "Филиал Юг", "P-3", 2, "7"))

	orders, err := repo.PendingOrders(context.Background(), testBudgetID)
	if err != nil {
		t.Fatalf("PendingOrders: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("orders = %d, want 2 (по одному на филиал)", len(orders))
	}

	byBranch := map[string]ds.Order{}
	for _, o := range orders {
		byBranch[o.BranchName] = o
	}
	if got := byBranch["Филиал Север"].Serial; got != "" {
		t.Errorf("north serial = %q, want empty (два разных номера)", got)
	}
	if got := byBranch["Филиал Юг"].Serial; got != "AA3" {
		t.Errorf("south serial = %q, want AA3", got)
	}
	if len(byBranch["Филиал Север"].Items) != 2 {
		t.Errorf("north items = %d, want 2", len(byBranch["Филиал Север"].Items))
	}
}

func TestStatusSummaryMergesSheets(t *testing.T) {
	t.Parallel()

	repo, store := newLedgerRepo()
	seedLine(store, ds.SheetWaiting, 2, waitingLine("AA1", "Филиал Север", "P-1", 5, "10"))
	seedLine(store, ds.SheetApproved, 2, waitingLine("AA2", "Филиал Север", "P-2", 1, "3"))
	seedLine(store, ds.SheetCancelled, 2, waitingLine("AA3", "Филиал Юг", "P-3", 2, "7"))

	orders, err := repo.StatusSummary(context.Background(), testBudgetID)
	if err != nil {
		t.Fatalf("StatusSummary: %v", err)
	}
	if len(orders) != 3 {
		t.Fatalf("orders = %d, want 3", len(orders))
	}

	statuses := map[string]string{}
	for _, o := range orders {
		statuses[o.Serial] = o.Status
	}
	if statuses["AA1"] != ds.StatusWaiting {
		t.Errorf("AA1 status = %q", statuses["AA1"])
	}
	if statuses["AA2"] != ds.StatusApproved {
		t.Errorf("AA2 status = %q", statuses["AA2"])
	}
	if statuses["AA3"] != ds.StatusCancelled {
		t.Errorf("AA3 status = %q", statuses["AA3"])
	}
}

func TestStatusSummarySameSerialTwoStatuses(t *testing.T) {
	t.Parallel()

	// частично утверждённый заказ виден двумя агрегатами
	repo, store := newLedgerRepo()
	seedLine(store, ds.SheetWaiting, 2, waitingLine("AA1", "Филиал Север", "P-1", 5, "10"))
	seedLine(store, ds.SheetApproved, 2, waitingLine("AA1", "Филиал Север", "P-2", 1, "3"))

	orders, err := repo.StatusSummary(context.Background(), testBudgetID)
	if err != nil {
		t.Fatalf("StatusSummary: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("orders = %d, want 2 (разные статусы не сливаются)", len(orders))
	}
}

func TestOrderDetailsBySerial(t *testing.T) {
	t.Parallel()

	repo, store := newLedgerRepo()
	seedLine(store, ds.SheetApproved, 2, waitingLine("AA1", "Филиал Север", "P-1", 5, "10"))
	seedLine(store, ds.SheetApproved, 3, waitingLine("AA2", "Филиал Север", "P-2", 1, "3"))

	lines, err := repo.OrderDetails(context.Background(), testBudgetID, "AA1", "", ds.StatusApproved)
	if err != nil {
		t.Fatalf("OrderDetails: %v", err)
	}
	if len(lines) != 1 || lines[0].ProductCode != "P-1" {
		t.Fatalf("lines = %+v, want single P-1", lines)
	}
}

func TestOrderDetailsByBranchDefaultsToWaiting(t *testing.T) {
	t.Parallel()

	repo, store := newLedgerRepo()
	seedLine(store, ds.SheetWaiting, 2, waitingLine("AA1", "Филиал Север", "P-1", 5, "10"))
	seedLine(store, ds.SheetWaiting, 3, waitingLine("AA2", "Филиал Юг", "P-2", 1, "3"))

	lines, err := repo.OrderDetails(context.Background(), testBudgetID, "", "Филиал Юг", "")
	if err != nil {
		t.Fatalf("OrderDetails: %v", err)
	}
	if len(lines) != 1 || lines[0].Serial != "AA2" {
		t.Fatalf("lines = %+v, want single AA2", lines)
	}
}
