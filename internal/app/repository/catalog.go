package repository

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"orders-backend/internal/app/ds"
)

// Catalog позиции каталога товаров клиента (колонки A-D)
func (r *Repository) Catalog(ctx context.Context, storeID string) ([]ds.CatalogItem, error) {
	rows, err := r.store.ReadRange(ctx, storeID, ds.SheetCatalog+"!A2:D")
	if err != nil {
		return nil, err
	}

	items := make([]ds.CatalogItem, 0, len(rows))
	for _, raw := range rows {
		cell := func(i int) string {
			if i < len(raw) {
				return strings.TrimSpace(raw[i])
			}
			return ""
		}
		if cell(0) == "" {
			continue
		}
		items = append(items, ds.CatalogItem{
			ProductCode: cell(0),
			ProductName: cell(1),
			UnitPrice:   decodeDecimal(cell(2)),
			Category:    cell(3),
		})
	}
	return items, nil
}

// BranchSpending сумма утверждённых трат филиала за текущий месяц
func (r *Repository) BranchSpending(ctx context.Context, storeID, branch string) (decimal.Decimal, error) {
	lines, err := r.PreviousOrders(ctx, storeID, branch)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal)
	}
	return total, nil
}
