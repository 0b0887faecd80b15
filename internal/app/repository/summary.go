package repository

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"orders-backend/internal/app/ds"
)

// BuildOrders группирует строки одного листа в агрегаты заказов.
// Ключ — серийный номер; строки без номера (устаревший поток)
// группируются по филиалу и могут смешивать логически разные заказы.
func BuildOrders(lines []ds.OrderLine, status string) []ds.Order {
	byKey := map[string]*ds.Order{}
	keys := []string{}

	for _, l := range lines {
		key := l.Serial
		if key == "" {
			key = "branch:" + l.Branch
		}

		order, ok := byKey[key]
		if !ok {
			order = &ds.Order{
				Serial:      l.Serial,
				BranchName:  l.Branch,
				Status:      status,
				RequestedBy: l.RequestedBy,
				CreatedAt:   l.Date,
				Total:       decimal.Zero,
			}
			byKey[key] = order
			keys = append(keys, key)
		}

		order.Total = order.Total.Add(l.Subtotal)
		order.Items = append(order.Items, l)
		if l.RequestedBy != order.RequestedBy {
			order.RequestedBy = ds.MultipleRequesters
		}
		if !l.Date.IsZero() && (order.CreatedAt.IsZero() || l.Date.Before(order.CreatedAt)) {
			order.CreatedAt = l.Date
		}
	}

	orders := make([]ds.Order, 0, len(keys))
	for _, key := range keys {
		orders = append(orders, *byKey[key])
	}
	sort.Slice(orders, func(i, j int) bool {
		if orders[i].Serial != orders[j].Serial {
			return orders[i].Serial < orders[j].Serial
		}
		return orders[i].BranchName < orders[j].BranchName
	})
	return orders
}

// BranchSummaries сводка листа ожидания по филиалам за текущий месяц
func (r *Repository) BranchSummaries(ctx context.Context, storeID string) ([]ds.BranchSummary, error) {
	lines, err := r.currentMonthLines(ctx, storeID, ds.SheetWaiting)
	if err != nil {
		return nil, err
	}

	byBranch := map[string]*ds.BranchSummary{}
	order := []string{}
	for _, l := range lines {
		s, ok := byBranch[l.Branch]
		if !ok {
			s = &ds.BranchSummary{Branch: l.Branch, TotalAmount: decimal.Zero}
			byBranch[l.Branch] = s
			order = append(order, l.Branch)
		}
		s.TotalAmount = s.TotalAmount.Add(l.Subtotal)
		s.TotalQty += l.Quantity
		s.LineCount++
	}

	sort.Strings(order)
	out := make([]ds.BranchSummary, 0, len(order))
	for _, b := range order {
		out = append(out, *byBranch[b])
	}
	return out, nil
}

// PendingOrders ожидающие строки, собранные в псевдозаказы по филиалам.
// Серийный номер у псевдозаказа остаётся, только если он един для всех
// строк филиала.
func (r *Repository) PendingOrders(ctx context.Context, storeID string) ([]ds.Order, error) {
	lines, err := r.currentMonthLines(ctx, storeID, ds.SheetWaiting)
	if err != nil {
		return nil, err
	}

	// группировка строго по филиалу: серийный номер стирается заранее
	// и восстанавливается после, если оказался единственным
	serialsByBranch := map[string]map[string]bool{}
	stripped := make([]ds.OrderLine, len(lines))
	for i, l := range lines {
		if serialsByBranch[l.Branch] == nil {
			serialsByBranch[l.Branch] = map[string]bool{}
		}
		if l.Serial != "" {
			serialsByBranch[l.Branch][l.Serial] = true
		}
		stripped[i] = l
		stripped[i].Serial = ""
	}

	orders := BuildOrders(stripped, ds.StatusWaiting)
	for i := range orders {
		if serials := serialsByBranch[orders[i].BranchName]; len(serials) == 1 {
			for s := range serials {
				orders[i].Serial = s
			}
		}
	}
	return orders, nil
}

// StatusSummary сводка по всем трём листам для панели L2. Заказы
// с одинаковым ключом (серийный номер, статус) сливаются: суммы
// складываются, податели объединяются.
func (r *Repository) StatusSummary(ctx context.Context, storeID string) ([]ds.Order, error) {
	merged := map[string]*ds.Order{}
	keys := []string{}

	for _, sheet := range []string{ds.SheetWaiting, ds.SheetApproved, ds.SheetCancelled} {
		lines, err := r.currentMonthLines(ctx, storeID, sheet)
		if err != nil {
			return nil, err
		}

		for _, o := range BuildOrders(lines, ds.SheetStatus(sheet)) {
			key := o.Serial + "|" + o.Status
			if o.Serial == "" {
				key = "branch:" + o.BranchName + "|" + o.Status
			}

			existing, ok := merged[key]
			if !ok {
				copied := o
				merged[key] = &copied
				keys = append(keys, key)
				continue
			}
			existing.Total = existing.Total.Add(o.Total)
			existing.Items = append(existing.Items, o.Items...)
			if existing.RequestedBy != o.RequestedBy {
				existing.RequestedBy = ds.MultipleRequesters
			}
			if !o.CreatedAt.IsZero() && (existing.CreatedAt.IsZero() || o.CreatedAt.Before(existing.CreatedAt)) {
				existing.CreatedAt = o.CreatedAt
			}
		}
	}

	out := make([]ds.Order, 0, len(keys))
	for _, key := range keys {
		out = append(out, *merged[key])
	}
	return out, nil
}

// OrderDetails строки одного заказа: по серийному номеру либо по филиалу,
// в пределах листа, соответствующего статусу
func (r *Repository) OrderDetails(ctx context.Context, storeID, serial, branch, status string) ([]ds.OrderLine, error) {
	lines, err := r.currentMonthLines(ctx, storeID, sheetForStatus(status))
	if err != nil {
		return nil, err
	}

	out := []ds.OrderLine{}
	for _, l := range lines {
		if serial != "" {
			if l.Serial == serial {
				out = append(out, l)
			}
			continue
		}
		if l.Branch == branch {
			out = append(out, l)
		}
	}
	return out, nil
}

func sheetForStatus(status string) string {
	switch status {
	case ds.StatusApproved:
		return ds.SheetApproved
	case ds.StatusCancelled:
		return ds.SheetCancelled
	default:
		return ds.SheetWaiting
	}
}
