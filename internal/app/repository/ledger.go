package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"orders-backend/internal/app/ds"
	"orders-backend/internal/app/role"
	"orders-backend/internal/app/sheets"
)

// SubmitItem позиция нового заказа
type SubmitItem struct {
	ProductCode string
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
	Category    string
}

// EditItem правка количества в ожидающем заказе
type EditItem struct {
	ProductCode string
	Quantity    int
}

// ReturnItem правка утверждённой строки (возврат). RowIndex > 0 адресует
// строку листа напрямую, иначе строка ищется по (филиал, код товара).
type ReturnItem struct {
	ProductCode string
	Quantity    int
	RowIndex    int
}

func lineRange(sheet string) string {
	return sheet + "!A2:K"
}

// scanSheet читает лист целиком и декодирует строки с их номерами
func (r *Repository) scanSheet(ctx context.Context, storeID, sheet string) ([]ds.OrderLine, error) {
	rows, err := r.store.ReadRange(ctx, storeID, lineRange(sheet))
	if err != nil {
		return nil, err
	}

	lines := make([]ds.OrderLine, 0, len(rows))
	for i, raw := range rows {
		lines = append(lines, DecodeRow(raw, i+2))
	}
	return lines, nil
}

// currentMonthLines строки листа, датированные текущим календарным
// месяцем на момент запроса. Всё остальное для журнала невидимо.
func (r *Repository) currentMonthLines(ctx context.Context, storeID, sheet string) ([]ds.OrderLine, error) {
	lines, err := r.scanSheet(ctx, storeID, sheet)
	if err != nil {
		return nil, err
	}

	now := r.now()
	out := lines[:0]
	for _, l := range lines {
		if IsCurrentMonth(l.Date, now) {
			out = append(out, l)
		}
	}
	return out, nil
}

// SubmitOrder создаёт заказ: генерирует серийный номер и дописывает строки
// в лист ожидания. Заказ от L2 попадает сразу в утверждённые, минуя
// согласование.
func (r *Repository) SubmitOrder(ctx context.Context, storeID string, user *ds.UserInfo, branch string, items []SubmitItem) (string, error) {
	serial, err := r.NextSerial(ctx, storeID)
	if err != nil {
		return "", err
	}

	now := r.now()
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		qty := item.Quantity
		if qty < 0 {
			qty = 0
		}
		line := ds.OrderLine{
			Date:        now,
			Branch:      branch,
			RequestedBy: user.Username,
			ProductCode: item.ProductCode,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.UnitPrice.Mul(decimal.NewFromInt(int64(qty))),
			Category:    item.Category,
			Quantity:    qty,
			Serial:      serial,
		}
		rows = append(rows, EncodeRow(line))
	}

	target := ds.SheetWaiting
	if user.Level == role.L2 {
		target = ds.SheetApproved
	}

	if _, err := r.store.Append(ctx, storeID, target, rows); err != nil {
		return "", err
	}

	logrus.Infof("order %s submitted by %s for branch %s (%d line(s), sheet %q)",
		serial, user.Username, branch, len(rows), target)
	return serial, nil
}

// ApproveSerial переносит все ожидающие строки серийного номера в
// утверждённые. Повторное утверждение не находит строк и возвращает
// ErrNoMatchingRows.
func (r *Repository) ApproveSerial(ctx context.Context, storeID, serial string) (int, error) {
	return r.moveWaiting(ctx, storeID, ds.SheetApproved, func(l ds.OrderLine) bool {
		return l.Serial == serial
	})
}

// CancelSerial тот же перенос, но в лист отменённых
func (r *Repository) CancelSerial(ctx context.Context, storeID, serial string) (int, error) {
	return r.moveWaiting(ctx, storeID, ds.SheetCancelled, func(l ds.OrderLine) bool {
		return l.Serial == serial
	})
}

// ApproveBranch устаревший поток: утверждает все ожидающие строки филиала
// разом, независимо от серийных номеров
func (r *Repository) ApproveBranch(ctx context.Context, storeID, branch string) (int, error) {
	return r.moveWaiting(ctx, storeID, ds.SheetApproved, func(l ds.OrderLine) bool {
		return l.Branch == branch
	})
}

// moveWaiting перенос-с-затиранием: строки копируются на целевой лист,
// затем исходные перезаписываются пустыми ячейками. Физического удаления
// нет — позиции чужих строк сохраняются. Два сетевых вызова без
// транзакции: сбой между ними оставляет заказ в обоих листах.
func (r *Repository) moveWaiting(ctx context.Context, storeID, target string, match func(ds.OrderLine) bool) (int, error) {
	lines, err := r.currentMonthLines(ctx, storeID, ds.SheetWaiting)
	if err != nil {
		return 0, err
	}

	moved := [][]string{}
	clears := []rowClear{}
	for _, l := range lines {
		if !match(l) {
			continue
		}
		moved = append(moved, EncodeRow(l))
		clears = append(clears, rowClear{sheet: ds.SheetWaiting, row: l.RowIndex})
	}
	if len(moved) == 0 {
		return 0, ErrNoMatchingRows
	}

	if _, err := r.store.Append(ctx, storeID, target, moved); err != nil {
		return 0, err
	}
	if err := r.clearRows(ctx, storeID, clears); err != nil {
		return 0, err
	}

	logrus.Infof("moved %d line(s) %q -> %q in %s", len(moved), ds.SheetWaiting, target, storeID)
	return len(moved), nil
}

// UpdateWaitingOrder правит количество позиций ожидающего заказа.
// Для каждого совпадения (серийный номер, код товара) перезаписываются
// только ячейки количества (I) и суммы (G); количество не опускается
// ниже нуля, сумма пересчитывается от цены за единицу.
func (r *Repository) UpdateWaitingOrder(ctx context.Context, storeID, serial string, items []EditItem) (int, error) {
	lines, err := r.currentMonthLines(ctx, storeID, ds.SheetWaiting)
	if err != nil {
		return 0, err
	}

	updates := []cellUpdate{}
	for _, item := range items {
		qty := item.Quantity
		if qty < 0 {
			qty = 0
		}
		for _, l := range lines {
			if l.Serial != serial || l.ProductCode != item.ProductCode {
				continue
			}
			subtotal := l.UnitPrice.Mul(decimal.NewFromInt(int64(qty)))
			updates = append(updates, cellUpdate{sheet: ds.SheetWaiting, row: l.RowIndex, qty: qty, subtotal: subtotal})
		}
	}
	if len(updates) == 0 {
		return 0, ErrNoMatchingRows
	}

	return len(updates), r.writeQtyUpdates(ctx, storeID, updates)
}

// UpdateApprovedOrder правка утверждённых строк (возвраты). Строка
// адресуется явным номером, а при его отсутствии ищется по
// (филиал, код товара) — при дублях побеждает последняя.
func (r *Repository) UpdateApprovedOrder(ctx context.Context, storeID, branch string, items []ReturnItem) (int, error) {
	lines, err := r.currentMonthLines(ctx, storeID, ds.SheetApproved)
	if err != nil {
		return 0, err
	}

	updates := []cellUpdate{}
	for _, item := range items {
		var target *ds.OrderLine
		for i := range lines {
			l := &lines[i]
			if item.RowIndex > 0 {
				if l.RowIndex == item.RowIndex {
					target = l
				}
			} else if l.Branch == branch && l.ProductCode == item.ProductCode {
				target = l
			}
		}
		if target == nil {
			continue
		}

		qty := item.Quantity
		if qty < 0 {
			qty = 0
		}
		subtotal := target.UnitPrice.Mul(decimal.NewFromInt(int64(qty)))
		updates = append(updates, cellUpdate{sheet: ds.SheetApproved, row: target.RowIndex, qty: qty, subtotal: subtotal})
	}
	if len(updates) == 0 {
		return 0, ErrNoMatchingRows
	}

	return len(updates), r.writeQtyUpdates(ctx, storeID, updates)
}

// PreviousOrders утверждённые строки филиала за текущий месяц
func (r *Repository) PreviousOrders(ctx context.Context, storeID, branch string) ([]ds.OrderLine, error) {
	return r.branchLines(ctx, storeID, ds.SheetApproved, branch)
}

// WaitingLinesForBranch ожидающие строки филиала за текущий месяц
func (r *Repository) WaitingLinesForBranch(ctx context.Context, storeID, branch string) ([]ds.OrderLine, error) {
	return r.branchLines(ctx, storeID, ds.SheetWaiting, branch)
}

func (r *Repository) branchLines(ctx context.Context, storeID, sheet, branch string) ([]ds.OrderLine, error) {
	lines, err := r.currentMonthLines(ctx, storeID, sheet)
	if err != nil {
		return nil, err
	}
	out := []ds.OrderLine{}
	for _, l := range lines {
		if l.Branch == branch {
			out = append(out, l)
		}
	}
	return out, nil
}

type rowClear struct {
	sheet string
	row   int
}

type cellUpdate struct {
	sheet    string
	row      int
	qty      int
	subtotal decimal.Decimal
}

func (r *Repository) clearRows(ctx context.Context, storeID string, clears []rowClear) error {
	writes := make([]sheets.RangeWrite, 0, len(clears))
	for _, c := range clears {
		writes = append(writes, sheets.RangeWrite{
			Range: fmt.Sprintf("%s!A%d", c.sheet, c.row),
			Rows:  [][]string{BlankRow()},
		})
	}
	return r.store.BatchWrite(ctx, storeID, writes)
}

func (r *Repository) writeQtyUpdates(ctx context.Context, storeID string, updates []cellUpdate) error {
	writes := make([]sheets.RangeWrite, 0, len(updates)*2)
	for _, u := range updates {
		writes = append(writes,
			sheets.RangeWrite{
				Range: fmt.Sprintf("%s!G%d", u.sheet, u.row),
				Rows:  [][]string{{u.subtotal.String()}},
			},
			sheets.RangeWrite{
				Range: fmt.Sprintf("%s!I%d", u.sheet, u.row),
				Rows:  [][]string{{fmt.Sprintf("%d", u.qty)}},
			},
		)
	}
	return r.store.BatchWrite(ctx, storeID, writes)
}
