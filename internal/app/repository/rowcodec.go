package repository

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"orders-backend/internal/app/ds"
)

// Текстовые форматы дат, встречающиеся в книгах клиентов
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02",
	"02.01.2006 15:04:05",
	"02.01.2006",
}

const dateLayout = "2006-01-02 15:04:05"

// Число больше этого порога считается датой в формате хранилища
// (количество дней от эпохи 1899-12-30)
const daySerialThreshold = 30000

var daySerialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// DecodeDate разбирает ячейку даты. Пустая или нечитаемая ячейка даёт
// нулевое время — такая строка отсекается всеми месячными фильтрами.
func DecodeDate(cell string) time.Time {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return time.Time{}
	}

	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		if f > daySerialThreshold {
			// полночь UTC соответствующего дня, дробная часть отбрасывается
			return daySerialEpoch.AddDate(0, 0, int(f))
		}
		return time.Time{}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t
		}
	}
	return time.Time{}
}

// IsCurrentMonth единственный временной фильтр системы: совпадение года
// и месяца с моментом запроса. Всё старше текущего месяца невидимо.
func IsCurrentMonth(t, now time.Time) bool {
	if t.IsZero() {
		return false
	}
	return t.Year() == now.Year() && t.Month() == now.Month()
}

// DecodeRow позиционное отображение строки листа (колонки A-K) в OrderLine.
// Недостающие хвостовые ячейки дают пустую строку или ноль.
func DecodeRow(raw []string, rowIndex int) ds.OrderLine {
	cell := func(i int) string {
		if i < len(raw) {
			return strings.TrimSpace(raw[i])
		}
		return ""
	}

	return ds.OrderLine{
		Date:        DecodeDate(cell(0)),
		Branch:      cell(1),
		RequestedBy: cell(2),
		ProductCode: cell(3),
		ProductName: cell(4),
		UnitPrice:   decodeDecimal(cell(5)),
		Subtotal:    decodeDecimal(cell(6)),
		Category:    cell(7),
		Quantity:    decodeInt(cell(8)),
		Reserved:    cell(9),
		Serial:      cell(10),
		RowIndex:    rowIndex,
	}
}

// EncodeRow обратное отображение, всегда ровно 11 значений
func EncodeRow(line ds.OrderLine) []string {
	date := ""
	if !line.Date.IsZero() {
		date = line.Date.Format(dateLayout)
	}
	return []string{
		date,
		line.Branch,
		line.RequestedBy,
		line.ProductCode,
		line.ProductName,
		line.UnitPrice.String(),
		line.Subtotal.String(),
		line.Category,
		strconv.Itoa(line.Quantity),
		line.Reserved,
		line.Serial,
	}
}

// BlankRow 11 пустых строк — затирание строки при переносе между листами
func BlankRow() []string {
	return make([]string, 11)
}

func decodeDecimal(cell string) decimal.Decimal {
	if cell == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cell)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func decodeInt(cell string) int {
	if cell == "" {
		return 0
	}
	n, err := strconv.Atoi(cell)
	if err != nil {
		// встречаются значения вида "3.0"
		if f, ferr := strconv.ParseFloat(cell, 64); ferr == nil {
			return int(f)
		}
		return 0
	}
	return n
}
