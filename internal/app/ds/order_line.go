package ds

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLine одна строка заказа в книге клиента (колонки A-K)
type OrderLine struct {
	Date        time.Time       // A, нулевое время = дата отсутствует или нечитаема
	Branch      string          // B
	RequestedBy string          // C
	ProductCode string          // D, бизнес-ключ
	ProductName string          // E, денормализовано
	UnitPrice   decimal.Decimal // F
	Subtotal    decimal.Decimal // G, unitPrice * quantity, если не переопределён
	Category    string          // H
	Quantity    int             // I
	Reserved    string          // J, не используется
	Serial      string          // K, идентификатор заказа вида "AA13"

	// Номер строки на листе (1-based). Заполняется при чтении, не кодируется.
	RowIndex int
}
