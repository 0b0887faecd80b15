package ds

import (
	"time"

	"github.com/shopspring/decimal"
)

// Метка, подставляемая в RequestedBy, когда строки заказа подали разные пользователи
const MultipleRequesters = "несколько пользователей"

// Order агрегат всех строк с одним серийным номером
type Order struct {
	Serial      string          `json:"serial"`
	BranchName  string          `json:"branchName"`
	Status      string          `json:"status"`
	RequestedBy string          `json:"requestedBy"`
	CreatedAt   time.Time       `json:"createdAt"`
	Total       decimal.Decimal `json:"total"`
	Items       []OrderLine     `json:"-"`
}

// BranchSummary сводка по филиалу для листа ожидания
type BranchSummary struct {
	Branch      string          `json:"branch"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	TotalQty    int             `json:"totalQty"`
	LineCount   int             `json:"lineCount"`
}

// CatalogItem позиция каталога товаров клиента
type CatalogItem struct {
	ProductCode string          `json:"productCode"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Category    string          `json:"category"`
}
