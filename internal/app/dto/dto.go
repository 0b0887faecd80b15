package dto

import (
	"github.com/shopspring/decimal"

	"orders-backend/internal/app/ds"
)

// ============ Общие структуры ============

// Все ответы об ошибке имеют форму {success:false, message:<текст>}
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ============ Аутентификация ============

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Success       bool   `json:"success"`
	Username      string `json:"username"`
	Level         string `json:"level"`
	Branch        string `json:"branch"`
	Restricted    bool   `json:"restricted"`
	PaperMode     bool   `json:"paperMode"`
	BudgetSheetID string `json:"budgetSheetId"`
}

// ============ Подача и правка заказов ============

type OrderItemRequest struct {
	ProductCode string          `json:"productCode" binding:"required"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity" binding:"gte=0"`
	Category    string          `json:"category"`
}

type SubmitOrderRequest struct {
	Username string             `json:"username" binding:"required"`
	Branch   string             `json:"branch" binding:"required"`
	Items    []OrderItemRequest `json:"items" binding:"required,dive"`
}

type SubmitOrderResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message,omitempty"`
	OrderSerial string `json:"orderSerial"`
}

type SerialActionRequest struct {
	Username string `json:"username" binding:"required"`
	Serial   string `json:"serial" binding:"required"`
}

type BranchActionRequest struct {
	Username string `json:"username" binding:"required"`
	Branch   string `json:"branch" binding:"required"`
}

type EditItemRequest struct {
	ProductCode string `json:"productCode" binding:"required"`
	Quantity    int    `json:"quantity"`
}

type UpdateWaitingOrderRequest struct {
	Username string            `json:"username" binding:"required"`
	Serial   string            `json:"serial" binding:"required"`
	Items    []EditItemRequest `json:"items" binding:"required,dive"`
}

type ReturnItemRequest struct {
	ProductCode string `json:"productCode"`
	Quantity    int    `json:"quantity"`
	Row         int    `json:"row"` // явный номер строки листа, 0 = поиск по филиалу и коду
}

type UpdatePreviousOrdersRequest struct {
	Username string              `json:"username" binding:"required"`
	Branch   string              `json:"branch" binding:"required"`
	Items    []ReturnItemRequest `json:"items" binding:"required,dive"`
}

// ============ Отчётность ============

type OrderLineResponse struct {
	Date        string          `json:"date"`
	Branch      string          `json:"branch"`
	RequestedBy string          `json:"requestedBy"`
	ProductCode string          `json:"productCode"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Category    string          `json:"category"`
	Quantity    int             `json:"quantity"`
	Serial      string          `json:"serial"`
	Row         int             `json:"row"`
}

type OrderResponse struct {
	Serial      string          `json:"serial"`
	Status      string          `json:"status"`
	Branch      string          `json:"branch"`
	RequestedBy string          `json:"requestedBy"`
	CreatedAt   string          `json:"createdAt"`
	Total       decimal.Decimal `json:"total"`
	LineCount   int             `json:"lineCount"`
}

type BranchesResponse struct {
	Success  bool     `json:"success"`
	Branches []string `json:"branches"`
}

type CatalogResponse struct {
	Success  bool             `json:"success"`
	Branch   string           `json:"branch"`
	Products []ds.CatalogItem `json:"products"`
	Spending decimal.Decimal  `json:"spending"`
}

type LinesResponse struct {
	Success bool                `json:"success"`
	Lines   []OrderLineResponse `json:"lines"`
}

type OrdersResponse struct {
	Success bool            `json:"success"`
	Orders  []OrderResponse `json:"orders"`
}

type SummaryResponse struct {
	Success  bool               `json:"success"`
	Branches []ds.BranchSummary `json:"branches"`
}

// FromOrderLine переводит доменную строку заказа в DTO
func FromOrderLine(l ds.OrderLine) OrderLineResponse {
	date := ""
	if !l.Date.IsZero() {
		date = l.Date.Format("2006-01-02 15:04:05")
	}
	return OrderLineResponse{
		Date:        date,
		Branch:      l.Branch,
		RequestedBy: l.RequestedBy,
		ProductCode: l.ProductCode,
		ProductName: l.ProductName,
		UnitPrice:   l.UnitPrice,
		Subtotal:    l.Subtotal,
		Category:    l.Category,
		Quantity:    l.Quantity,
		Serial:      l.Serial,
		Row:         l.RowIndex,
	}
}

// FromOrder переводит агрегат заказа в DTO
func FromOrder(o ds.Order) OrderResponse {
	created := ""
	if !o.CreatedAt.IsZero() {
		created = o.CreatedAt.Format("2006-01-02 15:04:05")
	}
	return OrderResponse{
		Serial:      o.Serial,
		Status:      o.Status,
		Branch:      o.BranchName,
		RequestedBy: o.RequestedBy,
		CreatedAt:   created,
		Total:       o.Total,
		LineCount:   len(o.Items),
	}
}
