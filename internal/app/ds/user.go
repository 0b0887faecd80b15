package ds

import "orders-backend/internal/app/role"

// UserInfo пользователь, найденный в мастер-книге учётных данных
type UserInfo struct {
	Username      string     `json:"username"`
	Branch        string     `json:"branch"`
	Restricted    bool       `json:"restricted"`
	Level         role.Level `json:"level"`
	PaperMode     bool       `json:"paperMode"`
	BudgetSheetID string     `json:"budgetSheetId"`
	Partition     string     `json:"-"` // вкладка клиента, в которой найден пользователь
}
