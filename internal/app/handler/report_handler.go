package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"orders-backend/internal/app/dto"
)

// BranchesForL2 список филиалов клиента
// @Summary Филиалы клиента
// @Description Возвращает список филиалов, доступных клиенту пользователя
// @Tags Reports
// @Produce json
// @Param username query string true "Имя пользователя"
// @Success 200 {object} dto.BranchesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/branchesForL2 [get]
func (h *Handler) BranchesForL2(c *gin.Context) {
	user, ok := h.userFromContext(c)
	if !ok {
		return
	}

	branches, err := h.Repository.BranchesForClient(c.Request.Context(), user.Partition)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BranchesResponse{
		Success:  true,
		Branches: branches,
	})
}

// LoadOrderDataWithSpending каталог товаров и расходы филиала за месяц
// @Summary Каталог и расходы
// @Description Возвращает каталог товаров и сумму утверждённых расходов филиала за текущий месяц
// @Tags Reports
// @Produce json
// @Param username query string true "Имя пользователя"
// @Param branch query string false "Филиал, по умолчанию филиал пользователя"
// @Success 200 {object} dto.CatalogResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/loadOrderDataWithSpending [get]
func (h *Handler) LoadOrderDataWithSpending(c *gin.Context) {
	user, ok := h.userFromContext(c)
	if !ok {
		return
	}

	branch := c.Query("branch")
	if branch == "" {
		branch = user.Branch
	}

	products, err := h.Repository.Catalog(c.Request.Context(), user.BudgetSheetID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	spending, err := h.Repository.BranchSpending(c.Request.Context(), user.BudgetSheetID, branch)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CatalogResponse{
		Success:  true,
		Branch:   branch,
		Products: products,
		Spending: spending,
	})
}

// PreviousOrders утверждённые строки филиала за текущий месяц
// @Summary Предыдущие заказы
// @Description Возвращает утверждённые строки заказов филиала за текущий месяц
// @Tags Reports
// @Produce json
// @Param username query string true "Имя пользователя"
// @Param branch query string false "Филиал, по умолчанию филиал пользователя"
// @Success 200 {object} dto.LinesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/previousOrders [get]
func (h *Handler) PreviousOrders(c *gin.Context) {
	user, ok := h.userFromContext(c)
	if !ok {
		return
	}

	branch := c.Query("branch")
	if branch == "" {
		branch = user.Branch
	}

	lines, err := h.Repository.PreviousOrders(c.Request.Context(), user.BudgetSheetID, branch)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LinesResponse{
		Success: true,
		Lines:   toLineResponses(lines),
	})
}

// ApprovalsSummary сводка ожидающих заказов по филиалам
// @Summary Сводка на утверждение
// @Description Возвращает агрегаты ожидающих строк по филиалам за текущий месяц
// @Tags Approvals
// @Produce json
// @Param username query string true "Имя пользователя"
// @Success 200 {object} dto.SummaryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/approvalsSummary [get]
func (h *Handler) ApprovalsSummary(c *gin.Context) {
	user, ok := h.userFromContext(c)
	if !ok {
		return
	}

	branches, err := h.Repository.BranchSummaries(c.Request.Context(), user.BudgetSheetID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SummaryResponse{
		Success:  true,
		Branches: branches,
	})
}

// ApprovalDetails ожидающие строки одного филиала
// @Summary Детали на утверждение
// @Description Возвращает ожидающие строки заказов указанного филиала
// @Tags Approvals
// @Produce json
// @Param username query string true "Имя пользователя"
// @Param branch query string true "Филиал"
// @Success 200 {object} dto.LinesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/approvalDetails [get]
func (h *Handler) ApprovalDetails(c *gin.Context) {
	user, ok := h.userFromContext(c)
	if !ok {
		return
	}

	branch := c.Query("branch")
	if branch == "" {
		h.errorResponse(c, http.StatusBadRequest, "не указан филиал")
		return
	}

	lines, err := h.Repository.WaitingLinesForBranch(c.Request.Context(), user.BudgetSheetID, branch)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LinesResponse{
		Success: true,
		Lines:   toLineResponses(lines),
	})
}

// PendingOrders ожидающие заказы, сгруппированные по филиалам
// @Summary Ожидающие заказы
// @Description Возвращает ожидающие заказы, по одному агрегату на филиал
// @Tags Approvals
// @Produce json
// @Param username query string true "Имя пользователя"
// @Success 200 {object} dto.OrdersResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/pendingOrders [get]
func (h *Handler) PendingOrders(c *gin.Context) {
	user, ok := h.userFromContext(c)
	if !ok {
		return
	}

	orders, err := h.Repository.PendingOrders(c.Request.Context(), user.BudgetSheetID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OrdersResponse{
		Success: true,
		Orders:  toOrderResponses(orders),
	})
}

// OrdersSummaryForL2 сводка заказов по всем статусам
// @Summary Сводка всех заказов
// @Description Возвращает заказы трёх статусов за текущий месяц, сгруппированные по серийным номерам
// @Tags Approvals
// @Produce json
// @Param username query string true "Имя пользователя"
// @Success 200 {object} dto.OrdersResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/ordersSummaryForL2 [get]
func (h *Handler) OrdersSummaryForL2(c *gin.Context) {
	user, ok := h.userFromContext(c)
	if !ok {
		return
	}

	orders, err := h.Repository.StatusSummary(c.Request.Context(), user.BudgetSheetID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OrdersResponse{
		Success: true,
		Orders:  toOrderResponses(orders),
	})
}

// OrderDetailsForL2 строки одного заказа
// @Summary Детали заказа
// @Description Возвращает строки заказа по серийному номеру, филиалу или статусу
// @Tags Approvals
// @Produce json
// @Param username query string true "Имя пользователя"
// @Param serial query string false "Серийный номер заказа"
// @Param branch query string false "Филиал"
// @Param status query string false "Статус заказа"
// @Success 200 {object} dto.LinesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/orderDetailsForL2 [get]
func (h *Handler) OrderDetailsForL2(c *gin.Context) {
	user, ok := h.userFromContext(c)
	if !ok {
		return
	}

	serial := c.Query("serial")
	branch := c.Query("branch")
	status := c.Query("status")
	if serial == "" && branch == "" {
		h.errorResponse(c, http.StatusBadRequest, "не указан серийный номер или филиал")
		return
	}

	lines, err := h.Repository.OrderDetails(c.Request.Context(), user.BudgetSheetID, serial, branch, status)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LinesResponse{
		Success: true,
		Lines:   toLineResponses(lines),
	})
}
