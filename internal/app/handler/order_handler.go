package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"orders-backend/internal/app/dto"
	"orders-backend/internal/app/repository"
)

// SubmitOrder создаёт новый заказ
// @Summary Подача заказа
// @Description Создаёт заказ: от L1 в лист ожидания, от L2 сразу в утверждённые
// @Tags Orders
// @Accept json
// @Produce json
// @Param request body dto.SubmitOrderRequest true "Состав заказа"
// @Success 200 {object} dto.SubmitOrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/submitOrder [post]
func (h *Handler) SubmitOrder(c *gin.Context) {
	user, ok := h.userFromContext(c)
	if !ok {
		return
	}

	var request dto.SubmitOrderRequest
	if err := c.ShouldBindBodyWith(&request, binding.JSON); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "неверный состав заказа: "+err.Error())
		return
	}
	if len(request.Items) == 0 {
		h.errorResponse(c, http.StatusBadRequest, "состав заказа пуст")
		return
	}

	// L1 подаёт только за свой филиал
	if !repository.CanSubmitFor(user, request.Branch) {
		h.errorResponse(c, http.StatusForbidden, repository.ErrForbidden.Error())
		return
	}

	items := make([]repository.SubmitItem, 0, len(request.Items))
	for _, it := range request.Items {
		items = append(items, repository.SubmitItem{
			ProductCode: it.ProductCode,
			ProductName: it.ProductName,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
			Category:    it.Category,
		})
	}

	serial, err := h.Repository.SubmitOrder(c.Request.Context(), user.BudgetSheetID, user, request.Branch, items)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SubmitOrderResponse{
		Success:     true,
		Message:     "заказ принят",
		OrderSerial: serial,
	})
}

// ApproveOrder утверждает заказ по серийному номеру
// @Summary Утверждение заказа
// @Description Переносит ожидающие строки серийного номера в утверждённые
// @Tags Orders
// @Accept json
// @Produce json
// @Param request body dto.SerialActionRequest true "Серийный номер"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/approveOrder [post]
func (h *Handler) ApproveOrder(c *gin.Context) {
	h.serialAction(c, "заказ утверждён", h.Repository.ApproveSerial)
}

// CancelOrder отменяет заказ по серийному номеру
// @Summary Отмена заказа
// @Description Переносит ожидающие строки серийного номера в отменённые
// @Tags Orders
// @Accept json
// @Produce json
// @Param request body dto.SerialActionRequest true "Серийный номер"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/cancelOrder [post]
func (h *Handler) CancelOrder(c *gin.Context) {
	h.serialAction(c, "заказ отменён", h.Repository.CancelSerial)
}

// ApproveBranchOrder утверждает все ожидающие строки филиала (устаревший поток)
// @Summary Утверждение заказов филиала
// @Description Переносит все ожидающие строки филиала в утверждённые
// @Tags Orders
// @Accept json
// @Produce json
// @Param request body dto.BranchActionRequest true "Филиал"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/approveBranchOrder [post]
func (h *Handler) ApproveBranchOrder(c *gin.Context) {
	user, ok := h.userFromContext(c)
	if !ok {
		return
	}

	var request dto.BranchActionRequest
	if err := c.ShouldBindBodyWith(&request, binding.JSON); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "не указан филиал")
		return
	}

	moved, err := h.Repository.ApproveBranch(c.Request.Context(), user.BudgetSheetID, request.Branch)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Success: true,
		Message: "заказы филиала утверждены",
		Data:    gin.H{"movedLines": moved},
	})
}

// UpdateWaitingOrder правит количество позиций ожидающего заказа
// @Summary Правка ожидающего заказа
// @Description Перезаписывает количество и сумму по совпадениям (серийный номер, код товара)
// @Tags Orders
// @Accept json
// @Produce json
// @Param request body dto.UpdateWaitingOrderRequest true "Правки"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/updateWaitingOrder [post]
func (h *Handler) UpdateWaitingOrder(c *gin.Context) {
	user, ok := h.userFromContext(c)
	if !ok {
		return
	}

	var request dto.UpdateWaitingOrderRequest
	if err := c.ShouldBindBodyWith(&request, binding.JSON); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "неверные данные правки: "+err.Error())
		return
	}

	items := make([]repository.EditItem, 0, len(request.Items))
	for _, it := range request.Items {
		items = append(items, repository.EditItem{
			ProductCode: it.ProductCode,
			Quantity:    it.Quantity,
		})
	}

	updated, err := h.Repository.UpdateWaitingOrder(c.Request.Context(), user.BudgetSheetID, request.Serial, items)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Success: true,
		Message: "заказ обновлён",
		Data:    gin.H{"updatedLines": updated},
	})
}

// UpdatePreviousOrders правит утверждённые строки (возвраты)
// @Summary Правка утверждённых заказов
// @Description Перезаписывает количество и сумму утверждённых строк филиала
// @Tags Orders
// @Accept json
// @Produce json
// @Param request body dto.UpdatePreviousOrdersRequest true "Правки"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/updatePreviousOrders [post]
func (h *Handler) UpdatePreviousOrders(c *gin.Context) {
	user, ok := h.userFromContext(c)
	if !ok {
		return
	}

	var request dto.UpdatePreviousOrdersRequest
	if err := c.ShouldBindBodyWith(&request, binding.JSON); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "неверные данные правки: "+err.Error())
		return
	}

	items := make([]repository.ReturnItem, 0, len(request.Items))
	for _, it := range request.Items {
		items = append(items, repository.ReturnItem{
			ProductCode: it.ProductCode,
			Quantity:    it.Quantity,
			RowIndex:    it.Row,
		})
	}

	updated, err := h.Repository.UpdateApprovedOrder(c.Request.Context(), user.BudgetSheetID, request.Branch, items)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Success: true,
		Message: "заказы обновлены",
		Data:    gin.H{"updatedLines": updated},
	})
}

// serialAction общий каркас approve/cancel: разбор запроса, перенос строк, ответ
func (h *Handler) serialAction(c *gin.Context, okMessage string, move func(ctx context.Context, storeID, serial string) (int, error)) {
	user, ok := h.userFromContext(c)
	if !ok {
		return
	}

	var request dto.SerialActionRequest
	if err := c.ShouldBindBodyWith(&request, binding.JSON); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "не указан серийный номер заказа")
		return
	}

	moved, err := move(c.Request.Context(), user.BudgetSheetID, request.Serial)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Success: true,
		Message: okMessage,
		Data:    gin.H{"movedLines": moved},
	})
}
