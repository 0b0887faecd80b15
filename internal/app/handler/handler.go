package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"orders-backend/internal/app/config"
	"orders-backend/internal/app/ds"
	"orders-backend/internal/app/dto"
	"orders-backend/internal/app/middleware"
	redisclient "orders-backend/internal/app/redis"
	"orders-backend/internal/app/repository"
	"orders-backend/internal/app/role"
	"orders-backend/internal/app/sheets"
	"orders-backend/internal/app/storage"
)

type Handler struct {
	Repository  *repository.Repository
	RedisClient *redisclient.Client
	MinIOClient *storage.MinIOClient
	Config      *config.Config
}

func NewHandler(r *repository.Repository, redisClient *redisclient.Client, minioClient *storage.MinIOClient, cfg *config.Config) *Handler {
	return &Handler{
		Repository:  r,
		RedisClient: redisClient,
		MinIOClient: minioClient,
		Config:      cfg,
	}
}

// RegisterStatic фолбэк на статическую страницу для всех прочих путей
func (h *Handler) RegisterStatic(router *gin.Engine) {
	router.Static("/static", "./static")
	router.NoRoute(func(c *gin.Context) {
		c.File("./static/index.html")
	})
}

// RegisterAPIRoutes регистрирует все REST API маршруты с авторизацией
func (h *Handler) RegisterAPIRoutes(router *gin.Engine, identity *middleware.Identity) {
	api := router.Group("/api")

	// Публичный эндпоинт входа
	api.POST("/validateLogin", h.ValidateLogin)

	// ============ Для любого разрешённого пользователя ============
	user := api.Group("", identity.WithUserCheck())
	{
		user.GET("/branchesForL2", h.BranchesForL2)
		user.GET("/loadOrderDataWithSpending", h.LoadOrderDataWithSpending)
		user.GET("/previousOrders", h.PreviousOrders)
		user.POST("/submitOrder", h.SubmitOrder)
		user.POST("/updatePreviousOrders", h.UpdatePreviousOrders)
	}

	// ============ Только для утверждающих (L2) ============
	l2 := api.Group("", identity.WithUserCheck(role.L2))
	{
		l2.GET("/approvalsSummary", h.ApprovalsSummary)
		l2.GET("/approvalDetails", h.ApprovalDetails)
		l2.POST("/approveBranchOrder", h.ApproveBranchOrder)
		l2.GET("/pendingOrders", h.PendingOrders)
		l2.POST("/approveOrder", h.ApproveOrder)
		l2.POST("/updateWaitingOrder", h.UpdateWaitingOrder)
		l2.POST("/cancelOrder", h.CancelOrder)

		// сводка по всем статусам и её исторические псевдонимы
		l2.GET("/ordersSummaryForL2", h.OrdersSummaryForL2)
		l2.GET("/ordersSummary", h.OrdersSummaryForL2)
		l2.GET("/allOrders", h.OrdersSummaryForL2)

		l2.GET("/orderDetailsForL2", h.OrderDetailsForL2)
		l2.GET("/orderDetails", h.OrderDetailsForL2)

		l2.GET("/exportOrdersExcel", h.ExportOrdersExcel)
		l2.GET("/exportOrderExcel", h.ExportOrderExcel)
	}

	// Ping эндпоинт для проверки
	router.GET("/ping", h.Ping)
}

// errorResponse централизованная отправка ошибки в формате {success, message}
func (h *Handler) errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{
		Success: false,
		Message: message,
	})
}

// handleError единая граница отказа: бизнес-ошибки переводятся в 400/403,
// всё неожиданное логируется и уходит наружу обезличенной 500
func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNoMatchingRows),
		errors.Is(err, repository.ErrAuthFailed),
		errors.Is(err, repository.ErrUserNotFound):
		h.errorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrForbidden):
		h.errorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, repository.ErrMissingConfiguration):
		logrus.Error(err)
		h.errorResponse(c, http.StatusInternalServerError, repository.ErrMissingConfiguration.Error())
	case errors.Is(err, sheets.ErrStoreUnavailable):
		logrus.Error(err)
		h.errorResponse(c, http.StatusInternalServerError, "хранилище данных недоступно")
	default:
		logrus.Error(err)
		h.errorResponse(c, http.StatusInternalServerError, "внутренняя ошибка сервера")
	}
}

// userFromContext пользователь запроса, положенный identity middleware
func (h *Handler) userFromContext(c *gin.Context) (*ds.UserInfo, bool) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		logrus.Warn("userInfo not found in context")
		h.errorResponse(c, http.StatusInternalServerError, "внутренняя ошибка сервера")
	}
	return user, ok
}

// Ping проверяет работоспособность API
// @Summary Проверка работоспособности
// @Description Возвращает простой ответ для проверки работы сервера
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (h *Handler) Ping(c *gin.Context) {
	c.JSON(200, gin.H{"message": "pong"})
}
