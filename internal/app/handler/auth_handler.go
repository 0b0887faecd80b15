package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"orders-backend/internal/app/dto"
)

// ValidateLogin аутентификация пользователя
// @Summary Вход в систему
// @Description Проверяет логин и пароль по клиентским вкладкам мастер-книги
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Данные для входа"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/validateLogin [post]
func (h *Handler) ValidateLogin(c *gin.Context) {
	var request dto.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "не указаны логин или пароль")
		return
	}

	user, err := h.Repository.Authenticate(c.Request.Context(), request.Username, request.Password)
	if err != nil {
		h.handleError(c, err)
		return
	}

	// прогреваем кэш, чтобы первый рабочий запрос не сканировал книгу заново
	if h.RedisClient != nil {
		if err := h.RedisClient.SetUserInfo(c.Request.Context(), user); err != nil {
			logrus.Warnf("user cache write failed for %s: %v", user.Username, err)
		}
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Success:       true,
		Username:      user.Username,
		Level:         string(user.Level),
		Branch:        user.Branch,
		Restricted:    user.Restricted,
		PaperMode:     user.PaperMode,
		BudgetSheetID: user.BudgetSheetID,
	})
}
