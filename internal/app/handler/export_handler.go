package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"orders-backend/internal/app/ds"
	"orders-backend/internal/app/dto"
	"orders-backend/internal/app/export"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportOrdersExcel выгрузка выбранных заказов в xlsx
// @Summary Экспорт заказов в Excel
// @Description Формирует xlsx-файл по перечисленным серийным номерам, пустой список означает все заказы
// @Tags Export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param username query string true "Имя пользователя"
// @Param serials query string false "Серийные номера через запятую"
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/exportOrdersExcel [get]
func (h *Handler) ExportOrdersExcel(c *gin.Context) {
	user, ok := h.userFromContext(c)
	if !ok {
		return
	}

	orders, err := h.Repository.StatusSummary(c.Request.Context(), user.BudgetSheetID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	if raw := c.Query("serials"); raw != "" {
		wanted := make(map[string]bool)
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				wanted[s] = true
			}
		}
		filtered := orders[:0]
		for _, o := range orders {
			if wanted[o.Serial] {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}

	h.sendWorkbook(c, orders, "orders.xlsx")
}

// ExportOrderExcel выгрузка одного заказа в xlsx
// @Summary Экспорт заказа в Excel
// @Description Формирует xlsx-файл по одному серийному номеру
// @Tags Export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param username query string true "Имя пользователя"
// @Param serial query string true "Серийный номер заказа"
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/exportOrderExcel [get]
func (h *Handler) ExportOrderExcel(c *gin.Context) {
	user, ok := h.userFromContext(c)
	if !ok {
		return
	}

	serial := c.Query("serial")
	if serial == "" {
		h.errorResponse(c, http.StatusBadRequest, "не указан серийный номер заказа")
		return
	}

	orders, err := h.Repository.StatusSummary(c.Request.Context(), user.BudgetSheetID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	selected := orders[:0]
	for _, o := range orders {
		if o.Serial == serial {
			selected = append(selected, o)
		}
	}

	h.sendWorkbook(c, selected, fmt.Sprintf("order_%s.xlsx", serial))
}

// sendWorkbook собирает книгу, отдаёт её клиенту и складывает копию в MinIO
func (h *Handler) sendWorkbook(c *gin.Context, orders []ds.Order, filename string) {
	buf, err := export.Workbook(orders)
	if err != nil {
		h.handleError(c, err)
		return
	}
	data := buf.Bytes()

	// архивная копия в MinIO, её недоступность не срывает выгрузку
	if h.MinIOClient != nil {
		objectName, err := h.MinIOClient.UploadExport(data)
		if err != nil {
			logrus.Warnf("export archive upload failed: %v", err)
		} else if url, err := h.MinIOClient.GetFileURL(objectName); err == nil {
			logrus.Infof("export archived: %s", url)
		}
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

func toLineResponses(lines []ds.OrderLine) []dto.OrderLineResponse {
	out := make([]dto.OrderLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.FromOrderLine(l))
	}
	return out
}

func toOrderResponses(orders []ds.Order) []dto.OrderResponse {
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, dto.FromOrder(o))
	}
	return out
}
