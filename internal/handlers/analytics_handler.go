package handlers

import (
	"net/http"

	"academy_backend/internal/services"
	"academy_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	*BaseHandler
	analyticsService services.AnalyticsService
}

func NewAnalyticsHandler(base *BaseHandler, analyticsService services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		BaseHandler:      base,
		analyticsService: analyticsService,
	}
}

// TrackEvent godoc
// @Summary Записать событие
// @Description Токен необязателен; если он есть, событие привязывается к пользователю
// @Tags analytics
// @Accept json
// @Produce json
// @Param request body dto.AnalyticsEventRequest true "Событие"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /analytics/event [post]
func (h *AnalyticsHandler) TrackEvent(c *gin.Context) {
	var req dto.AnalyticsEventRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.analyticsService.TrackEvent(c.Request.Context(), h.GetDB(c), h.CurrentUser(c), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK())
}

// GetDashboard godoc
// @Summary Сводка для админки
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.AnalyticsDashboard
// @Router /admin/analytics [get]
func (h *AnalyticsHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.analyticsService.GetDashboard(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
