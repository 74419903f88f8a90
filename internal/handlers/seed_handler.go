package handlers

import (
	"net/http"

	"academy_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type SeedHandler struct {
	*BaseHandler
	seedService services.SeedService
}

func NewSeedHandler(base *BaseHandler, seedService services.SeedService) *SeedHandler {
	return &SeedHandler{
		BaseHandler: base,
		seedService: seedService,
	}
}

// Seed godoc
// @Summary Заполнить демо-данными
// @Description Повторный вызов обновляет те же записи, а не создает дубли
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Router /admin/seed [post]
func (h *SeedHandler) Seed(c *gin.Context) {
	resp, err := h.seedService.Seed(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
