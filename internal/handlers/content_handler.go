package handlers

import (
	"net/http"

	"academy_backend/internal/services"
	"academy_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// ContentHandler - FAQ, результаты учеников и настройки сайта
type ContentHandler struct {
	*BaseHandler
	contentService services.ContentService
}

func NewContentHandler(base *BaseHandler, contentService services.ContentService) *ContentHandler {
	return &ContentHandler{
		BaseHandler:    base,
		contentService: contentService,
	}
}

// --- FAQ ---

// ListFAQs godoc
// @Summary FAQ
// @Tags content
// @Produce json
// @Success 200 {array} models.FAQ
// @Router /faqs [get]
func (h *ContentHandler) ListFAQs(c *gin.Context) {
	faqs, err := h.contentService.ListFAQs(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, faqs)
}

// CreateFAQ godoc
// @Summary Создать вопрос
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.FAQRequest true "Вопрос"
// @Success 200 {object} models.FAQ
// @Router /admin/faqs [post]
func (h *ContentHandler) CreateFAQ(c *gin.Context) {
	var req dto.FAQRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	faq, err := h.contentService.CreateFAQ(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, faq)
}

// UpdateFAQ godoc
// @Summary Обновить вопрос
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID вопроса"
// @Param request body dto.FAQRequest true "Вопрос"
// @Success 200 {object} dto.SuccessResponse
// @Router /admin/faqs/{id} [put]
func (h *ContentHandler) UpdateFAQ(c *gin.Context) {
	var req dto.FAQRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.contentService.UpdateFAQ(c.Request.Context(), h.GetDB(c), c.Param("id"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK())
}

// DeleteFAQ godoc
// @Summary Удалить вопрос
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID вопроса"
// @Success 200 {object} dto.SuccessResponse
// @Router /admin/faqs/{id} [delete]
func (h *ContentHandler) DeleteFAQ(c *gin.Context) {
	if err := h.contentService.DeleteFAQ(c.Request.Context(), h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK())
}

// --- Results ---

// ListResults godoc
// @Summary Результаты учеников
// @Tags content
// @Produce json
// @Success 200 {array} models.Result
// @Router /results [get]
func (h *ContentHandler) ListResults(c *gin.Context) {
	results, err := h.contentService.ListResults(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// CreateResult godoc
// @Summary Добавить результат
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ResultRequest true "Результат"
// @Success 200 {object} models.Result
// @Router /admin/results [post]
func (h *ContentHandler) CreateResult(c *gin.Context) {
	var req dto.ResultRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.contentService.CreateResult(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// DeleteResult godoc
// @Summary Удалить результат
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID результата"
// @Success 200 {object} dto.SuccessResponse
// @Router /admin/results/{id} [delete]
func (h *ContentHandler) DeleteResult(c *gin.Context) {
	if err := h.contentService.DeleteResult(c.Request.Context(), h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK())
}

// --- Settings ---

// GetSettings godoc
// @Summary Настройки сайта
// @Description При первом чтении создаются настройки по умолчанию
// @Tags content
// @Produce json
// @Success 200 {object} models.SiteSettings
// @Router /settings [get]
func (h *ContentHandler) GetSettings(c *gin.Context) {
	settings, err := h.contentService.GetSettings(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings godoc
// @Summary Частичное обновление настроек
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SettingsUpdateRequest true "Изменяемые поля"
// @Success 200 {object} models.SiteSettings
// @Router /admin/settings [put]
func (h *ContentHandler) UpdateSettings(c *gin.Context) {
	var req dto.SettingsUpdateRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	settings, err := h.contentService.UpdateSettings(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
