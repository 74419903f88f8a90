package handlers

import (
	"net/http"

	"academy_backend/internal/services"
	"academy_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ShopHandler struct {
	*BaseHandler
	shopService services.ShopService
}

func NewShopHandler(base *BaseHandler, shopService services.ShopService) *ShopHandler {
	return &ShopHandler{
		BaseHandler: base,
		shopService: shopService,
	}
}

// ListProducts godoc
// @Summary Товары в наличии
// @Tags shop
// @Produce json
// @Param category query string false "Категория"
// @Success 200 {array} models.ShopProduct
// @Router /shop/products [get]
func (h *ShopHandler) ListProducts(c *gin.Context) {
	products, err := h.shopService.ListAvailable(c.Request.Context(), h.GetDB(c), c.Query("category"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct godoc
// @Summary Товар по ID
// @Tags shop
// @Produce json
// @Param id path string true "ID товара"
// @Success 200 {object} models.ShopProduct
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /shop/products/{id} [get]
func (h *ShopHandler) GetProduct(c *gin.Context) {
	product, err := h.shopService.Get(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// AdminListProducts godoc
// @Summary Все товары (админ)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.ShopProduct
// @Router /admin/shop/products [get]
func (h *ShopHandler) AdminListProducts(c *gin.Context) {
	products, err := h.shopService.ListAll(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// CreateProduct godoc
// @Summary Создать товар
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ProductRequest true "Товар"
// @Success 200 {object} models.ShopProduct
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /admin/shop/products [post]
func (h *ShopHandler) CreateProduct(c *gin.Context) {
	var req dto.ProductRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	product, err := h.shopService.Create(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// UpdateProduct godoc
// @Summary Обновить товар
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID товара"
// @Param request body dto.ProductRequest true "Товар"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /admin/shop/products/{id} [put]
func (h *ShopHandler) UpdateProduct(c *gin.Context) {
	var req dto.ProductRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.shopService.Update(c.Request.Context(), h.GetDB(c), c.Param("id"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK())
}

// DeleteProduct godoc
// @Summary Удалить товар
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID товара"
// @Success 200 {object} dto.SuccessResponse
// @Router /admin/shop/products/{id} [delete]
func (h *ShopHandler) DeleteProduct(c *gin.Context) {
	if err := h.shopService.Delete(c.Request.Context(), h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK())
}
