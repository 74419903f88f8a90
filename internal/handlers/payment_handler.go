package handlers

import (
	"io"
	"net/http"

	"academy_backend/internal/logger"
	"academy_backend/internal/models"
	"academy_backend/internal/services"
	"academy_backend/internal/services/dto"
	"academy_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// Stripe присылает события заметно меньше этого лимита
const maxWebhookBodyBytes = 64 << 10

const stripeSignatureHeader = "Stripe-Signature"

type PaymentHandler struct {
	*BaseHandler
	checkoutService services.CheckoutService
	paymentService  services.PaymentService
}

func NewPaymentHandler(
	base *BaseHandler,
	checkoutService services.CheckoutService,
	paymentService services.PaymentService,
) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler:     base,
		checkoutService: checkoutService,
		paymentService:  paymentService,
	}
}

// CheckoutSubscription godoc
// @Summary Оплата подписки на программу
// @Description Параметры принимаются из query или из JSON тела
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param program_id query string true "ID программы"
// @Param origin_url query string true "Origin фронтенда для URL возврата"
// @Success 200 {object} dto.CheckoutResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Failure 502 {object} apperrors.ErrorResponse
// @Failure 503 {object} apperrors.ErrorResponse
// @Router /payments/checkout/subscription [post]
func (h *PaymentHandler) CheckoutSubscription(c *gin.Context) {
	h.checkout(c, models.PaymentKindSubscription)
}

// CheckoutProduct godoc
// @Summary Оплата товара из магазина
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product_id query string true "ID товара"
// @Param origin_url query string true "Origin фронтенда для URL возврата"
// @Success 200 {object} dto.CheckoutResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Failure 502 {object} apperrors.ErrorResponse
// @Router /payments/checkout/product [post]
func (h *PaymentHandler) CheckoutProduct(c *gin.Context) {
	h.checkout(c, models.PaymentKindProduct)
}

func (h *PaymentHandler) checkout(c *gin.Context, kind models.PaymentKind) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}

	var req dto.CheckoutHTTPRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Invalid query parameters: "+err.Error()))
		return
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.HandleServiceError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
			return
		}
	}
	if !h.validate(c, &req) {
		return
	}

	targetID, field := req.ProgramID, "program_id"
	if kind == models.PaymentKindProduct {
		targetID, field = req.ProductID, "product_id"
	}
	if targetID == "" {
		h.HandleServiceError(c, apperrors.ValidationError(map[string]string{field: "This field is required"}))
		return
	}

	successURL, cancelURL := services.CheckoutURLs(kind, req.OriginURL)
	resp, err := h.checkoutService.StartCheckout(c.Request.Context(), h.GetDB(c), &dto.StartCheckoutRequest{
		Kind:       kind,
		TargetID:   targetID,
		Requester:  user,
		SuccessURL: successURL,
		CancelURL:  cancelURL,
	})
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetStatus godoc
// @Summary Статус checkout-сессии
// @Description Если сессия оплачена, доступ выдается здесь же (один раз)
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param session_id path string true "ID сессии Stripe"
// @Success 200 {object} dto.PaymentStatusResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Failure 502 {object} apperrors.ErrorResponse
// @Router /payments/status/{session_id} [get]
func (h *PaymentHandler) GetStatus(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}

	status, err := h.paymentService.CheckStatus(c.Request.Context(), h.GetDB(c), c.Param("session_id"), user)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// GetHistory godoc
// @Summary История платежей текущего пользователя
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.PaymentTransaction
// @Router /payments/history [get]
func (h *PaymentHandler) GetHistory(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}

	history, err := h.paymentService.History(c.Request.Context(), h.GetDB(c), user)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// StripeWebhook godoc
// @Summary Вебхук Stripe
// @Description Всегда отвечает 200, чтобы Stripe не повторял доставку; ошибка передается в теле
// @Tags payments
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Подпись Stripe"
// @Success 200 {object} dto.WebhookAck
// @Router /webhook/stripe [post]
func (h *PaymentHandler) StripeWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		logger.CtxWithError(ctx, "Failed to read webhook body", err)
		c.JSON(http.StatusOK, dto.WebhookAck{Status: "error", Message: "Failed to read request body"})
		return
	}

	ack, err := h.paymentService.HandleWebhook(ctx, h.GetDB(c), payload, c.GetHeader(stripeSignatureHeader))
	if err != nil {
		message := err.Error()
		if appErr, ok := apperrors.AsAppError(err); ok {
			message = appErr.Message
		}
		logger.CtxWarn(ctx, "Stripe webhook rejected", "error", err.Error())
		c.JSON(http.StatusOK, dto.WebhookAck{Status: "error", Message: message})
		return
	}
	c.JSON(http.StatusOK, ack)
}
