package dto

import "academy_backend/internal/models"

// CheckoutHTTPRequest - тело (или query) запроса на оплату
type CheckoutHTTPRequest struct {
	ProgramID string `json:"program_id" form:"program_id"`
	ProductID string `json:"product_id" form:"product_id"`
	OriginURL string `json:"origin_url" form:"origin_url" validate:"required,url"`
}

// StartCheckoutRequest - вход оркестратора checkout
type StartCheckoutRequest struct {
	Kind       models.PaymentKind
	TargetID   string
	Requester  *models.User
	SuccessURL string
	CancelURL  string
}

type CheckoutResponse struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}

// PaymentStatusResponse - живой статус сессии у провайдера
type PaymentStatusResponse struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	AmountTotal   int64  `json:"amount_total"`
	Currency      string `json:"currency"`
}

// WebhookAck - ответ вебхуку, всегда с кодом 200
type WebhookAck struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// SweepResult - итог одного прохода фоновой сверки
type SweepResult struct {
	Checked int
	Applied int
	Failed  int
}
