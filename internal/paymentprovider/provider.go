package paymentprovider

import (
	"context"
	"errors"
	"math"

	"academy_backend/internal/models"
)

var (
	ErrNotConfigured    = errors.New("payment provider not configured")
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

// Event types, на которые реагирует сверка платежей
const (
	EventCheckoutCompleted             = "checkout.session.completed"
	EventCheckoutAsyncPaymentSucceeded = "checkout.session.async_payment_succeeded"

	PaymentStatusPaid = "paid"

	// Плейсхолдер, который провайдер подставляет в success_url
	SessionIDPlaceholder = "{CHECKOUT_SESSION_ID}"
)

// CheckoutRequest - параметры hosted checkout сессии
type CheckoutRequest struct {
	Kind        models.PaymentKind
	Name        string
	Description string
	// AmountMinor всегда уходит в price_data
	AmountMinor   int64
	Currency      string
	SuccessURL    string
	CancelURL     string
	CustomerEmail string
	Metadata      map[string]string
}

type CheckoutSession struct {
	ID  string
	URL string
}

// SessionStatus - живое состояние сессии у провайдера
type SessionStatus struct {
	ID            string
	Status        string
	PaymentStatus string
	AmountTotal   int64
	Currency      string
	Metadata      map[string]string
}

func (s *SessionStatus) IsPaid() bool {
	return s != nil && s.PaymentStatus == PaymentStatusPaid
}

type WebhookEvent struct {
	ID            string
	Type          string
	SessionID     string
	PaymentStatus string
	Metadata      map[string]string
}

// IsPaidCheckout - событие, после которого нужно выдать доступ
func (e *WebhookEvent) IsPaidCheckout() bool {
	if e == nil || e.SessionID == "" || e.PaymentStatus != PaymentStatusPaid {
		return false
	}
	return e.Type == EventCheckoutCompleted || e.Type == EventCheckoutAsyncPaymentSucceeded
}

// Provider - внешний платежный провайдер (Stripe)
type Provider interface {
	CreateCheckoutSession(ctx context.Context, req *CheckoutRequest) (*CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*SessionStatus, error)
	ParseWebhook(payload []byte, signature string) (*WebhookEvent, error)
	CreateRecurringPrice(ctx context.Context, name, description string, amountMinor int64, currency string) (productID, priceID string, err error)
}

// ToMinorUnits переводит цену в центы
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func FromMinorUnits(amount int64) float64 {
	return float64(amount) / 100
}
