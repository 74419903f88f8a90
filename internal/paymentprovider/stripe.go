package paymentprovider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"academy_backend/internal/logger"
	"academy_backend/internal/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

type StripeConfig struct {
	APIKey        string
	WebhookSecret string
	Timeout       time.Duration
	// APIURL - переопределение адреса API (stripe-mock, тесты)
	APIURL string
}

// StripeProvider - Provider поверх stripe-go. Клиент потокобезопасен.
type StripeProvider struct {
	sc            *client.API
	webhookSecret string
}

func NewStripeProvider(cfg StripeConfig) (*StripeProvider, error) {
	if cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	backendCfg := &stripe.BackendConfig{
		HTTPClient:        &http.Client{Timeout: cfg.Timeout},
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelError},
	}
	if cfg.APIURL != "" {
		backendCfg.URL = stripe.String(strings.TrimRight(cfg.APIURL, "/"))
	}

	sc := &client.API{}
	sc.Init(cfg.APIKey, &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, backendCfg),
		Connect: stripe.GetBackendWithConfig(stripe.ConnectBackend, backendCfg),
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, backendCfg),
	})

	logger.Info("Stripe client initialized", "key_prefix", safePrefix(cfg.APIKey))
	return &StripeProvider{sc: sc, webhookSecret: cfg.WebhookSecret}, nil
}

func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, req *CheckoutRequest) (*CheckoutSession, error) {
	currency := strings.ToLower(req.Currency)

	lineItem := &stripe.CheckoutSessionLineItemParams{
		Quantity: stripe.Int64(1),
		PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency:   stripe.String(currency),
			UnitAmount: stripe.Int64(req.AmountMinor),
			ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name: stripe.String(req.Name),
			},
		},
	}
	if req.Description != "" {
		lineItem.PriceData.ProductData.Description = stripe.String(req.Description)
	}
	if req.Kind == models.PaymentKindSubscription {
		lineItem.PriceData.Recurring = &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
			Interval: stripe.String(string(stripe.PriceRecurringIntervalMonth)),
		}
	}

	mode := stripe.CheckoutSessionModePayment
	if req.Kind == models.PaymentKindSubscription {
		mode = stripe.CheckoutSessionModeSubscription
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(mode)),
		LineItems:  []*stripe.CheckoutSessionLineItemParams{lineItem},
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
		Metadata:   req.Metadata,
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}
	if uid := req.Metadata["user_id"]; uid != "" {
		params.ClientReferenceID = stripe.String(uid)
	}
	params.Context = ctx

	sess, err := p.sc.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout.session.create: %w", err)
	}

	return &CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

func (p *StripeProvider) GetCheckoutSession(ctx context.Context, sessionID string) (*SessionStatus, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := p.sc.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout.session.retrieve: %w", err)
	}

	return &SessionStatus{
		ID:            sess.ID,
		Status:        string(sess.Status),
		PaymentStatus: string(sess.PaymentStatus),
		AmountTotal:   sess.AmountTotal,
		Currency:      string(sess.Currency),
		Metadata:      sess.Metadata,
	}, nil
}

// ParseWebhook проверяет подпись по неизмененному телу запроса
func (p *StripeProvider) ParseWebhook(payload []byte, signature string) (*WebhookEvent, error) {
	if p.webhookSecret == "" {
		return nil, fmt.Errorf("%w: webhook secret is empty", ErrNotConfigured)
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, p.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	result := &WebhookEvent{ID: event.ID, Type: string(event.Type)}
	if !strings.HasPrefix(result.Type, "checkout.session.") || event.Data == nil {
		return result, nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal checkout.session: %w", err)
	}
	result.SessionID = sess.ID
	result.PaymentStatus = string(sess.PaymentStatus)
	result.Metadata = sess.Metadata

	return result, nil
}

// CreateRecurringPrice создает продукт и ежемесячную цену для программы
func (p *StripeProvider) CreateRecurringPrice(ctx context.Context, name, description string, amountMinor int64, currency string) (string, string, error) {
	productParams := &stripe.ProductParams{Name: stripe.String(name)}
	if description != "" {
		productParams.Description = stripe.String(description)
	}
	productParams.Context = ctx

	prod, err := p.sc.Products.New(productParams)
	if err != nil {
		return "", "", fmt.Errorf("stripe product.create: %w", err)
	}

	priceParams := &stripe.PriceParams{
		Product:    stripe.String(prod.ID),
		Currency:   stripe.String(strings.ToLower(currency)),
		UnitAmount: stripe.Int64(amountMinor),
		Recurring: &stripe.PriceRecurringParams{
			Interval: stripe.String(string(stripe.PriceRecurringIntervalMonth)),
		},
	}
	priceParams.Context = ctx

	pr, err := p.sc.Prices.New(priceParams)
	if err != nil {
		return prod.ID, "", fmt.Errorf("stripe price.create: %w", err)
	}

	return prod.ID, pr.ID, nil
}

// StripeErrorMessage достает текст ошибки Stripe для ответа клиенту
func StripeErrorMessage(err error) string {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
		return stripeErr.Msg
	}
	return err.Error()
}

// safePrefix - первые символы ключа для логов, никогда не весь ключ
func safePrefix(key string) string {
	if len(key) < 12 {
		return "***"
	}
	return key[:12]
}
