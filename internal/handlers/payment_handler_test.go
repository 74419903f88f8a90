package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"academy_backend/internal/models"
	"academy_backend/internal/services/dto"
	"academy_backend/internal/validator"
	"academy_backend/pkg/apperrors"
	"academy_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockPaymentService struct {
	mock.Mock
}

func (m *mockPaymentService) CheckStatus(ctx context.Context, db *gorm.DB, sessionID string, requester *models.User) (*dto.PaymentStatusResponse, error) {
	args := m.Called(sessionID, requester)
	resp, _ := args.Get(0).(*dto.PaymentStatusResponse)
	return resp, args.Error(1)
}

func (m *mockPaymentService) HandleWebhook(ctx context.Context, db *gorm.DB, payload []byte, signature string) (*dto.WebhookAck, error) {
	args := m.Called(string(payload), signature)
	ack, _ := args.Get(0).(*dto.WebhookAck)
	return ack, args.Error(1)
}

func (m *mockPaymentService) ApplyPaid(ctx context.Context, db *gorm.DB, sessionID string) (bool, error) {
	args := m.Called(sessionID)
	return args.Bool(0), args.Error(1)
}

func (m *mockPaymentService) History(ctx context.Context, db *gorm.DB, user *models.User) ([]models.PaymentTransaction, error) {
	args := m.Called(user)
	history, _ := args.Get(0).([]models.PaymentTransaction)
	return history, args.Error(1)
}

func (m *mockPaymentService) ReconcilePending(ctx context.Context, db *gorm.DB, from, to time.Time, limit int) (*dto.SweepResult, error) {
	args := m.Called(from, to, limit)
	res, _ := args.Get(0).(*dto.SweepResult)
	return res, args.Error(1)
}

type mockCheckoutService struct {
	mock.Mock
}

func (m *mockCheckoutService) StartCheckout(ctx context.Context, db *gorm.DB, req *dto.StartCheckoutRequest) (*dto.CheckoutResponse, error) {
	args := m.Called(req)
	resp, _ := args.Get(0).(*dto.CheckoutResponse)
	return resp, args.Error(1)
}

type paymentHandlerFixture struct {
	router   *gin.Engine
	payments *mockPaymentService
	checkout *mockCheckoutService
}

func newPaymentHandlerFixture(t *testing.T, user *models.User) *paymentHandlerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &paymentHandlerFixture{
		payments: &mockPaymentService{},
		checkout: &mockCheckoutService{},
	}
	h := NewPaymentHandler(NewBaseHandler(validator.MustNew()), f.checkout, f.payments)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(string(contextkeys.DBContextKey), (*gorm.DB)(nil))
		if user != nil {
			c.Set(string(contextkeys.CurrentUserKey), user)
		}
		c.Next()
	})
	r.POST("/webhook/stripe", h.StripeWebhook)
	r.POST("/payments/checkout/subscription", h.CheckoutSubscription)
	r.POST("/payments/checkout/product", h.CheckoutProduct)
	f.router = r

	t.Cleanup(func() {
		f.payments.AssertExpectations(t)
		f.checkout.AssertExpectations(t)
	})
	return f
}

func (f *paymentHandlerFixture) post(path, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeAck(t *testing.T, w *httptest.ResponseRecorder) dto.WebhookAck {
	t.Helper()
	var ack dto.WebhookAck
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ack))
	return ack
}

func TestStripeWebhook(t *testing.T) {
	const payload = `{"type":"checkout.session.completed"}`

	t.Run("valid event is acknowledged", func(t *testing.T) {
		f := newPaymentHandlerFixture(t, nil)
		f.payments.On("HandleWebhook", payload, "t=1,v1=abc").
			Return(&dto.WebhookAck{Status: "ok"}, nil).Once()

		w := f.post("/webhook/stripe", payload, map[string]string{"Stripe-Signature": "t=1,v1=abc"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ok", decodeAck(t, w).Status)
	})

	t.Run("bad signature is soft-acked with 200", func(t *testing.T) {
		f := newPaymentHandlerFixture(t, nil)
		f.payments.On("HandleWebhook", payload, "forged").
			Return(nil, apperrors.NewInvalidSignatureError(errors.New("no valid signature"))).Once()

		w := f.post("/webhook/stripe", payload, map[string]string{"Stripe-Signature": "forged"})

		assert.Equal(t, http.StatusOK, w.Code)
		ack := decodeAck(t, w)
		assert.Equal(t, "error", ack.Status)
		assert.Equal(t, "Invalid webhook signature", ack.Message)
	})

	t.Run("internal failure is still 200", func(t *testing.T) {
		f := newPaymentHandlerFixture(t, nil)
		f.payments.On("HandleWebhook", payload, "").
			Return(nil, apperrors.InternalError(errors.New("db down"))).Once()

		w := f.post("/webhook/stripe", payload, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "error", decodeAck(t, w).Status)
	})

	t.Run("oversized body never reaches the service", func(t *testing.T) {
		f := newPaymentHandlerFixture(t, nil)

		w := f.post("/webhook/stripe", strings.Repeat("x", maxWebhookBodyBytes+1), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "error", decodeAck(t, w).Status)
		f.payments.AssertNotCalled(t, "HandleWebhook", mock.Anything, mock.Anything)
	})
}

func TestCheckoutSubscription(t *testing.T) {
	user := &models.User{BaseModel: models.BaseModel{ID: "user-1"}, Email: "ana@example.com", Role: models.UserRoleUser}

	t.Run("query params build return urls", func(t *testing.T) {
		f := newPaymentHandlerFixture(t, user)
		f.checkout.On("StartCheckout", mock.MatchedBy(func(req *dto.StartCheckoutRequest) bool {
			return req.Kind == models.PaymentKindSubscription &&
				req.TargetID == "prog-1" &&
				req.Requester == user &&
				req.SuccessURL == "https://academy.example/dashboard?session_id={CHECKOUT_SESSION_ID}" &&
				req.CancelURL == "https://academy.example/programs"
		})).Return(&dto.CheckoutResponse{URL: "https://checkout.stripe.test/cs_1", SessionID: "cs_1"}, nil).Once()

		w := f.post("/payments/checkout/subscription?program_id=prog-1&origin_url=https://academy.example/", "", nil)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resp dto.CheckoutResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "cs_1", resp.SessionID)
	})

	t.Run("json body is accepted", func(t *testing.T) {
		f := newPaymentHandlerFixture(t, user)
		f.checkout.On("StartCheckout", mock.MatchedBy(func(req *dto.StartCheckoutRequest) bool {
			return req.Kind == models.PaymentKindProduct && req.TargetID == "prod-9"
		})).Return(&dto.CheckoutResponse{URL: "u", SessionID: "cs_2"}, nil).Once()

		w := f.post("/payments/checkout/product",
			`{"product_id":"prod-9","origin_url":"https://academy.example"}`,
			map[string]string{"Content-Type": "application/json"})

		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("missing target is a validation error", func(t *testing.T) {
		f := newPaymentHandlerFixture(t, user)

		w := f.post("/payments/checkout/subscription?origin_url=https://academy.example", "", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "program_id")
	})

	t.Run("missing origin is a validation error", func(t *testing.T) {
		f := newPaymentHandlerFixture(t, user)

		w := f.post("/payments/checkout/subscription?program_id=prog-1", "", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), string(apperrors.CodeValidationFailed))
	})

	t.Run("anonymous request is rejected", func(t *testing.T) {
		f := newPaymentHandlerFixture(t, nil)

		w := f.post("/payments/checkout/subscription?program_id=prog-1&origin_url=https://academy.example", "", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
