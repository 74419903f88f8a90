package paymentprovider

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"academy_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWebhookSecret = "whsec_test_secret"

type stripeBackend struct {
	mu       sync.Mutex
	requests []capturedRequest
	server   *httptest.Server
}

type capturedRequest struct {
	Method string
	Path   string
	Form   url.Values
}

func newStripeBackend(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *stripeBackend {
	t.Helper()
	b := &stripeBackend{}
	b.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		b.mu.Lock()
		b.requests = append(b.requests, capturedRequest{Method: r.Method, Path: r.URL.Path, Form: r.PostForm})
		b.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(b.server.Close)
	return b
}

func (b *stripeBackend) last() capturedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.requests[len(b.requests)-1]
}

func newTestProvider(t *testing.T, apiURL string) *StripeProvider {
	t.Helper()
	p, err := NewStripeProvider(StripeConfig{
		APIKey:        "sk_test_1234567890abcdef",
		WebhookSecret: testWebhookSecret,
		Timeout:       5 * time.Second,
		APIURL:        apiURL,
	})
	require.NoError(t, err)
	return p
}

func signPayload(payload []byte, secret string, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(fmt.Sprintf("%d.%s", ts.Unix(), payload)))
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func TestNewStripeProvider_RequiresKey(t *testing.T) {
	_, err := NewStripeProvider(StripeConfig{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestCreateCheckoutSession_Product(t *testing.T) {
	backend := newStripeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":"cs_test_1","object":"checkout.session","url":"https://checkout.stripe.com/c/pay/cs_test_1"}`)
	})
	p := newTestProvider(t, backend.server.URL)

	sess, err := p.CreateCheckoutSession(context.Background(), &CheckoutRequest{
		Kind:        models.PaymentKindProduct,
		Name:        "TikTok account",
		AmountMinor: ToMinorUnits(149.99),
		Currency:    "EUR",
		SuccessURL:  "https://academy.test/shop/success?session_id=" + SessionIDPlaceholder,
		CancelURL:   "https://academy.test/shop",
		Metadata: map[string]string{
			"user_id":    "u1",
			"product_id": "prod-1",
			"type":       "product",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "cs_test_1", sess.ID)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_1", sess.URL)

	req := backend.last()
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/v1/checkout/sessions", req.Path)
	assert.Equal(t, "payment", req.Form.Get("mode"))
	assert.Equal(t, "14999", req.Form.Get("line_items[0][price_data][unit_amount]"))
	assert.Equal(t, "eur", req.Form.Get("line_items[0][price_data][currency]"))
	assert.Equal(t, "TikTok account", req.Form.Get("line_items[0][price_data][product_data][name]"))
	assert.Empty(t, req.Form.Get("line_items[0][price_data][recurring][interval]"))
	assert.Equal(t, "u1", req.Form.Get("metadata[user_id]"))
	assert.Equal(t, "prod-1", req.Form.Get("metadata[product_id]"))
	assert.Equal(t, "product", req.Form.Get("metadata[type]"))
	assert.Equal(t, "u1", req.Form.Get("client_reference_id"))
}

func TestCreateCheckoutSession_Subscription(t *testing.T) {
	backend := newStripeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":"cs_test_sub","object":"checkout.session","url":"https://checkout.stripe.com/c/pay/cs_test_sub"}`)
	})
	p := newTestProvider(t, backend.server.URL)

	_, err := p.CreateCheckoutSession(context.Background(), &CheckoutRequest{
		Kind:        models.PaymentKindSubscription,
		Name:        "YouTube Monetizacija",
		AmountMinor: 3999,
		Currency:    "eur",
		SuccessURL:  "https://academy.test/dashboard",
		CancelURL:   "https://academy.test/programs",
	})
	require.NoError(t, err)

	req := backend.last()
	assert.Equal(t, "subscription", req.Form.Get("mode"))
	assert.Equal(t, "month", req.Form.Get("line_items[0][price_data][recurring][interval]"))
	assert.Equal(t, "3999", req.Form.Get("line_items[0][price_data][unit_amount]"))
	assert.Empty(t, req.Form.Get("line_items[0][price]"))
}

func TestCreateCheckoutSession_ProviderError(t *testing.T) {
	backend := newStripeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"type":"invalid_request_error","message":"Invalid currency: xyz"}}`)
	})
	p := newTestProvider(t, backend.server.URL)

	_, err := p.CreateCheckoutSession(context.Background(), &CheckoutRequest{
		Kind:        models.PaymentKindProduct,
		Name:        "x",
		AmountMinor: 100,
		Currency:    "xyz",
	})
	require.Error(t, err)
	assert.Equal(t, "Invalid currency: xyz", StripeErrorMessage(err))
}

func TestGetCheckoutSession(t *testing.T) {
	backend := newStripeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":"cs_test_1","object":"checkout.session","status":"complete","payment_status":"paid","amount_total":2999,"currency":"eur","metadata":{"user_id":"u1"}}`)
	})
	p := newTestProvider(t, backend.server.URL)

	status, err := p.GetCheckoutSession(context.Background(), "cs_test_1")
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, backend.last().Method)
	assert.Equal(t, "/v1/checkout/sessions/cs_test_1", backend.last().Path)
	assert.Equal(t, "complete", status.Status)
	assert.Equal(t, "paid", status.PaymentStatus)
	assert.Equal(t, int64(2999), status.AmountTotal)
	assert.Equal(t, "eur", status.Currency)
	assert.Equal(t, "u1", status.Metadata["user_id"])
	assert.True(t, status.IsPaid())
}

func TestCreateRecurringPrice(t *testing.T) {
	backend := newStripeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/products":
			fmt.Fprint(w, `{"id":"prod_1","object":"product"}`)
		case "/v1/prices":
			fmt.Fprint(w, `{"id":"price_1","object":"price"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"error":{"type":"invalid_request_error","message":"unknown path"}}`)
		}
	})
	p := newTestProvider(t, backend.server.URL)

	productID, priceID, err := p.CreateRecurringPrice(context.Background(), "Bundle", "", 5999, "EUR")
	require.NoError(t, err)
	assert.Equal(t, "prod_1", productID)
	assert.Equal(t, "price_1", priceID)

	req := backend.last()
	assert.Equal(t, "/v1/prices", req.Path)
	assert.Equal(t, "prod_1", req.Form.Get("product"))
	assert.Equal(t, "eur", req.Form.Get("currency"))
	assert.Equal(t, "5999", req.Form.Get("unit_amount"))
	assert.Equal(t, "month", req.Form.Get("recurring[interval]"))
}

func TestParseWebhook(t *testing.T) {
	p := newTestProvider(t, "http://127.0.0.1:1")
	payload := []byte(`{"id":"evt_1","object":"event","type":"checkout.session.completed","data":{"object":{"id":"cs_test_1","object":"checkout.session","payment_status":"paid","metadata":{"user_id":"u1","type":"subscription"}}}}`)

	t.Run("valid signature", func(t *testing.T) {
		event, err := p.ParseWebhook(payload, signPayload(payload, testWebhookSecret, time.Now()))
		require.NoError(t, err)
		assert.Equal(t, "evt_1", event.ID)
		assert.Equal(t, EventCheckoutCompleted, event.Type)
		assert.Equal(t, "cs_test_1", event.SessionID)
		assert.Equal(t, "u1", event.Metadata["user_id"])
		assert.True(t, event.IsPaidCheckout())
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := p.ParseWebhook(payload, signPayload(payload, "whsec_other", time.Now()))
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("modified body", func(t *testing.T) {
		sig := signPayload(payload, testWebhookSecret, time.Now())
		tampered := append([]byte{}, payload...)
		tampered[len(tampered)-3] = ' '
		_, err := p.ParseWebhook(tampered, sig)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("stale timestamp", func(t *testing.T) {
		_, err := p.ParseWebhook(payload, signPayload(payload, testWebhookSecret, time.Now().Add(-time.Hour)))
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("missing header", func(t *testing.T) {
		_, err := p.ParseWebhook(payload, "")
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("unrelated event is parsed but not paid", func(t *testing.T) {
		other := []byte(`{"id":"evt_2","object":"event","type":"customer.created","data":{"object":{"id":"cus_1","object":"customer"}}}`)
		event, err := p.ParseWebhook(other, signPayload(other, testWebhookSecret, time.Now()))
		require.NoError(t, err)
		assert.Equal(t, "customer.created", event.Type)
		assert.False(t, event.IsPaidCheckout())
	})
}

func TestParseWebhook_NoSecret(t *testing.T) {
	p, err := NewStripeProvider(StripeConfig{APIKey: "sk_test_1234567890abcdef"})
	require.NoError(t, err)

	_, err = p.ParseWebhook([]byte(`{}`), "t=1,v1=abc")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(2999), ToMinorUnits(29.99))
	assert.Equal(t, int64(3499), ToMinorUnits(34.99))
	assert.Equal(t, int64(5999), ToMinorUnits(59.99))
	assert.InDelta(t, 29.99, FromMinorUnits(2999), 1e-9)
}
