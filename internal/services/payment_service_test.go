package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"academy_backend/internal/email"
	"academy_backend/internal/models"
	"academy_backend/internal/paymentprovider"
	"academy_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type paymentFixture struct {
	users    *fakeUserRepo
	programs *fakeProgramRepo
	shop     *fakeShopRepo
	payments *fakePaymentRepo
	provider *mockProvider
	svc      PaymentService

	user    *models.User
	program *models.Program
	product *models.ShopProduct
}

func newPaymentFixture(t *testing.T, mailer *email.Mailer) *paymentFixture {
	t.Helper()

	f := &paymentFixture{
		users:    newFakeUserRepo(),
		program:  &models.Program{Name: "TikTok Monetizacija", Price: 29.99, Currency: "EUR", IsActive: true},
		product:  &models.ShopProduct{Title: "TikTok nalog", Category: "tiktok", Price: 149.99, Currency: "EUR", IsAvailable: true},
		payments: newFakePaymentRepo(),
		provider: &mockProvider{},
	}
	f.programs = newFakeProgramRepo(f.program)
	f.shop = newFakeShopRepo(f.product)

	f.user = &models.User{Email: "buyer@x.com", Name: "Buyer"}
	require.NoError(t, f.users.Create(nil, f.user))

	f.svc = NewPaymentService(f.payments, f.users, f.programs, f.shop, fakeTxManager{}, f.provider, mailer)
	return f
}

func (f *paymentFixture) pending(t *testing.T, sessionID string, kind models.PaymentKind) {
	t.Helper()
	txn := &models.PaymentTransaction{
		SessionID: sessionID,
		UserID:    f.user.ID,
		Kind:      kind,
		Currency:  "EUR",
	}
	if kind == models.PaymentKindSubscription {
		txn.ProgramID = &f.program.ID
		txn.Amount = f.program.Price
	} else {
		txn.ProductID = &f.product.ID
		txn.Amount = f.product.Price
	}
	require.NoError(t, f.payments.Create(nil, txn))
}

func TestApplyPaid_Idempotent(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture(t, nil)
	f.pending(t, "cs_1", models.PaymentKindSubscription)

	applied, err := f.svc.ApplyPaid(ctx, nil, "cs_1")
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = f.svc.ApplyPaid(ctx, nil, "cs_1")
	require.NoError(t, err)
	assert.False(t, applied)

	user, err := f.users.FindByID(nil, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{f.program.ID}, []string(user.Subscriptions))

	txn, err := f.payments.FindBySessionID(nil, "cs_1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, txn.PaymentStatus)
	assert.NotNil(t, txn.PaidAt)
}

func TestApplyPaid_ConcurrentCallsGrantOnce(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture(t, nil)
	f.pending(t, "cs_race", models.PaymentKindSubscription)

	const workers = 16
	var (
		wg      sync.WaitGroup
		applied atomic.Int32
		start   = make(chan struct{})
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			ok, err := f.svc.ApplyPaid(ctx, nil, "cs_race")
			assert.NoError(t, err)
			if ok {
				applied.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), applied.Load())

	user, err := f.users.FindByID(nil, f.user.ID)
	require.NoError(t, err)
	assert.Len(t, user.Subscriptions, 1)
}

func TestApplyPaid_ProductMarksSold(t *testing.T) {
	f := newPaymentFixture(t, nil)
	f.pending(t, "cs_prod", models.PaymentKindProduct)

	applied, err := f.svc.ApplyPaid(context.Background(), nil, "cs_prod")
	require.NoError(t, err)
	assert.True(t, applied)

	product, err := f.shop.FindByID(nil, f.product.ID)
	require.NoError(t, err)
	assert.False(t, product.IsAvailable)

	user, err := f.users.FindByID(nil, f.user.ID)
	require.NoError(t, err)
	assert.Empty(t, user.Subscriptions)
}

func TestApplyPaid_TargetGoneStillMarksPaid(t *testing.T) {
	tests := []struct {
		name   string
		kind   models.PaymentKind
		remove func(f *paymentFixture)
	}{
		{
			name: "deleted product",
			kind: models.PaymentKindProduct,
			remove: func(f *paymentFixture) {
				require.NoError(t, f.shop.Delete(nil, f.product.ID))
			},
		},
		{
			name: "deleted user",
			kind: models.PaymentKindSubscription,
			remove: func(f *paymentFixture) {
				f.users.mu.Lock()
				delete(f.users.users, f.user.ID)
				f.users.mu.Unlock()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPaymentFixture(t, nil)
			f.svc = NewPaymentService(f.payments, f.users, f.programs, f.shop, rollbackTxManager{payments: f.payments}, f.provider, nil)
			f.pending(t, "cs_gone", tt.kind)
			tt.remove(f)

			applied, err := f.svc.ApplyPaid(context.Background(), nil, "cs_gone")
			require.NoError(t, err)
			assert.True(t, applied)

			txn, err := f.payments.FindBySessionID(nil, "cs_gone")
			require.NoError(t, err)
			assert.Equal(t, models.PaymentStatusPaid, txn.PaymentStatus)
			assert.NotNil(t, txn.PaidAt)
		})
	}
}

func TestApplyPaid_GrantFailureRollsBack(t *testing.T) {
	f := newPaymentFixture(t, nil)
	f.svc = NewPaymentService(f.payments, f.users, f.programs, f.shop, rollbackTxManager{payments: f.payments}, f.provider, nil)
	f.pending(t, "cs_bad", models.PaymentKind("gift"))

	_, err := f.svc.ApplyPaid(context.Background(), nil, "cs_bad")
	require.Error(t, err)

	txn, err := f.payments.FindBySessionID(nil, "cs_bad")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, txn.PaymentStatus)
}

func TestApplyPaid_UnknownSession(t *testing.T) {
	f := newPaymentFixture(t, nil)

	_, err := f.svc.ApplyPaid(context.Background(), nil, "cs_missing")
	assert.ErrorIs(t, err, apperrors.ErrTransactionNotFound)
}

type chanSender struct {
	sent chan *email.Email
}

func (s *chanSender) Send(e *email.Email) error {
	s.sent <- e
	return nil
}

func TestApplyPaid_SendsReceipt(t *testing.T) {
	sender := &chanSender{sent: make(chan *email.Email, 1)}
	f := newPaymentFixture(t, email.NewMailer(sender, "Continental Academy"))
	f.pending(t, "cs_mail", models.PaymentKindSubscription)

	applied, err := f.svc.ApplyPaid(context.Background(), nil, "cs_mail")
	require.NoError(t, err)
	require.True(t, applied)

	select {
	case msg := <-sender.sent:
		assert.Equal(t, []string{"buyer@x.com"}, msg.To)
		assert.Contains(t, msg.HTMLBody, "TikTok Monetizacija")
		assert.Contains(t, msg.HTMLBody, "29.99")
	case <-time.After(2 * time.Second):
		t.Fatal("receipt was not sent")
	}
}

func TestCheckStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("paid session grants access and returns live status", func(t *testing.T) {
		f := newPaymentFixture(t, nil)
		f.pending(t, "cs_poll", models.PaymentKindSubscription)
		f.provider.On("GetCheckoutSession", mock.Anything, "cs_poll").Return(&paymentprovider.SessionStatus{
			ID: "cs_poll", Status: "complete", PaymentStatus: "paid", AmountTotal: 2999, Currency: "eur",
		}, nil)

		resp, err := f.svc.CheckStatus(ctx, nil, "cs_poll", f.user)
		require.NoError(t, err)
		assert.Equal(t, "complete", resp.Status)
		assert.Equal(t, "paid", resp.PaymentStatus)
		assert.Equal(t, int64(2999), resp.AmountTotal)
		assert.Equal(t, "eur", resp.Currency)

		user, err := f.users.FindByID(nil, f.user.ID)
		require.NoError(t, err)
		assert.True(t, user.HasSubscription(f.program.ID))
	})

	t.Run("unpaid session changes nothing", func(t *testing.T) {
		f := newPaymentFixture(t, nil)
		f.pending(t, "cs_open", models.PaymentKindSubscription)
		f.provider.On("GetCheckoutSession", mock.Anything, "cs_open").Return(&paymentprovider.SessionStatus{
			ID: "cs_open", Status: "open", PaymentStatus: "unpaid",
		}, nil)

		resp, err := f.svc.CheckStatus(ctx, nil, "cs_open", f.user)
		require.NoError(t, err)
		assert.Equal(t, "unpaid", resp.PaymentStatus)

		txn, err := f.payments.FindBySessionID(nil, "cs_open")
		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusPending, txn.PaymentStatus)
	})

	t.Run("unknown session", func(t *testing.T) {
		f := newPaymentFixture(t, nil)
		_, err := f.svc.CheckStatus(ctx, nil, "cs_nope", f.user)
		assert.ErrorIs(t, err, apperrors.ErrTransactionNotFound)
		f.provider.AssertNotCalled(t, "GetCheckoutSession", mock.Anything, mock.Anything)
	})

	t.Run("other user is forbidden, admin is not", func(t *testing.T) {
		f := newPaymentFixture(t, nil)
		f.pending(t, "cs_owned", models.PaymentKindSubscription)
		f.provider.On("GetCheckoutSession", mock.Anything, "cs_owned").Return(&paymentprovider.SessionStatus{
			ID: "cs_owned", Status: "open", PaymentStatus: "unpaid",
		}, nil)

		stranger := &models.User{BaseModel: models.BaseModel{ID: "someone-else"}, Role: models.UserRoleUser}
		_, err := f.svc.CheckStatus(ctx, nil, "cs_owned", stranger)
		assert.ErrorIs(t, err, apperrors.ErrTransactionForbidden)

		admin := &models.User{BaseModel: models.BaseModel{ID: "admin"}, Role: models.UserRoleAdmin}
		_, err = f.svc.CheckStatus(ctx, nil, "cs_owned", admin)
		assert.NoError(t, err)
	})

	t.Run("provider failure", func(t *testing.T) {
		f := newPaymentFixture(t, nil)
		f.pending(t, "cs_down", models.PaymentKindSubscription)
		f.provider.On("GetCheckoutSession", mock.Anything, "cs_down").Return(nil, errors.New("timeout"))

		_, err := f.svc.CheckStatus(ctx, nil, "cs_down", f.user)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodePaymentProviderError, appErr.Code)
		assert.Equal(t, 502, appErr.HTTPCode)
	})
}

func TestHandleWebhook(t *testing.T) {
	ctx := context.Background()
	payload := []byte(`{"id":"evt_1"}`)

	t.Run("paid checkout is applied", func(t *testing.T) {
		f := newPaymentFixture(t, nil)
		f.pending(t, "cs_hook", models.PaymentKindSubscription)
		f.provider.On("ParseWebhook", payload, "sig").Return(&paymentprovider.WebhookEvent{
			ID: "evt_1", Type: paymentprovider.EventCheckoutCompleted, SessionID: "cs_hook", PaymentStatus: "paid",
		}, nil)

		ack, err := f.svc.HandleWebhook(ctx, nil, payload, "sig")
		require.NoError(t, err)
		assert.Equal(t, "ok", ack.Status)

		txn, err := f.payments.FindBySessionID(nil, "cs_hook")
		require.NoError(t, err)
		assert.True(t, txn.IsPaid())
	})

	t.Run("bad signature", func(t *testing.T) {
		f := newPaymentFixture(t, nil)
		f.provider.On("ParseWebhook", payload, "forged").Return(nil, paymentprovider.ErrInvalidSignature)

		_, err := f.svc.HandleWebhook(ctx, nil, payload, "forged")
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeInvalidSignature, appErr.Code)
	})

	t.Run("unrelated event is acknowledged", func(t *testing.T) {
		f := newPaymentFixture(t, nil)
		f.pending(t, "cs_other", models.PaymentKindSubscription)
		f.provider.On("ParseWebhook", payload, "sig").Return(&paymentprovider.WebhookEvent{
			ID: "evt_2", Type: "customer.created",
		}, nil)

		ack, err := f.svc.HandleWebhook(ctx, nil, payload, "sig")
		require.NoError(t, err)
		assert.Equal(t, "ok", ack.Status)

		txn, err := f.payments.FindBySessionID(nil, "cs_other")
		require.NoError(t, err)
		assert.False(t, txn.IsPaid())
	})

	t.Run("provider not configured", func(t *testing.T) {
		svc := NewPaymentService(newFakePaymentRepo(), newFakeUserRepo(), newFakeProgramRepo(), newFakeShopRepo(), fakeTxManager{}, nil, nil)
		_, err := svc.HandleWebhook(ctx, nil, payload, "sig")
		assert.ErrorIs(t, err, apperrors.ErrPaymentNotConfigured)
	})
}

func TestPaymentHistory(t *testing.T) {
	f := newPaymentFixture(t, nil)
	f.pending(t, "cs_a", models.PaymentKindSubscription)
	f.pending(t, "cs_b", models.PaymentKindProduct)

	txns, err := f.svc.History(context.Background(), nil, f.user)
	require.NoError(t, err)
	assert.Len(t, txns, 2)

	other := &models.User{BaseModel: models.BaseModel{ID: "nobody"}}
	txns, err = f.svc.History(context.Background(), nil, other)
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestReconcilePending(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture(t, nil)
	f.pending(t, "cs_paid", models.PaymentKindSubscription)
	f.pending(t, "cs_open", models.PaymentKindSubscription)
	f.pending(t, "cs_broken", models.PaymentKindProduct)

	f.provider.On("GetCheckoutSession", mock.Anything, "cs_paid").
		Return(&paymentprovider.SessionStatus{ID: "cs_paid", Status: "complete", PaymentStatus: paymentprovider.PaymentStatusPaid}, nil)
	f.provider.On("GetCheckoutSession", mock.Anything, "cs_open").
		Return(&paymentprovider.SessionStatus{ID: "cs_open", Status: "open", PaymentStatus: "unpaid"}, nil)
	f.provider.On("GetCheckoutSession", mock.Anything, "cs_broken").
		Return(nil, errors.New("stripe unavailable"))

	now := time.Now().UTC()
	result, err := f.svc.ReconcilePending(ctx, nil, now.Add(-time.Hour), now.Add(time.Hour), 10)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Checked)
	assert.Equal(t, 1, result.Applied)
	assert.Equal(t, 1, result.Failed)

	paid, err := f.payments.FindBySessionID(nil, "cs_paid")
	require.NoError(t, err)
	assert.True(t, paid.IsPaid())

	open, err := f.payments.FindBySessionID(nil, "cs_open")
	require.NoError(t, err)
	assert.False(t, open.IsPaid())

	// Второй проход видит только то, что осталось pending
	result, err = f.svc.ReconcilePending(ctx, nil, now.Add(-time.Hour), now.Add(time.Hour), 10)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Checked)
	assert.Zero(t, result.Applied)
}

func TestReconcilePending_WindowAndLimit(t *testing.T) {
	f := newPaymentFixture(t, nil)
	f.pending(t, "cs_a", models.PaymentKindSubscription)

	now := time.Now().UTC()
	result, err := f.svc.ReconcilePending(context.Background(), nil, now.Add(-time.Hour), now.Add(-time.Minute), 10)
	require.NoError(t, err)
	assert.Zero(t, result.Checked)
	f.provider.AssertNotCalled(t, "GetCheckoutSession", mock.Anything, mock.Anything)
}

func TestReconcilePending_NotConfigured(t *testing.T) {
	f := newPaymentFixture(t, nil)
	svc := NewPaymentService(f.payments, f.users, f.programs, f.shop, fakeTxManager{}, nil, nil)

	_, err := svc.ReconcilePending(context.Background(), nil, time.Time{}, time.Now(), 10)
	assert.ErrorIs(t, err, apperrors.ErrPaymentNotConfigured)
}
