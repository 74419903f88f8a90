package workers

import (
	"context"
	"sync"
	"testing"
	"time"

	"academy_backend/internal/services"
	"academy_backend/internal/services/dto"
	"academy_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type sweepCall struct {
	from, to time.Time
	limit    int
}

// stubPayments реализует только ReconcilePending
type stubPayments struct {
	services.PaymentService

	mu    sync.Mutex
	calls []sweepCall
	err   error
}

func (s *stubPayments) ReconcilePending(ctx context.Context, db *gorm.DB, from, to time.Time, limit int) (*dto.SweepResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, sweepCall{from: from, to: to, limit: limit})
	if s.err != nil {
		return nil, s.err
	}
	return &dto.SweepResult{Checked: 1, Applied: 1}, nil
}

func (s *stubPayments) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func TestPaymentWorker_SweepWindow(t *testing.T) {
	payments := &stubPayments{}
	w := NewPaymentWorker(nil, payments, time.Minute)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return now }

	w.Sweep(context.Background())

	require.Len(t, payments.calls, 1)
	call := payments.calls[0]
	assert.Equal(t, now.Add(-24*time.Hour), call.from)
	assert.Equal(t, now.Add(-2*time.Minute), call.to)
	assert.Equal(t, defaultBatchSize, call.limit)
}

func TestPaymentWorker_SweepToleratesNotConfigured(t *testing.T) {
	payments := &stubPayments{err: apperrors.ErrPaymentNotConfigured}
	w := NewPaymentWorker(nil, payments, time.Minute)

	assert.NotPanics(t, func() { w.Sweep(context.Background()) })
	assert.Equal(t, 1, payments.callCount())
}

func TestPaymentWorker_StartDisabled(t *testing.T) {
	payments := &stubPayments{}
	w := NewPaymentWorker(nil, payments, 0)

	w.Start(context.Background())
	time.Sleep(20 * time.Millisecond)

	assert.Zero(t, payments.callCount())
}

func TestPaymentWorker_RunsUntilCancelled(t *testing.T) {
	payments := &stubPayments{}
	w := NewPaymentWorker(nil, payments, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)

	assert.Eventually(t, func() bool { return payments.callCount() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
}
