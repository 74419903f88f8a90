package workers

import (
	"context"
	"errors"
	"time"

	"academy_backend/internal/logger"
	"academy_backend/internal/services"
	"academy_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	// Свежие сессии не трогаем: пользователь еще на странице оплаты,
	// а вебхук обычно приходит за секунды
	defaultMinAge = 2 * time.Minute
	// Checkout-сессия Stripe живет не дольше суток
	defaultMaxAge    = 24 * time.Hour
	defaultBatchSize = 100
)

// PaymentWorker периодически сверяет зависшие pending платежи с провайдером.
// Закрывает случай, когда вебхук потерян, а пользователь не вернулся на сайт.
type PaymentWorker struct {
	db             *gorm.DB
	paymentService services.PaymentService
	interval       time.Duration
	minAge         time.Duration
	maxAge         time.Duration
	batchSize      int
	now            func() time.Time
}

func NewPaymentWorker(db *gorm.DB, paymentService services.PaymentService, interval time.Duration) *PaymentWorker {
	return &PaymentWorker{
		db:             db,
		paymentService: paymentService,
		interval:       interval,
		minAge:         defaultMinAge,
		maxAge:         defaultMaxAge,
		batchSize:      defaultBatchSize,
		now:            time.Now,
	}
}

// Start запускает фоновую сверку; останавливается вместе с ctx
func (w *PaymentWorker) Start(ctx context.Context) {
	if w.interval <= 0 {
		logger.Info("Payment sweep disabled")
		return
	}
	go w.run(ctx)
}

func (w *PaymentWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logger.Info("Payment worker started", "interval", w.interval.String())
	for {
		select {
		case <-ctx.Done():
			logger.Info("Payment worker stopped")
			return
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep - один проход сверки
func (w *PaymentWorker) Sweep(ctx context.Context) {
	db := w.db
	if db != nil {
		db = db.WithContext(ctx)
	}

	now := w.now().UTC()
	result, err := w.paymentService.ReconcilePending(ctx, db, now.Add(-w.maxAge), now.Add(-w.minAge), w.batchSize)
	if err != nil {
		if errors.Is(err, apperrors.ErrPaymentNotConfigured) || errors.Is(err, context.Canceled) {
			return
		}
		logger.Error("Payment sweep failed", "error", err)
		return
	}

	if result.Applied > 0 || result.Failed > 0 {
		logger.Info("Payment sweep finished",
			"checked", result.Checked,
			"applied", result.Applied,
			"failed", result.Failed,
		)
	}
}
