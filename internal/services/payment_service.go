package services

import (
	"context"
	"errors"
	"time"

	"academy_backend/internal/email"
	"academy_backend/internal/logger"
	"academy_backend/internal/metrics"
	"academy_backend/internal/models"
	"academy_backend/internal/paymentprovider"
	"academy_backend/internal/repositories"
	"academy_backend/internal/services/dto"
	"academy_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const webhookStatusOK = "ok"

// PaymentService - сверка оплат (опрос статуса и вебхук) и история
type PaymentService interface {
	CheckStatus(ctx context.Context, db *gorm.DB, sessionID string, requester *models.User) (*dto.PaymentStatusResponse, error)
	HandleWebhook(ctx context.Context, db *gorm.DB, payload []byte, signature string) (*dto.WebhookAck, error)
	// ApplyPaid переводит транзакцию в paid и выдает доступ ровно один раз
	ApplyPaid(ctx context.Context, db *gorm.DB, sessionID string) (bool, error)
	History(ctx context.Context, db *gorm.DB, user *models.User) ([]models.PaymentTransaction, error)
	// ReconcilePending сверяет с провайдером pending транзакции из окна [from, to)
	ReconcilePending(ctx context.Context, db *gorm.DB, from, to time.Time, limit int) (*dto.SweepResult, error)
}

type paymentService struct {
	paymentRepo repositories.PaymentRepository
	userRepo    repositories.UserRepository
	programRepo repositories.ProgramRepository
	shopRepo    repositories.ShopRepository
	txManager   repositories.TxManager
	provider    paymentprovider.Provider
	mailer      *email.Mailer
	now         func() time.Time
}

func NewPaymentService(
	paymentRepo repositories.PaymentRepository,
	userRepo repositories.UserRepository,
	programRepo repositories.ProgramRepository,
	shopRepo repositories.ShopRepository,
	txManager repositories.TxManager,
	provider paymentprovider.Provider,
	mailer *email.Mailer,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		programRepo: programRepo,
		shopRepo:    shopRepo,
		txManager:   txManager,
		provider:    provider,
		mailer:      mailer,
		now:         time.Now,
	}
}

// CheckStatus - опрос статуса с фронтенда после редиректа
func (s *paymentService) CheckStatus(ctx context.Context, db *gorm.DB, sessionID string, requester *models.User) (*dto.PaymentStatusResponse, error) {
	if requester == nil {
		return nil, apperrors.ErrNotAuthenticated
	}

	txn, err := s.paymentRepo.FindBySessionID(db, sessionID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if txn.UserID != requester.ID && !requester.IsAdmin() {
		return nil, apperrors.ErrTransactionForbidden
	}

	if s.provider == nil {
		return nil, apperrors.ErrPaymentNotConfigured
	}

	ctx = logger.WithSessionID(ctx, sessionID)
	status, err := s.provider.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		logger.CtxWithError(ctx, "Checkout session lookup failed", err)
		return nil, apperrors.NewPaymentProviderError(err)
	}

	if status.IsPaid() {
		if _, err := s.reconcile(ctx, db, sessionID, metrics.SourcePoll); err != nil {
			return nil, err
		}
	}

	return &dto.PaymentStatusResponse{
		Status:        status.Status,
		PaymentStatus: status.PaymentStatus,
		AmountTotal:   status.AmountTotal,
		Currency:      status.Currency,
	}, nil
}

// HandleWebhook проверяет подпись по сырому телу и применяет оплаченные checkout-события
func (s *paymentService) HandleWebhook(ctx context.Context, db *gorm.DB, payload []byte, signature string) (*dto.WebhookAck, error) {
	if s.provider == nil {
		return nil, apperrors.ErrPaymentNotConfigured
	}

	event, err := s.provider.ParseWebhook(payload, signature)
	if err != nil {
		switch {
		case errors.Is(err, paymentprovider.ErrInvalidSignature):
			logger.CtxWarn(ctx, "Webhook signature rejected", "error", err)
			return nil, apperrors.NewInvalidSignatureError(err)
		case errors.Is(err, paymentprovider.ErrNotConfigured):
			return nil, apperrors.ErrPaymentNotConfigured
		default:
			return nil, apperrors.InternalError(err)
		}
	}

	if !event.IsPaidCheckout() {
		logger.CtxDebug(ctx, "Webhook event ignored", "event_id", event.ID, "type", event.Type)
		return &dto.WebhookAck{Status: webhookStatusOK}, nil
	}

	if _, err := s.reconcile(ctx, db, event.SessionID, metrics.SourceWebhook); err != nil {
		return nil, err
	}
	return &dto.WebhookAck{Status: webhookStatusOK}, nil
}

func (s *paymentService) reconcile(ctx context.Context, db *gorm.DB, sessionID, source string) (bool, error) {
	applied, err := s.ApplyPaid(ctx, db, sessionID)
	switch {
	case err != nil:
		metrics.PaymentsReconciled.WithLabelValues(source, metrics.OutcomeError).Inc()
	case applied:
		metrics.PaymentsReconciled.WithLabelValues(source, metrics.OutcomeApplied).Inc()
	default:
		metrics.PaymentsReconciled.WithLabelValues(source, metrics.OutcomeNoop).Inc()
	}
	return applied, err
}

func (s *paymentService) ApplyPaid(ctx context.Context, db *gorm.DB, sessionID string) (bool, error) {
	ctx = logger.WithSessionID(ctx, sessionID)

	var (
		applied bool
		txn     *models.PaymentTransaction
	)

	err := s.txManager.WithinTransaction(ctx, db, func(tx *gorm.DB) error {
		var err error
		txn, err = s.paymentRepo.FindBySessionID(tx, sessionID)
		if err != nil {
			return err
		}
		if txn.IsPaid() {
			return nil
		}

		// Условный UPDATE: только один из конкурирующих вызовов получит true
		ok, err := s.paymentRepo.MarkPaid(tx, sessionID, s.now().UTC())
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		if err := s.grant(ctx, tx, txn); err != nil {
			return err
		}
		applied = true
		return nil
	})
	if err != nil {
		return false, mapRepoError(err)
	}

	if applied {
		logger.CtxInfo(ctx, "Payment applied",
			"user_id", txn.UserID,
			"kind", txn.Kind,
			"target_id", txn.TargetID(),
		)
		s.sendReceipt(ctx, db, txn)
	}
	return applied, nil
}

// grant - исчезнувший получатель не откатывает переход pending -> paid
func (s *paymentService) grant(ctx context.Context, tx *gorm.DB, txn *models.PaymentTransaction) error {
	var err error
	switch txn.Kind {
	case models.PaymentKindSubscription:
		err = s.userRepo.AddSubscription(tx, txn.UserID, txn.TargetID())
	case models.PaymentKindProduct:
		err = s.shopRepo.MarkSold(tx, txn.TargetID())
	default:
		return apperrors.ErrUnsupportedPaymentKind
	}

	if errors.Is(err, repositories.ErrProductNotFound) || errors.Is(err, repositories.ErrUserNotFound) {
		logger.CtxWarn(ctx, "Paid target no longer exists, fulfillment skipped",
			"kind", txn.Kind,
			"target_id", txn.TargetID(),
			"error", err,
		)
		return nil
	}
	return err
}

// sendReceipt - письмо не влияет на результат оплаты
func (s *paymentService) sendReceipt(ctx context.Context, db *gorm.DB, txn *models.PaymentTransaction) {
	if s.mailer == nil {
		return
	}

	user, err := s.userRepo.FindByID(db, txn.UserID)
	if err != nil {
		logger.CtxWithError(ctx, "Receipt skipped: user lookup failed", err)
		return
	}

	item := txn.TargetID()
	switch txn.Kind {
	case models.PaymentKindSubscription:
		if program, err := s.programRepo.FindByID(db, item); err == nil {
			item = program.Name
		}
	case models.PaymentKindProduct:
		if product, err := s.shopRepo.FindByID(db, item); err == nil {
			item = product.Title
		}
	}

	receipt := email.Receipt{
		To:        user.Email,
		Name:      user.Name,
		Item:      item,
		Amount:    txn.Amount,
		Currency:  txn.Currency,
		SessionID: txn.SessionID,
	}

	sendCtx := context.WithoutCancel(ctx)
	go func() {
		if err := s.mailer.SendPaymentReceipt(sendCtx, receipt); err != nil {
			logger.CtxWithError(sendCtx, "Payment receipt failed", err)
		}
	}()
}

func (s *paymentService) History(ctx context.Context, db *gorm.DB, user *models.User) ([]models.PaymentTransaction, error) {
	if user == nil {
		return nil, apperrors.ErrNotAuthenticated
	}

	txns, err := s.paymentRepo.FindByUser(db, user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if txns == nil {
		txns = []models.PaymentTransaction{}
	}
	return txns, nil
}

func (s *paymentService) ReconcilePending(ctx context.Context, db *gorm.DB, from, to time.Time, limit int) (*dto.SweepResult, error) {
	if s.provider == nil {
		return nil, apperrors.ErrPaymentNotConfigured
	}

	txns, err := s.paymentRepo.FindPending(db, from, to, limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := &dto.SweepResult{Checked: len(txns)}
	for _, txn := range txns {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		txnCtx := logger.WithSessionID(ctx, txn.SessionID)
		status, err := s.provider.GetCheckoutSession(txnCtx, txn.SessionID)
		if err != nil {
			// Одна недоступная сессия не должна останавливать обход
			result.Failed++
			logger.CtxWithError(txnCtx, "Sweep: checkout session lookup failed", err)
			continue
		}
		if !status.IsPaid() {
			continue
		}

		applied, err := s.reconcile(txnCtx, db, txn.SessionID, metrics.SourceSweep)
		switch {
		case err != nil:
			result.Failed++
			logger.CtxWithError(txnCtx, "Sweep: reconcile failed", err)
		case applied:
			result.Applied++
		}
	}
	return result, nil
}
