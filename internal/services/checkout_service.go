package services

import (
	"context"
	"errors"
	"strings"

	"academy_backend/internal/logger"
	"academy_backend/internal/metrics"
	"academy_backend/internal/models"
	"academy_backend/internal/paymentprovider"
	"academy_backend/internal/repositories"
	"academy_backend/internal/services/dto"
	"academy_backend/pkg/apperrors"

	"gorm.io/gorm"
)

var errEmptySession = errors.New("provider returned empty session id")

// CheckoutService создает hosted checkout сессию и pending-транзакцию
type CheckoutService interface {
	StartCheckout(ctx context.Context, db *gorm.DB, req *dto.StartCheckoutRequest) (*dto.CheckoutResponse, error)
}

type checkoutService struct {
	programRepo repositories.ProgramRepository
	shopRepo    repositories.ShopRepository
	paymentRepo repositories.PaymentRepository
	provider    paymentprovider.Provider
	webhookURL  string
}

// NewCheckoutService - provider может быть nil, если Stripe не настроен
func NewCheckoutService(
	programRepo repositories.ProgramRepository,
	shopRepo repositories.ShopRepository,
	paymentRepo repositories.PaymentRepository,
	provider paymentprovider.Provider,
	webhookURL string,
) CheckoutService {
	return &checkoutService{
		programRepo: programRepo,
		shopRepo:    shopRepo,
		paymentRepo: paymentRepo,
		provider:    provider,
		webhookURL:  webhookURL,
	}
}

// checkoutTarget - снимок цены и названия покупки на момент оплаты
type checkoutTarget struct {
	name        string
	description string
	price       float64
	currency    string
	metadataKey string
}

func (s *checkoutService) StartCheckout(ctx context.Context, db *gorm.DB, req *dto.StartCheckoutRequest) (*dto.CheckoutResponse, error) {
	if req.Requester == nil {
		return nil, apperrors.ErrNotAuthenticated
	}

	target, err := s.resolveTarget(db, req.Kind, req.TargetID)
	if err != nil {
		return nil, err
	}

	if s.provider == nil {
		return nil, apperrors.ErrPaymentNotConfigured
	}

	metadata := map[string]string{
		"user_id":          req.Requester.ID,
		target.metadataKey: req.TargetID,
		"type":             string(req.Kind),
	}
	if s.webhookURL != "" {
		metadata["webhook_url"] = s.webhookURL
	}

	session, err := s.provider.CreateCheckoutSession(ctx, &paymentprovider.CheckoutRequest{
		Kind:          req.Kind,
		Name:          target.name,
		Description:   target.description,
		AmountMinor:   paymentprovider.ToMinorUnits(target.price),
		Currency:      strings.ToLower(target.currency),
		SuccessURL:    req.SuccessURL,
		CancelURL:     req.CancelURL,
		CustomerEmail: req.Requester.Email,
		Metadata:      metadata,
	})
	if err != nil {
		logger.CtxWithError(ctx, "Checkout session failed", err, "kind", req.Kind, "target_id", req.TargetID)
		return nil, apperrors.NewPaymentProviderError(err)
	}
	if session.ID == "" {
		return nil, apperrors.NewPaymentProviderError(errEmptySession)
	}

	txn := &models.PaymentTransaction{
		SessionID:     session.ID,
		UserID:        req.Requester.ID,
		Amount:        target.price,
		Currency:      target.currency,
		Kind:          req.Kind,
		PaymentStatus: models.PaymentStatusPending,
	}
	targetID := req.TargetID
	if req.Kind == models.PaymentKindSubscription {
		txn.ProgramID = &targetID
	} else {
		txn.ProductID = &targetID
	}

	if err := s.paymentRepo.Create(db, txn); err != nil {
		return nil, apperrors.InternalError(err)
	}

	metrics.CheckoutsStarted.WithLabelValues(string(req.Kind)).Inc()
	logger.CtxInfo(ctx, "Checkout session created",
		"session_id", session.ID,
		"kind", req.Kind,
		"target_id", req.TargetID,
	)

	return &dto.CheckoutResponse{URL: session.URL, SessionID: session.ID}, nil
}

// resolveTarget - неактивная программа и проданный товар считаются отсутствующими
func (s *checkoutService) resolveTarget(db *gorm.DB, kind models.PaymentKind, id string) (*checkoutTarget, error) {
	switch kind {
	case models.PaymentKindSubscription:
		program, err := s.programRepo.FindByID(db, id)
		if err != nil {
			return nil, mapRepoError(err)
		}
		if !program.IsActive {
			return nil, apperrors.ErrProgramNotFound
		}
		// Сумма всегда берется из program.Price: stripe_price_id мог устареть после правки цены
		return &checkoutTarget{
			name:        program.Name,
			description: program.Description,
			price:       program.Price,
			currency:    program.Currency,
			metadataKey: "program_id",
		}, nil

	case models.PaymentKindProduct:
		product, err := s.shopRepo.FindByID(db, id)
		if err != nil {
			return nil, mapRepoError(err)
		}
		if !product.IsAvailable {
			return nil, apperrors.ErrProductNotFound
		}
		return &checkoutTarget{
			name:        product.Title,
			description: product.Description,
			price:       product.Price,
			currency:    product.Currency,
			metadataKey: "product_id",
		}, nil
	}

	return nil, apperrors.ErrUnsupportedPaymentKind
}

// CheckoutURLs - адреса возврата после оплаты, строятся от origin фронтенда
func CheckoutURLs(kind models.PaymentKind, origin string) (successURL, cancelURL string) {
	origin = strings.TrimRight(origin, "/")
	if kind == models.PaymentKindProduct {
		return origin + "/shop/success?session_id=" + paymentprovider.SessionIDPlaceholder, origin + "/shop"
	}
	return origin + "/dashboard?session_id=" + paymentprovider.SessionIDPlaceholder, origin + "/programs"
}
