package services

import (
	"context"
	"strings"

	"academy_backend/internal/logger"
	"academy_backend/internal/models"
	"academy_backend/internal/paymentprovider"
	"academy_backend/internal/repositories"
	"academy_backend/internal/services/dto"
	"academy_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const defaultCurrency = "EUR"

type ProgramService interface {
	ListActive(ctx context.Context, db *gorm.DB) ([]models.Program, error)
	ListAll(ctx context.Context, db *gorm.DB) ([]models.Program, error)
	Get(ctx context.Context, db *gorm.DB, id string) (*models.Program, error)
	Create(ctx context.Context, db *gorm.DB, req *dto.ProgramRequest) (*models.Program, error)
	Update(ctx context.Context, db *gorm.DB, id string, req *dto.ProgramRequest) error
	Delete(ctx context.Context, db *gorm.DB, id string) error
}

type programService struct {
	programRepo repositories.ProgramRepository
	provider    paymentprovider.Provider
}

// NewProgramService - provider может быть nil, тогда синхронизация цен со Stripe недоступна
func NewProgramService(programRepo repositories.ProgramRepository, provider paymentprovider.Provider) ProgramService {
	return &programService{
		programRepo: programRepo,
		provider:    provider,
	}
}

func (s *programService) ListActive(ctx context.Context, db *gorm.DB) ([]models.Program, error) {
	programs, err := s.programRepo.FindActive(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return programs, nil
}

func (s *programService) ListAll(ctx context.Context, db *gorm.DB) ([]models.Program, error) {
	programs, err := s.programRepo.FindAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return programs, nil
}

func (s *programService) Get(ctx context.Context, db *gorm.DB, id string) (*models.Program, error) {
	program, err := s.programRepo.FindByID(db, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return program, nil
}

func (s *programService) Create(ctx context.Context, db *gorm.DB, req *dto.ProgramRequest) (*models.Program, error) {
	program := programFromRequest(req)

	if req.CreateStripePrice && program.StripePriceID == nil {
		if s.provider == nil {
			return nil, apperrors.ErrPaymentNotConfigured
		}
		_, priceID, err := s.provider.CreateRecurringPrice(ctx, program.Name, program.Description,
			paymentprovider.ToMinorUnits(program.Price), program.Currency)
		if err != nil {
			logger.CtxWithError(ctx, "Stripe price creation failed", err, "program", program.Name)
			return nil, apperrors.NewPaymentProviderError(err)
		}
		program.StripePriceID = &priceID
	}

	if err := s.programRepo.Create(db, program); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Program created", "program_id", program.ID)
	return program, nil
}

func (s *programService) Update(ctx context.Context, db *gorm.DB, id string, req *dto.ProgramRequest) error {
	program := programFromRequest(req)
	program.ID = id

	if err := s.programRepo.Update(db, program); err != nil {
		return mapRepoError(err)
	}
	return nil
}

func (s *programService) Delete(ctx context.Context, db *gorm.DB, id string) error {
	if err := s.programRepo.Delete(db, id); err != nil {
		return mapRepoError(err)
	}
	logger.CtxInfo(ctx, "Program deleted", "program_id", id)
	return nil
}

func programFromRequest(req *dto.ProgramRequest) *models.Program {
	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = defaultCurrency
	}
	return &models.Program{
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		Price:         req.Price,
		Currency:      currency,
		Features:      models.UniqueIDs(req.Features),
		StripePriceID: req.StripePriceID,
		IsActive:      dto.BoolOrDefault(req.IsActive, true),
	}
}
