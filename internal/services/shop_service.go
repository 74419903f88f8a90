package services

import (
	"context"
	"strings"

	"academy_backend/internal/models"
	"academy_backend/internal/repositories"
	"academy_backend/internal/services/dto"
	"academy_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ShopService interface {
	ListAvailable(ctx context.Context, db *gorm.DB, category string) ([]models.ShopProduct, error)
	ListAll(ctx context.Context, db *gorm.DB) ([]models.ShopProduct, error)
	Get(ctx context.Context, db *gorm.DB, id string) (*models.ShopProduct, error)
	Create(ctx context.Context, db *gorm.DB, req *dto.ProductRequest) (*models.ShopProduct, error)
	Update(ctx context.Context, db *gorm.DB, id string, req *dto.ProductRequest) error
	Delete(ctx context.Context, db *gorm.DB, id string) error
}

type shopService struct {
	shopRepo repositories.ShopRepository
}

func NewShopService(shopRepo repositories.ShopRepository) ShopService {
	return &shopService{shopRepo: shopRepo}
}

func (s *shopService) ListAvailable(ctx context.Context, db *gorm.DB, category string) ([]models.ShopProduct, error) {
	products, err := s.shopRepo.FindAvailable(db, strings.ToLower(category))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return products, nil
}

func (s *shopService) ListAll(ctx context.Context, db *gorm.DB) ([]models.ShopProduct, error) {
	products, err := s.shopRepo.FindAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return products, nil
}

func (s *shopService) Get(ctx context.Context, db *gorm.DB, id string) (*models.ShopProduct, error) {
	product, err := s.shopRepo.FindByID(db, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return product, nil
}

func (s *shopService) Create(ctx context.Context, db *gorm.DB, req *dto.ProductRequest) (*models.ShopProduct, error) {
	product := productFromRequest(req)
	if err := s.shopRepo.Create(db, product); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return product, nil
}

func (s *shopService) Update(ctx context.Context, db *gorm.DB, id string, req *dto.ProductRequest) error {
	product := productFromRequest(req)
	product.ID = id
	return mapRepoError(s.shopRepo.Update(db, product))
}

func (s *shopService) Delete(ctx context.Context, db *gorm.DB, id string) error {
	return mapRepoError(s.shopRepo.Delete(db, id))
}

func productFromRequest(req *dto.ProductRequest) *models.ShopProduct {
	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = defaultCurrency
	}
	stats := datatypes.JSONMap(req.Stats)
	if stats == nil {
		stats = datatypes.JSONMap{}
	}
	return &models.ShopProduct{
		Title:       req.Title,
		Description: req.Description,
		Category:    strings.ToLower(req.Category),
		Price:       req.Price,
		Currency:    currency,
		Stats:       stats,
		Images:      models.UniqueIDs(req.Images),
		IsAvailable: dto.BoolOrDefault(req.IsAvailable, true),
	}
}
