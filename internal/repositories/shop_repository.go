package repositories

import (
	"errors"

	"academy_backend/internal/models"

	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("product not found")

type ShopRepository interface {
	Create(db *gorm.DB, product *models.ShopProduct) error
	FindByID(db *gorm.DB, id string) (*models.ShopProduct, error)
	FindAvailable(db *gorm.DB, category string) ([]models.ShopProduct, error)
	FindAll(db *gorm.DB) ([]models.ShopProduct, error)
	Update(db *gorm.DB, product *models.ShopProduct) error
	MarkSold(db *gorm.DB, id string) error
	Delete(db *gorm.DB, id string) error
}

type ShopRepositoryImpl struct{}

func NewShopRepository() ShopRepository {
	return &ShopRepositoryImpl{}
}

func (r *ShopRepositoryImpl) Create(db *gorm.DB, product *models.ShopProduct) error {
	if product.Images == nil {
		product.Images = models.UniqueIDs(nil)
	}
	return db.Create(product).Error
}

func (r *ShopRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.ShopProduct, error) {
	var product models.ShopProduct
	if err := db.First(&product, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrProductNotFound)
	}
	return &product, nil
}

func (r *ShopRepositoryImpl) FindAvailable(db *gorm.DB, category string) ([]models.ShopProduct, error) {
	var products []models.ShopProduct
	query := db.Where("is_available = ?", true)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Order("created_at DESC").Find(&products).Error
	return products, err
}

func (r *ShopRepositoryImpl) FindAll(db *gorm.DB) ([]models.ShopProduct, error) {
	var products []models.ShopProduct
	err := db.Order("created_at DESC").Find(&products).Error
	return products, err
}

func (r *ShopRepositoryImpl) Update(db *gorm.DB, product *models.ShopProduct) error {
	result := db.Model(&models.ShopProduct{}).Where("id = ?", product.ID).Updates(map[string]interface{}{
		"title":        product.Title,
		"description":  product.Description,
		"category":     product.Category,
		"price":        product.Price,
		"currency":     product.Currency,
		"stats":        product.Stats,
		"images":       product.Images,
		"is_available": product.IsAvailable,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// MarkSold снимает товар с продажи после оплаты
func (r *ShopRepositoryImpl) MarkSold(db *gorm.DB, id string) error {
	result := db.Model(&models.ShopProduct{}).Where("id = ?", id).Update("is_available", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *ShopRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.ShopProduct{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
