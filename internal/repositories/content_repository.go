package repositories

import (
	"errors"

	"academy_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrFAQNotFound    = errors.New("faq not found")
	ErrResultNotFound = errors.New("result not found")
)

// ContentRepository - FAQ, галерея результатов и настройки сайта
type ContentRepository interface {
	// FAQ
	CreateFAQ(db *gorm.DB, faq *models.FAQ) error
	FindFAQs(db *gorm.DB) ([]models.FAQ, error)
	UpdateFAQ(db *gorm.DB, faq *models.FAQ) error
	DeleteFAQ(db *gorm.DB, id string) error
	UpsertFAQ(db *gorm.DB, faq *models.FAQ) error

	// Results
	CreateResult(db *gorm.DB, result *models.Result) error
	FindResults(db *gorm.DB) ([]models.Result, error)
	DeleteResult(db *gorm.DB, id string) error
	UpsertResult(db *gorm.DB, result *models.Result) error

	// Settings
	GetSettings(db *gorm.DB) (*models.SiteSettings, error)
	SaveSettings(db *gorm.DB, settings *models.SiteSettings) error
}

type ContentRepositoryImpl struct{}

func NewContentRepository() ContentRepository {
	return &ContentRepositoryImpl{}
}

func (r *ContentRepositoryImpl) CreateFAQ(db *gorm.DB, faq *models.FAQ) error {
	return db.Create(faq).Error
}

func (r *ContentRepositoryImpl) FindFAQs(db *gorm.DB) ([]models.FAQ, error) {
	var faqs []models.FAQ
	err := db.Order("sort_order ASC").Find(&faqs).Error
	return faqs, err
}

func (r *ContentRepositoryImpl) UpdateFAQ(db *gorm.DB, faq *models.FAQ) error {
	result := db.Model(&models.FAQ{}).Where("id = ?", faq.ID).Updates(map[string]interface{}{
		"question":   faq.Question,
		"answer":     faq.Answer,
		"sort_order": faq.Order,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFAQNotFound
	}
	return nil
}

func (r *ContentRepositoryImpl) DeleteFAQ(db *gorm.DB, id string) error {
	result := db.Delete(&models.FAQ{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFAQNotFound
	}
	return nil
}

func (r *ContentRepositoryImpl) UpsertFAQ(db *gorm.DB, faq *models.FAQ) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "question"}},
		DoUpdates: clause.AssignmentColumns([]string{"answer", "sort_order", "updated_at"}),
	}).Create(faq).Error
}

func (r *ContentRepositoryImpl) CreateResult(db *gorm.DB, result *models.Result) error {
	return db.Create(result).Error
}

func (r *ContentRepositoryImpl) FindResults(db *gorm.DB) ([]models.Result, error) {
	var results []models.Result
	err := db.Order("sort_order ASC").Find(&results).Error
	return results, err
}

func (r *ContentRepositoryImpl) DeleteResult(db *gorm.DB, id string) error {
	res := db.Delete(&models.Result{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrResultNotFound
	}
	return nil
}

func (r *ContentRepositoryImpl) UpsertResult(db *gorm.DB, result *models.Result) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "caption"}},
		DoUpdates: clause.AssignmentColumns([]string{"image_url", "sort_order", "updated_at"}),
	}).Create(result).Error
}

// GetSettings возвращает настройки, создавая значения по умолчанию при первом чтении
func (r *ContentRepositoryImpl) GetSettings(db *gorm.DB) (*models.SiteSettings, error) {
	var settings models.SiteSettings
	err := db.First(&settings, "key = ?", models.SiteSettingsKey).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Параллельные первые чтения не должны падать на дубликате ключа
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(models.DefaultSiteSettings()).Error; err != nil {
		return nil, err
	}
	if err := db.First(&settings, "key = ?", models.SiteSettingsKey).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *ContentRepositoryImpl) SaveSettings(db *gorm.DB, settings *models.SiteSettings) error {
	settings.Key = models.SiteSettingsKey
	return db.Save(settings).Error
}
