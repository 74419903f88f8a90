package repositories

import (
	"errors"

	"academy_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrProgramNotFound = errors.New("program not found")

type ProgramRepository interface {
	Create(db *gorm.DB, program *models.Program) error
	FindByID(db *gorm.DB, id string) (*models.Program, error)
	FindByIDs(db *gorm.DB, ids []string) ([]models.Program, error)
	FindActive(db *gorm.DB) ([]models.Program, error)
	FindAll(db *gorm.DB) ([]models.Program, error)
	Update(db *gorm.DB, program *models.Program) error
	SetStripePriceID(db *gorm.DB, id, priceID string) error
	Delete(db *gorm.DB, id string) error
	UpsertByName(db *gorm.DB, program *models.Program) error
}

type ProgramRepositoryImpl struct{}

func NewProgramRepository() ProgramRepository {
	return &ProgramRepositoryImpl{}
}

func (r *ProgramRepositoryImpl) Create(db *gorm.DB, program *models.Program) error {
	if program.Features == nil {
		program.Features = models.UniqueIDs(nil)
	}
	return db.Create(program).Error
}

func (r *ProgramRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Program, error) {
	var program models.Program
	if err := db.First(&program, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrProgramNotFound)
	}
	return &program, nil
}

func (r *ProgramRepositoryImpl) FindByIDs(db *gorm.DB, ids []string) ([]models.Program, error) {
	var programs []models.Program
	if len(ids) == 0 {
		return programs, nil
	}
	err := db.Where("id IN ?", ids).Find(&programs).Error
	return programs, err
}

func (r *ProgramRepositoryImpl) FindActive(db *gorm.DB) ([]models.Program, error) {
	var programs []models.Program
	err := db.Where("is_active = ?", true).Order("price ASC").Find(&programs).Error
	return programs, err
}

func (r *ProgramRepositoryImpl) FindAll(db *gorm.DB) ([]models.Program, error) {
	var programs []models.Program
	err := db.Order("price ASC").Find(&programs).Error
	return programs, err
}

// Update заменяет все редактируемые поля программы
func (r *ProgramRepositoryImpl) Update(db *gorm.DB, program *models.Program) error {
	result := db.Model(&models.Program{}).Where("id = ?", program.ID).Updates(map[string]interface{}{
		"name":            program.Name,
		"description":     program.Description,
		"price":           program.Price,
		"currency":        program.Currency,
		"features":        program.Features,
		"stripe_price_id": program.StripePriceID,
		"is_active":       program.IsActive,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProgramNotFound
	}
	return nil
}

func (r *ProgramRepositoryImpl) SetStripePriceID(db *gorm.DB, id, priceID string) error {
	result := db.Model(&models.Program{}).Where("id = ?", id).Update("stripe_price_id", priceID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProgramNotFound
	}
	return nil
}

func (r *ProgramRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.Program{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProgramNotFound
	}
	return nil
}

// UpsertByName - вставка или обновление по имени, id существующей записи сохраняется
func (r *ProgramRepositoryImpl) UpsertByName(db *gorm.DB, program *models.Program) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"description", "price", "currency", "features", "is_active", "updated_at"}),
	}).Create(program).Error
}
