package repositories

import (
	"errors"

	"academy_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrModuleNotFound = errors.New("module not found")
	ErrVideoNotFound  = errors.New("video not found")
)

type ModuleRepository interface {
	Create(db *gorm.DB, module *models.Module) error
	FindByID(db *gorm.DB, id string) (*models.Module, error)
	FindAll(db *gorm.DB, courseID string) ([]models.Module, error)
	Update(db *gorm.DB, module *models.Module) error
	Delete(db *gorm.DB, id string) error

	CreateVideo(db *gorm.DB, video *models.Video) error
	FindVideoByID(db *gorm.DB, id string) (*models.Video, error)
	FindVideosByModule(db *gorm.DB, moduleID string) ([]models.Video, error)
	UpdateVideo(db *gorm.DB, video *models.Video) error
	DeleteVideo(db *gorm.DB, id string) error
}

type ModuleRepositoryImpl struct{}

func NewModuleRepository() ModuleRepository {
	return &ModuleRepositoryImpl{}
}

// Module operations

func (r *ModuleRepositoryImpl) Create(db *gorm.DB, module *models.Module) error {
	return db.Create(module).Error
}

func (r *ModuleRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Module, error) {
	var module models.Module
	if err := db.First(&module, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrModuleNotFound)
	}
	return &module, nil
}

func (r *ModuleRepositoryImpl) FindAll(db *gorm.DB, courseID string) ([]models.Module, error) {
	var modules []models.Module
	query := db.Model(&models.Module{})
	if courseID != "" {
		query = query.Where("course_id = ?", courseID)
	}
	err := query.Order("sort_order ASC").Find(&modules).Error
	return modules, err
}

func (r *ModuleRepositoryImpl) Update(db *gorm.DB, module *models.Module) error {
	result := db.Model(&models.Module{}).Where("id = ?", module.ID).Updates(map[string]interface{}{
		"title":       module.Title,
		"description": module.Description,
		"course_id":   module.CourseID,
		"sort_order":  module.Order,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrModuleNotFound
	}
	return nil
}

// Delete удаляет модуль и все его видео
func (r *ModuleRepositoryImpl) Delete(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Module{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrModuleNotFound
		}
		return tx.Delete(&models.Video{}, "module_id = ?", id).Error
	})
}

// Video operations

func (r *ModuleRepositoryImpl) CreateVideo(db *gorm.DB, video *models.Video) error {
	return db.Create(video).Error
}

func (r *ModuleRepositoryImpl) FindVideoByID(db *gorm.DB, id string) (*models.Video, error) {
	var video models.Video
	if err := db.First(&video, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrVideoNotFound)
	}
	return &video, nil
}

func (r *ModuleRepositoryImpl) FindVideosByModule(db *gorm.DB, moduleID string) ([]models.Video, error) {
	var videos []models.Video
	err := db.Where("module_id = ?", moduleID).Order("sort_order ASC").Find(&videos).Error
	return videos, err
}

func (r *ModuleRepositoryImpl) UpdateVideo(db *gorm.DB, video *models.Video) error {
	result := db.Model(&models.Video{}).Where("id = ?", video.ID).Updates(map[string]interface{}{
		"title":           video.Title,
		"description":     video.Description,
		"module_id":       video.ModuleID,
		"mux_playback_id": video.MuxPlaybackID,
		"mux_asset_id":    video.MuxAssetID,
		"duration":        video.Duration,
		"sort_order":      video.Order,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVideoNotFound
	}
	return nil
}

func (r *ModuleRepositoryImpl) DeleteVideo(db *gorm.DB, id string) error {
	result := db.Delete(&models.Video{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVideoNotFound
	}
	return nil
}
