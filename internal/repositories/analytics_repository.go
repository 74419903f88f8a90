package repositories

import (
	"time"

	"academy_backend/internal/models"

	"gorm.io/gorm"
)

type AnalyticsRepository interface {
	Create(db *gorm.DB, event *models.AnalyticsEvent) error
	CountByTypeSince(db *gorm.DB, eventType string, since time.Time) (int64, error)
	FindRecent(db *gorm.DB, limit int) ([]models.AnalyticsEvent, error)
}

type AnalyticsRepositoryImpl struct{}

func NewAnalyticsRepository() AnalyticsRepository {
	return &AnalyticsRepositoryImpl{}
}

func (r *AnalyticsRepositoryImpl) Create(db *gorm.DB, event *models.AnalyticsEvent) error {
	return db.Create(event).Error
}

func (r *AnalyticsRepositoryImpl) CountByTypeSince(db *gorm.DB, eventType string, since time.Time) (int64, error) {
	var count int64
	err := db.Model(&models.AnalyticsEvent{}).
		Where("event_type = ? AND timestamp >= ?", eventType, since).
		Count(&count).Error
	return count, err
}

func (r *AnalyticsRepositoryImpl) FindRecent(db *gorm.DB, limit int) ([]models.AnalyticsEvent, error) {
	var events []models.AnalyticsEvent
	err := db.Order("timestamp DESC").Limit(limit).Find(&events).Error
	return events, err
}
