package database

import (
	"fmt"
	"time"

	"academy_backend/internal/config"
	"academy_backend/internal/logger"
	"academy_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect открывает пул соединений с Postgres по настройкам из конфига
func Connect(cfg config.DatabaseConfig, env string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger:         logger.NewGormLogger(env),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// AutoMigrate выполняет миграцию всех моделей
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Program{},
		&models.Course{},
		&models.Lesson{},
		&models.Module{},
		&models.Video{},
		&models.ShopProduct{},
		&models.FAQ{},
		&models.Result{},
		&models.SiteSettings{},
		&models.AnalyticsEvent{},
		&models.PaymentTransaction{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	logger.Info("AutoMigrate completed")
	return nil
}
