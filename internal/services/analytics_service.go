package services

import (
	"context"
	"time"

	"academy_backend/internal/models"
	"academy_backend/internal/repositories"
	"academy_backend/internal/services/dto"
	"academy_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	recentEventsLimit = 50
	pageViewWindow    = 7 * 24 * time.Hour
)

type AnalyticsService interface {
	TrackEvent(ctx context.Context, db *gorm.DB, user *models.User, req *dto.AnalyticsEventRequest) error
	GetDashboard(ctx context.Context, db *gorm.DB) (*dto.AnalyticsDashboard, error)
}

type analyticsService struct {
	analyticsRepo repositories.AnalyticsRepository
	userRepo      repositories.UserRepository
	now           func() time.Time
}

func NewAnalyticsService(analyticsRepo repositories.AnalyticsRepository, userRepo repositories.UserRepository) AnalyticsService {
	return &analyticsService{
		analyticsRepo: analyticsRepo,
		userRepo:      userRepo,
		now:           time.Now,
	}
}

// TrackEvent - user может быть nil для анонимных посетителей
func (s *analyticsService) TrackEvent(ctx context.Context, db *gorm.DB, user *models.User, req *dto.AnalyticsEventRequest) error {
	metadata := datatypes.JSONMap(req.Metadata)
	if metadata == nil {
		metadata = datatypes.JSONMap{}
	}

	event := &models.AnalyticsEvent{
		EventType: req.EventType,
		Page:      req.Page,
		Metadata:  metadata,
		Timestamp: s.now().UTC(),
	}
	if user != nil {
		event.UserID = &user.ID
	}

	if err := s.analyticsRepo.Create(db, event); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *analyticsService) GetDashboard(ctx context.Context, db *gorm.DB) (*dto.AnalyticsDashboard, error) {
	totalUsers, err := s.userRepo.CountAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	totalSubs, err := s.userRepo.CountWithSubscriptions(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	pageViews, err := s.analyticsRepo.CountByTypeSince(db, models.EventTypePageView, s.now().UTC().Add(-pageViewWindow))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	recent, err := s.analyticsRepo.FindRecent(db, recentEventsLimit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if recent == nil {
		recent = []models.AnalyticsEvent{}
	}

	return &dto.AnalyticsDashboard{
		TotalUsers:         totalUsers,
		TotalSubscriptions: totalSubs,
		PageViews7d:        pageViews,
		RecentEvents:       recent,
	}, nil
}
