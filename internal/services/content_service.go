package services

import (
	"context"

	"academy_backend/internal/logger"
	"academy_backend/internal/models"
	"academy_backend/internal/repositories"
	"academy_backend/internal/services/dto"
	"academy_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ContentService - FAQ, результаты учеников и настройки сайта
type ContentService interface {
	ListFAQs(ctx context.Context, db *gorm.DB) ([]models.FAQ, error)
	CreateFAQ(ctx context.Context, db *gorm.DB, req *dto.FAQRequest) (*models.FAQ, error)
	UpdateFAQ(ctx context.Context, db *gorm.DB, id string, req *dto.FAQRequest) error
	DeleteFAQ(ctx context.Context, db *gorm.DB, id string) error

	ListResults(ctx context.Context, db *gorm.DB) ([]models.Result, error)
	CreateResult(ctx context.Context, db *gorm.DB, req *dto.ResultRequest) (*models.Result, error)
	DeleteResult(ctx context.Context, db *gorm.DB, id string) error

	GetSettings(ctx context.Context, db *gorm.DB) (*models.SiteSettings, error)
	UpdateSettings(ctx context.Context, db *gorm.DB, req *dto.SettingsUpdateRequest) (*models.SiteSettings, error)
}

type contentService struct {
	contentRepo repositories.ContentRepository
}

func NewContentService(contentRepo repositories.ContentRepository) ContentService {
	return &contentService{contentRepo: contentRepo}
}

func (s *contentService) ListFAQs(ctx context.Context, db *gorm.DB) ([]models.FAQ, error) {
	faqs, err := s.contentRepo.FindFAQs(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return faqs, nil
}

func (s *contentService) CreateFAQ(ctx context.Context, db *gorm.DB, req *dto.FAQRequest) (*models.FAQ, error) {
	faq := &models.FAQ{Question: req.Question, Answer: req.Answer, Order: req.Order}
	if err := s.contentRepo.CreateFAQ(db, faq); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return faq, nil
}

func (s *contentService) UpdateFAQ(ctx context.Context, db *gorm.DB, id string, req *dto.FAQRequest) error {
	faq := &models.FAQ{Question: req.Question, Answer: req.Answer, Order: req.Order}
	faq.ID = id
	return mapRepoError(s.contentRepo.UpdateFAQ(db, faq))
}

func (s *contentService) DeleteFAQ(ctx context.Context, db *gorm.DB, id string) error {
	return mapRepoError(s.contentRepo.DeleteFAQ(db, id))
}

func (s *contentService) ListResults(ctx context.Context, db *gorm.DB) ([]models.Result, error) {
	results, err := s.contentRepo.FindResults(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return results, nil
}

func (s *contentService) CreateResult(ctx context.Context, db *gorm.DB, req *dto.ResultRequest) (*models.Result, error) {
	result := &models.Result{ImageURL: req.ImageURL, Caption: req.Caption, Order: req.Order}
	if err := s.contentRepo.CreateResult(db, result); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return result, nil
}

func (s *contentService) DeleteResult(ctx context.Context, db *gorm.DB, id string) error {
	return mapRepoError(s.contentRepo.DeleteResult(db, id))
}

// GetSettings - при первом чтении создаются значения по умолчанию
func (s *contentService) GetSettings(ctx context.Context, db *gorm.DB) (*models.SiteSettings, error) {
	settings, err := s.contentRepo.GetSettings(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return settings, nil
}

func (s *contentService) UpdateSettings(ctx context.Context, db *gorm.DB, req *dto.SettingsUpdateRequest) (*models.SiteSettings, error) {
	settings, err := s.contentRepo.GetSettings(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	applySettingsUpdate(settings, req)

	if err := s.contentRepo.SaveSettings(db, settings); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Site settings updated", "theme", settings.Theme)
	return settings, nil
}

func applySettingsUpdate(settings *models.SiteSettings, req *dto.SettingsUpdateRequest) {
	setIfPresent := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setIfPresent(&settings.SiteName, req.SiteName)
	setIfPresent(&settings.HeroVideoURL, req.HeroVideoURL)
	setIfPresent(&settings.HeroHeadline, req.HeroHeadline)
	setIfPresent(&settings.HeroSubheadline, req.HeroSubheadline)
	setIfPresent(&settings.DiscordInviteURL, req.DiscordInviteURL)
	setIfPresent(&settings.Theme, req.Theme)
	setIfPresent(&settings.ContactEmail, req.ContactEmail)
	if req.SocialLinks != nil {
		settings.SocialLinks = datatypes.NewJSONType(req.SocialLinks)
	}
}
