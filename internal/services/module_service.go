package services

import (
	"context"

	"academy_backend/internal/auth"
	"academy_backend/internal/models"
	"academy_backend/internal/repositories"
	"academy_backend/internal/services/dto"
	"academy_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// ModuleService - модули курсов и их видео (Mux)
type ModuleService interface {
	ListModules(ctx context.Context, db *gorm.DB, courseID string) ([]models.Module, error)
	CreateModule(ctx context.Context, db *gorm.DB, req *dto.ModuleRequest) (*models.Module, error)
	UpdateModule(ctx context.Context, db *gorm.DB, id string, req *dto.ModuleRequest) error
	DeleteModule(ctx context.Context, db *gorm.DB, id string) error

	ListVideosForUser(ctx context.Context, db *gorm.DB, user *models.User, moduleID string) ([]models.Video, error)
	GetVideoForUser(ctx context.Context, db *gorm.DB, user *models.User, videoID string) (*models.Video, error)
	CreateVideo(ctx context.Context, db *gorm.DB, req *dto.VideoRequest) (*models.Video, error)
	UpdateVideo(ctx context.Context, db *gorm.DB, id string, req *dto.VideoRequest) error
	DeleteVideo(ctx context.Context, db *gorm.DB, id string) error
}

type moduleService struct {
	moduleRepo repositories.ModuleRepository
	courseRepo repositories.CourseRepository
}

func NewModuleService(moduleRepo repositories.ModuleRepository, courseRepo repositories.CourseRepository) ModuleService {
	return &moduleService{moduleRepo: moduleRepo, courseRepo: courseRepo}
}

func (s *moduleService) ListModules(ctx context.Context, db *gorm.DB, courseID string) ([]models.Module, error) {
	modules, err := s.moduleRepo.FindAll(db, courseID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return modules, nil
}

func (s *moduleService) CreateModule(ctx context.Context, db *gorm.DB, req *dto.ModuleRequest) (*models.Module, error) {
	module := &models.Module{
		Title:       req.Title,
		Description: req.Description,
		CourseID:    req.CourseID,
		Order:       req.Order,
	}
	if err := s.moduleRepo.Create(db, module); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return module, nil
}

func (s *moduleService) UpdateModule(ctx context.Context, db *gorm.DB, id string, req *dto.ModuleRequest) error {
	module := &models.Module{
		Title:       req.Title,
		Description: req.Description,
		CourseID:    req.CourseID,
		Order:       req.Order,
	}
	module.ID = id
	return mapRepoError(s.moduleRepo.Update(db, module))
}

// DeleteModule удаляет модуль и его видео
func (s *moduleService) DeleteModule(ctx context.Context, db *gorm.DB, id string) error {
	return mapRepoError(s.moduleRepo.Delete(db, id))
}

func (s *moduleService) ListVideosForUser(ctx context.Context, db *gorm.DB, user *models.User, moduleID string) ([]models.Video, error) {
	module, err := s.moduleRepo.FindByID(db, moduleID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if err := s.checkCourseAccess(db, user, module.CourseID); err != nil {
		return nil, err
	}

	videos, err := s.moduleRepo.FindVideosByModule(db, moduleID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if videos == nil {
		videos = []models.Video{}
	}
	return videos, nil
}

func (s *moduleService) GetVideoForUser(ctx context.Context, db *gorm.DB, user *models.User, videoID string) (*models.Video, error) {
	video, err := s.moduleRepo.FindVideoByID(db, videoID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	module, err := s.moduleRepo.FindByID(db, video.ModuleID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if err := s.checkCourseAccess(db, user, module.CourseID); err != nil {
		return nil, err
	}
	return video, nil
}

func (s *moduleService) CreateVideo(ctx context.Context, db *gorm.DB, req *dto.VideoRequest) (*models.Video, error) {
	video := videoFromRequest(req)
	if err := s.moduleRepo.CreateVideo(db, video); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return video, nil
}

func (s *moduleService) UpdateVideo(ctx context.Context, db *gorm.DB, id string, req *dto.VideoRequest) error {
	video := videoFromRequest(req)
	video.ID = id
	return mapRepoError(s.moduleRepo.UpdateVideo(db, video))
}

func (s *moduleService) DeleteVideo(ctx context.Context, db *gorm.DB, id string) error {
	return mapRepoError(s.moduleRepo.DeleteVideo(db, id))
}

func (s *moduleService) checkCourseAccess(db *gorm.DB, user *models.User, courseID string) error {
	if user == nil {
		return apperrors.ErrNotAuthenticated
	}
	if user.IsAdmin() {
		return nil
	}

	course, err := s.courseRepo.FindByID(db, courseID)
	if err != nil {
		return mapRepoError(err)
	}
	if !auth.CanAccessCourse(user, course) {
		return apperrors.ErrCourseAccessDenied
	}
	return nil
}

func videoFromRequest(req *dto.VideoRequest) *models.Video {
	return &models.Video{
		Title:         req.Title,
		Description:   req.Description,
		ModuleID:      req.ModuleID,
		MuxPlaybackID: req.MuxPlaybackID,
		MuxAssetID:    req.MuxAssetID,
		Duration:      req.Duration,
		Order:         req.Order,
	}
}
