package services

import (
	"context"

	"academy_backend/internal/auth"
	"academy_backend/internal/logger"
	"academy_backend/internal/repositories"
	"academy_backend/internal/services/dto"
	"academy_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// UserService - управление пользователями из админки
type UserService interface {
	GetUser(ctx context.Context, db *gorm.DB, userID string) (*dto.UserResponse, error)
	ListUsers(ctx context.Context, db *gorm.DB) ([]*dto.UserResponse, error)
	UpdateRole(ctx context.Context, db *gorm.DB, userID, role string) error
	SetSubscriptions(ctx context.Context, db *gorm.DB, userID string, programIDs []string) error

	// Прямой доступ к курсам
	GetUserCourses(ctx context.Context, db *gorm.DB, userID string) (*dto.UserCoursesResponse, error)
	SetCourses(ctx context.Context, db *gorm.DB, userID string, courseIDs []string) error
	AddCourse(ctx context.Context, db *gorm.DB, userID, courseID string) error
	RemoveCourse(ctx context.Context, db *gorm.DB, userID, courseID string) error
}

type userService struct {
	userRepo   repositories.UserRepository
	courseRepo repositories.CourseRepository
}

func NewUserService(userRepo repositories.UserRepository, courseRepo repositories.CourseRepository) UserService {
	return &userService{
		userRepo:   userRepo,
		courseRepo: courseRepo,
	}
}

func (s *userService) GetUser(ctx context.Context, db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return dto.NewUserResponse(user), nil
}

func (s *userService) ListUsers(ctx context.Context, db *gorm.DB) ([]*dto.UserResponse, error) {
	users, err := s.userRepo.FindAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := make([]*dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, dto.NewUserResponse(&users[i]))
	}
	return result, nil
}

func (s *userService) UpdateRole(ctx context.Context, db *gorm.DB, userID, role string) error {
	parsed, ok := auth.ParseRole(role)
	if !ok {
		return apperrors.ErrInvalidUserRole
	}

	if err := s.userRepo.UpdateRole(db, userID, parsed); err != nil {
		return mapRepoError(err)
	}

	logger.CtxInfo(ctx, "User role updated", "target_user_id", userID, "role", parsed)
	return nil
}

func (s *userService) SetSubscriptions(ctx context.Context, db *gorm.DB, userID string, programIDs []string) error {
	if err := s.userRepo.SetSubscriptions(db, userID, programIDs); err != nil {
		return mapRepoError(err)
	}
	logger.CtxInfo(ctx, "User subscriptions replaced", "target_user_id", userID, "count", len(programIDs))
	return nil
}

func (s *userService) GetUserCourses(ctx context.Context, db *gorm.DB, userID string) (*dto.UserCoursesResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	ids := []string(user.Courses)
	if ids == nil {
		ids = []string{}
	}
	courses, err := s.courseRepo.FindByIDs(db, ids)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.UserCoursesResponse{CourseIDs: ids, Courses: courses}, nil
}

func (s *userService) SetCourses(ctx context.Context, db *gorm.DB, userID string, courseIDs []string) error {
	if err := s.userRepo.SetCourses(db, userID, courseIDs); err != nil {
		return mapRepoError(err)
	}
	return nil
}

func (s *userService) AddCourse(ctx context.Context, db *gorm.DB, userID, courseID string) error {
	if err := s.userRepo.AddCourse(db, userID, courseID); err != nil {
		return mapRepoError(err)
	}
	return nil
}

func (s *userService) RemoveCourse(ctx context.Context, db *gorm.DB, userID, courseID string) error {
	if err := s.userRepo.RemoveCourse(db, userID, courseID); err != nil {
		return mapRepoError(err)
	}
	return nil
}
