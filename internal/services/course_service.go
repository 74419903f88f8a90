package services

import (
	"context"

	"academy_backend/internal/auth"
	"academy_backend/internal/logger"
	"academy_backend/internal/models"
	"academy_backend/internal/repositories"
	"academy_backend/internal/services/dto"
	"academy_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const programNameFallback = "N/A"

// CourseService - курсы и уроки
type CourseService interface {
	// Course operations
	ListCourses(ctx context.Context, db *gorm.DB, programID string) ([]*dto.CourseResponse, error)
	ListCoursesAdmin(ctx context.Context, db *gorm.DB) ([]*dto.CourseResponse, error)
	GetCourseForUser(ctx context.Context, db *gorm.DB, user *models.User, courseID string) (*dto.CourseDetailResponse, error)
	CreateCourse(ctx context.Context, db *gorm.DB, req *dto.CourseRequest) (*models.Course, error)
	UpdateCourse(ctx context.Context, db *gorm.DB, id string, req *dto.CourseRequest) error
	DeleteCourse(ctx context.Context, db *gorm.DB, id string) error

	// Lesson operations
	ListLessonsForUser(ctx context.Context, db *gorm.DB, user *models.User, courseID string) ([]models.Lesson, error)
	GetLessonForUser(ctx context.Context, db *gorm.DB, user *models.User, lessonID string) (*models.Lesson, error)
	CreateLesson(ctx context.Context, db *gorm.DB, req *dto.LessonRequest) (*models.Lesson, error)
	UpdateLesson(ctx context.Context, db *gorm.DB, id string, req *dto.LessonRequest) error
	ReorderLessons(ctx context.Context, db *gorm.DB, items []dto.LessonOrderItem) error
	DeleteLesson(ctx context.Context, db *gorm.DB, id string) error
}

type courseService struct {
	courseRepo  repositories.CourseRepository
	lessonRepo  repositories.LessonRepository
	programRepo repositories.ProgramRepository
}

func NewCourseService(
	courseRepo repositories.CourseRepository,
	lessonRepo repositories.LessonRepository,
	programRepo repositories.ProgramRepository,
) CourseService {
	return &courseService{
		courseRepo:  courseRepo,
		lessonRepo:  lessonRepo,
		programRepo: programRepo,
	}
}

// ---------------- Course Operations ----------------

func (s *courseService) ListCourses(ctx context.Context, db *gorm.DB, programID string) ([]*dto.CourseResponse, error) {
	courses, err := s.courseRepo.FindActive(db, programID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.withLessonCounts(db, courses)
}

func (s *courseService) ListCoursesAdmin(ctx context.Context, db *gorm.DB) ([]*dto.CourseResponse, error) {
	courses, err := s.courseRepo.FindAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	result, err := s.withLessonCounts(db, courses)
	if err != nil {
		return nil, err
	}

	programIDs := make([]string, 0, len(courses))
	for _, c := range courses {
		programIDs = append(programIDs, c.ProgramID)
	}
	programs, err := s.programRepo.FindByIDs(db, models.UniqueIDs(programIDs))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	names := make(map[string]string, len(programs))
	for _, p := range programs {
		names[p.ID] = p.Name
	}

	for _, r := range result {
		r.ProgramName = programNameFallback
		if name, ok := names[r.ProgramID]; ok {
			r.ProgramName = name
		}
	}
	return result, nil
}

func (s *courseService) GetCourseForUser(ctx context.Context, db *gorm.DB, user *models.User, courseID string) (*dto.CourseDetailResponse, error) {
	course, err := s.accessibleCourse(db, user, courseID)
	if err != nil {
		return nil, err
	}

	lessons, err := s.lessonRepo.FindByCourse(db, course.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if lessons == nil {
		lessons = []models.Lesson{}
	}

	return &dto.CourseDetailResponse{Course: *course, Lessons: lessons}, nil
}

func (s *courseService) CreateCourse(ctx context.Context, db *gorm.DB, req *dto.CourseRequest) (*models.Course, error) {
	course := courseFromRequest(req)
	if err := s.courseRepo.Create(db, course); err != nil {
		return nil, apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "Course created", "course_id", course.ID, "program_id", course.ProgramID)
	return course, nil
}

func (s *courseService) UpdateCourse(ctx context.Context, db *gorm.DB, id string, req *dto.CourseRequest) error {
	course := courseFromRequest(req)
	course.ID = id
	return mapRepoError(s.courseRepo.Update(db, course))
}

// DeleteCourse удаляет курс вместе с уроками
func (s *courseService) DeleteCourse(ctx context.Context, db *gorm.DB, id string) error {
	if err := s.courseRepo.Delete(db, id); err != nil {
		return mapRepoError(err)
	}
	logger.CtxInfo(ctx, "Course deleted", "course_id", id)
	return nil
}

// ---------------- Lesson Operations ----------------

func (s *courseService) ListLessonsForUser(ctx context.Context, db *gorm.DB, user *models.User, courseID string) ([]models.Lesson, error) {
	if _, err := s.accessibleCourse(db, user, courseID); err != nil {
		return nil, err
	}

	lessons, err := s.lessonRepo.FindByCourse(db, courseID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if lessons == nil {
		lessons = []models.Lesson{}
	}
	return lessons, nil
}

// GetLessonForUser - бесплатные уроки доступны любому авторизованному пользователю
func (s *courseService) GetLessonForUser(ctx context.Context, db *gorm.DB, user *models.User, lessonID string) (*models.Lesson, error) {
	lesson, err := s.lessonRepo.FindByID(db, lessonID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if lesson.IsFree {
		return lesson, nil
	}

	if _, err := s.accessibleCourse(db, user, lesson.CourseID); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *courseService) CreateLesson(ctx context.Context, db *gorm.DB, req *dto.LessonRequest) (*models.Lesson, error) {
	lesson := lessonFromRequest(req)

	// Без явного порядка урок встает в конец курса
	if lesson.Order == 0 {
		count, err := s.lessonRepo.CountByCourse(db, lesson.CourseID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		lesson.Order = int(count) + 1
	}

	if err := s.lessonRepo.Create(db, lesson); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return lesson, nil
}

func (s *courseService) UpdateLesson(ctx context.Context, db *gorm.DB, id string, req *dto.LessonRequest) error {
	lesson := lessonFromRequest(req)
	lesson.ID = id
	return mapRepoError(s.lessonRepo.Update(db, lesson))
}

func (s *courseService) ReorderLessons(ctx context.Context, db *gorm.DB, items []dto.LessonOrderItem) error {
	orders := make([]repositories.LessonOrder, 0, len(items))
	for _, item := range items {
		orders = append(orders, repositories.LessonOrder{ID: item.ID, Order: item.Order})
	}
	return mapRepoError(s.lessonRepo.Reorder(db, orders))
}

func (s *courseService) DeleteLesson(ctx context.Context, db *gorm.DB, id string) error {
	return mapRepoError(s.lessonRepo.Delete(db, id))
}

// ---------------- Helpers ----------------

// accessibleCourse загружает курс и проверяет право доступа пользователя
func (s *courseService) accessibleCourse(db *gorm.DB, user *models.User, courseID string) (*models.Course, error) {
	if user == nil {
		return nil, apperrors.ErrNotAuthenticated
	}

	course, err := s.courseRepo.FindByID(db, courseID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if !auth.CanAccessCourse(user, course) {
		return nil, apperrors.ErrCourseAccessDenied
	}
	return course, nil
}

func (s *courseService) withLessonCounts(db *gorm.DB, courses []models.Course) ([]*dto.CourseResponse, error) {
	ids := make([]string, 0, len(courses))
	for _, c := range courses {
		ids = append(ids, c.ID)
	}

	counts, err := s.lessonRepo.CountByCourses(db, ids)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := make([]*dto.CourseResponse, 0, len(courses))
	for _, c := range courses {
		result = append(result, &dto.CourseResponse{Course: c, LessonCount: counts[c.ID]})
	}
	return result, nil
}

func courseFromRequest(req *dto.CourseRequest) *models.Course {
	return &models.Course{
		Title:         req.Title,
		Description:   req.Description,
		ProgramID:     req.ProgramID,
		ThumbnailURL:  req.ThumbnailURL,
		DurationHours: req.DurationHours,
		Order:         req.Order,
		IsActive:      dto.BoolOrDefault(req.IsActive, true),
	}
}

func lessonFromRequest(req *dto.LessonRequest) *models.Lesson {
	return &models.Lesson{
		Title:           req.Title,
		Description:     req.Description,
		CourseID:        req.CourseID,
		VideoURL:        req.VideoURL,
		MuxPlaybackID:   req.MuxPlaybackID,
		DurationMinutes: req.DurationMinutes,
		Order:           req.Order,
		IsFree:          req.IsFree,
	}
}
