package repositories

import (
	"errors"

	"academy_backend/internal/models"

	"gorm.io/gorm"
)

var ErrCourseNotFound = errors.New("course not found")

type CourseRepository interface {
	Create(db *gorm.DB, course *models.Course) error
	FindByID(db *gorm.DB, id string) (*models.Course, error)
	FindByIDs(db *gorm.DB, ids []string) ([]models.Course, error)
	FindActive(db *gorm.DB, programID string) ([]models.Course, error)
	FindAll(db *gorm.DB) ([]models.Course, error)
	Update(db *gorm.DB, course *models.Course) error
	Delete(db *gorm.DB, id string) error
}

type CourseRepositoryImpl struct{}

func NewCourseRepository() CourseRepository {
	return &CourseRepositoryImpl{}
}

func (r *CourseRepositoryImpl) Create(db *gorm.DB, course *models.Course) error {
	return db.Create(course).Error
}

func (r *CourseRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Course, error) {
	var course models.Course
	if err := db.First(&course, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrCourseNotFound)
	}
	return &course, nil
}

func (r *CourseRepositoryImpl) FindByIDs(db *gorm.DB, ids []string) ([]models.Course, error) {
	var courses []models.Course
	if len(ids) == 0 {
		return courses, nil
	}
	err := db.Where("id IN ?", ids).Order("sort_order ASC").Find(&courses).Error
	return courses, err
}

// FindActive - активные курсы, опционально только одной программы
func (r *CourseRepositoryImpl) FindActive(db *gorm.DB, programID string) ([]models.Course, error) {
	var courses []models.Course
	query := db.Where("is_active = ?", true)
	if programID != "" {
		query = query.Where("program_id = ?", programID)
	}
	err := query.Order("sort_order ASC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepositoryImpl) FindAll(db *gorm.DB) ([]models.Course, error) {
	var courses []models.Course
	err := db.Order("sort_order ASC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepositoryImpl) Update(db *gorm.DB, course *models.Course) error {
	result := db.Model(&models.Course{}).Where("id = ?", course.ID).Updates(map[string]interface{}{
		"title":          course.Title,
		"description":    course.Description,
		"program_id":     course.ProgramID,
		"thumbnail_url":  course.ThumbnailURL,
		"duration_hours": course.DurationHours,
		"sort_order":     course.Order,
		"is_active":      course.IsActive,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCourseNotFound
	}
	return nil
}

// Delete удаляет курс вместе с уроками
func (r *CourseRepositoryImpl) Delete(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Course{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCourseNotFound
		}
		return tx.Delete(&models.Lesson{}, "course_id = ?", id).Error
	})
}
