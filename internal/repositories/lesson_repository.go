package repositories

import (
	"errors"

	"academy_backend/internal/models"

	"gorm.io/gorm"
)

var ErrLessonNotFound = errors.New("lesson not found")

// LessonOrder - новая позиция урока при переупорядочивании
type LessonOrder struct {
	ID    string
	Order int
}

type LessonRepository interface {
	Create(db *gorm.DB, lesson *models.Lesson) error
	FindByID(db *gorm.DB, id string) (*models.Lesson, error)
	FindByCourse(db *gorm.DB, courseID string) ([]models.Lesson, error)
	CountByCourse(db *gorm.DB, courseID string) (int64, error)
	CountByCourses(db *gorm.DB, courseIDs []string) (map[string]int64, error)
	Update(db *gorm.DB, lesson *models.Lesson) error
	Reorder(db *gorm.DB, items []LessonOrder) error
	Delete(db *gorm.DB, id string) error
}

type LessonRepositoryImpl struct{}

func NewLessonRepository() LessonRepository {
	return &LessonRepositoryImpl{}
}

func (r *LessonRepositoryImpl) Create(db *gorm.DB, lesson *models.Lesson) error {
	return db.Create(lesson).Error
}

func (r *LessonRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := db.First(&lesson, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrLessonNotFound)
	}
	return &lesson, nil
}

func (r *LessonRepositoryImpl) FindByCourse(db *gorm.DB, courseID string) ([]models.Lesson, error) {
	var lessons []models.Lesson
	err := db.Where("course_id = ?", courseID).Order("sort_order ASC").Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepositoryImpl) CountByCourse(db *gorm.DB, courseID string) (int64, error) {
	var count int64
	err := db.Model(&models.Lesson{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}

// CountByCourses - число уроков по каждому курсу одним запросом
func (r *LessonRepositoryImpl) CountByCourses(db *gorm.DB, courseIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(courseIDs))
	if len(courseIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		CourseID string
		Count    int64
	}
	err := db.Model(&models.Lesson{}).
		Select("course_id, COUNT(*) AS count").
		Where("course_id IN ?", courseIDs).
		Group("course_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.CourseID] = row.Count
	}
	return counts, nil
}

func (r *LessonRepositoryImpl) Update(db *gorm.DB, lesson *models.Lesson) error {
	result := db.Model(&models.Lesson{}).Where("id = ?", lesson.ID).Updates(map[string]interface{}{
		"title":            lesson.Title,
		"description":      lesson.Description,
		"course_id":        lesson.CourseID,
		"video_url":        lesson.VideoURL,
		"mux_playback_id":  lesson.MuxPlaybackID,
		"duration_minutes": lesson.DurationMinutes,
		"sort_order":       lesson.Order,
		"is_free":          lesson.IsFree,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLessonNotFound
	}
	return nil
}

// Reorder выставляет позиции уроков; неизвестные id пропускаются
func (r *LessonRepositoryImpl) Reorder(db *gorm.DB, items []LessonOrder) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			if err := tx.Model(&models.Lesson{}).Where("id = ?", item.ID).Update("sort_order", item.Order).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *LessonRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.Lesson{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLessonNotFound
	}
	return nil
}
