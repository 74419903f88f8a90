package repositories

import (
	"errors"
	"fmt"

	"academy_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	Create(db *gorm.DB, user *models.User) error
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	FindAll(db *gorm.DB) ([]models.User, error)
	UpdateRole(db *gorm.DB, userID string, role models.UserRole) error

	// Entitlements (text[] с семантикой множества)
	AddSubscription(db *gorm.DB, userID, programID string) error
	SetSubscriptions(db *gorm.DB, userID string, programIDs []string) error
	AddCourse(db *gorm.DB, userID, courseID string) error
	RemoveCourse(db *gorm.DB, userID, courseID string) error
	SetCourses(db *gorm.DB, userID string, courseIDs []string) error

	// Analytics
	CountAll(db *gorm.DB) (int64, error)
	CountWithSubscriptions(db *gorm.DB) (int64, error)
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	user.Email = models.NormalizeEmail(user.Email)
	if user.Subscriptions == nil {
		user.Subscriptions = models.UniqueIDs(nil)
	}
	if user.Courses == nil {
		user.Courses = models.UniqueIDs(nil)
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrUserAlreadyExists
	}

	// Гонку двух регистраций закрывает уникальный индекс
	if err := db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "email = ?", models.NormalizeEmail(email)).Error; err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindAll(db *gorm.DB) ([]models.User, error) {
	var users []models.User
	err := db.Order("created_at DESC").Limit(1000).Find(&users).Error
	return users, err
}

func (r *UserRepositoryImpl) UpdateRole(db *gorm.DB, userID string, role models.UserRole) error {
	if !role.IsValid() {
		return fmt.Errorf("invalid role %q", role)
	}
	result := db.Model(&models.User{}).Where("id = ?", userID).Update("role", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) AddSubscription(db *gorm.DB, userID, programID string) error {
	return r.addToSet(db, "subscriptions", userID, programID)
}

func (r *UserRepositoryImpl) SetSubscriptions(db *gorm.DB, userID string, programIDs []string) error {
	return r.replaceSet(db, "subscriptions", userID, programIDs)
}

func (r *UserRepositoryImpl) AddCourse(db *gorm.DB, userID, courseID string) error {
	return r.addToSet(db, "courses", userID, courseID)
}

func (r *UserRepositoryImpl) RemoveCourse(db *gorm.DB, userID, courseID string) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).
		Update("courses", gorm.Expr("array_remove(courses, ?)", courseID))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) SetCourses(db *gorm.DB, userID string, courseIDs []string) error {
	return r.replaceSet(db, "courses", userID, courseIDs)
}

func (r *UserRepositoryImpl) CountAll(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.User{}).Count(&count).Error
	return count, err
}

func (r *UserRepositoryImpl) CountWithSubscriptions(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.User{}).Where("cardinality(subscriptions) > 0").Count(&count).Error
	return count, err
}

// addToSet - атомарный $addToSet: значение дописывается одним UPDATE,
// только если его еще нет в массиве. Повторное добавление - no-op.
func (r *UserRepositoryImpl) addToSet(db *gorm.DB, column, userID, value string) error {
	result := db.Model(&models.User{}).
		Where("id = ?", userID).
		Where(fmt.Sprintf("NOT (? = ANY(%s))", column), value).
		Update(column, gorm.Expr(fmt.Sprintf("array_append(%s, ?)", column), value))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Либо значение уже есть, либо пользователя нет
		return r.ensureExists(db, userID)
	}
	return nil
}

func (r *UserRepositoryImpl) replaceSet(db *gorm.DB, column, userID string, values []string) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Update(column, models.UniqueIDs(values))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) ensureExists(db *gorm.DB, userID string) error {
	var count int64
	if err := db.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrUserNotFound
	}
	return nil
}
