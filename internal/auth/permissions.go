package auth

import (
	"academy_backend/internal/models"
)

// CanAccessCourse: админ, курс выдан напрямую, или есть подписка на программу курса.
// Решение принимается на каждый запрос по актуальной записи пользователя.
func CanAccessCourse(user *models.User, course *models.Course) bool {
	if user == nil || course == nil {
		return false
	}
	if user.IsAdmin() {
		return true
	}
	if user.HasCourse(course.ID) {
		return true
	}
	return course.ProgramID != "" && user.HasSubscription(course.ProgramID)
}

// ParseRole - роль только из закрытого списка
func ParseRole(value string) (models.UserRole, bool) {
	role := models.UserRole(value)
	return role, role.IsValid()
}
