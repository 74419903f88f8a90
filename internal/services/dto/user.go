package dto

import "academy_backend/internal/models"

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,is-user-role"`
}

type SetSubscriptionsRequest struct {
	Subscriptions []string `json:"subscriptions" validate:"dive,required"`
}

type SetCoursesRequest struct {
	Courses []string `json:"courses" validate:"dive,required"`
}

// UserCoursesResponse - курсы, выданные пользователю напрямую
type UserCoursesResponse struct {
	CourseIDs []string        `json:"course_ids"`
	Courses   []models.Course `json:"courses"`
}
