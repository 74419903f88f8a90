package dto

import (
	"time"

	"academy_backend/internal/models"
)

// RegisterRequest - запрос регистрации
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Name     string `json:"name" validate:"required,max=100"`
}

// LoginRequest - запрос входа
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse - публичное представление пользователя, без хеша пароля
type UserResponse struct {
	ID            string          `json:"id"`
	Email         string          `json:"email"`
	Name          string          `json:"name"`
	Role          models.UserRole `json:"role"`
	Subscriptions []string        `json:"subscriptions"`
	Courses       []string        `json:"courses"`
	CreatedAt     time.Time       `json:"created_at"`
}

// AuthResponse - ответ на регистрацию и вход
type AuthResponse struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	ExpiresAt   time.Time     `json:"expires_at"`
	User        *UserResponse `json:"user"`
}

func NewUserResponse(u *models.User) *UserResponse {
	subs := []string(u.Subscriptions)
	if subs == nil {
		subs = []string{}
	}
	courses := []string(u.Courses)
	if courses == nil {
		courses = []string{}
	}
	return &UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Role:          u.Role,
		Subscriptions: subs,
		Courses:       courses,
		CreatedAt:     u.CreatedAt,
	}
}
