package dto

import "academy_backend/internal/models"

type ProgramRequest struct {
	Name          string   `json:"name" validate:"required,max=200"`
	Description   string   `json:"description"`
	Price         float64  `json:"price" validate:"gte=0"`
	Currency      string   `json:"currency" validate:"omitempty,is-currency"`
	Features      []string `json:"features"`
	StripePriceID *string  `json:"stripe_price_id"`
	IsActive      *bool    `json:"is_active"`
	// CreateStripePrice - создать продукт и ежемесячную цену в Stripe
	CreateStripePrice bool `json:"create_stripe_price"`
}

type CourseRequest struct {
	Title         string  `json:"title" validate:"required,max=200"`
	Description   string  `json:"description"`
	ProgramID     string  `json:"program_id" validate:"required"`
	ThumbnailURL  *string `json:"thumbnail_url"`
	DurationHours *int    `json:"duration_hours" validate:"omitempty,gte=0"`
	Order         int     `json:"order"`
	IsActive      *bool   `json:"is_active"`
}

type LessonRequest struct {
	Title           string  `json:"title" validate:"required,max=200"`
	Description     string  `json:"description"`
	CourseID        string  `json:"course_id" validate:"required"`
	VideoURL        *string `json:"video_url"`
	MuxPlaybackID   *string `json:"mux_playback_id"`
	DurationMinutes *int    `json:"duration_minutes" validate:"omitempty,gte=0"`
	Order           int     `json:"order"`
	IsFree          bool    `json:"is_free"`
}

type LessonOrderItem struct {
	ID    string `json:"id" validate:"required"`
	Order int    `json:"order"`
}

type ModuleRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
	CourseID    string `json:"course_id" validate:"required"`
	Order       int    `json:"order"`
}

type VideoRequest struct {
	Title         string  `json:"title" validate:"required,max=200"`
	Description   string  `json:"description"`
	ModuleID      string  `json:"module_id" validate:"required"`
	MuxPlaybackID *string `json:"mux_playback_id"`
	MuxAssetID    *string `json:"mux_asset_id"`
	Duration      *int    `json:"duration" validate:"omitempty,gte=0"`
	Order         int     `json:"order"`
}

// CourseResponse - курс со счетчиком уроков (и именем программы в админке)
type CourseResponse struct {
	models.Course
	LessonCount int64  `json:"lesson_count"`
	ProgramName string `json:"program_name,omitempty"`
}

// CourseDetailResponse - курс с уроками по порядку
type CourseDetailResponse struct {
	models.Course
	Lessons []models.Lesson `json:"lessons"`
}

// SuccessResponse - {"success": true}
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func OK() *SuccessResponse {
	return &SuccessResponse{Success: true}
}

// BoolOrDefault - значение опционального флага
func BoolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
