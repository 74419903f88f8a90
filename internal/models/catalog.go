package models

import "github.com/lib/pq"

// Program - тариф подписки, открывает доступ ко всем курсам программы
type Program struct {
	BaseModel

	Name          string         `gorm:"uniqueIndex;not null" json:"name"`
	Description   string         `json:"description"`
	Price         float64        `gorm:"not null" json:"price"`
	Currency      string         `gorm:"type:varchar(3);not null;default:'EUR'" json:"currency"`
	Features      pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"features"`
	StripePriceID *string        `json:"stripe_price_id"`
	IsActive      bool           `gorm:"not null;default:true" json:"is_active"`
}

type Course struct {
	BaseModel

	Title         string  `gorm:"not null" json:"title"`
	Description   string  `json:"description"`
	ProgramID     string  `gorm:"index;not null" json:"program_id"`
	ThumbnailURL  *string `json:"thumbnail_url"`
	DurationHours *int    `json:"duration_hours"`
	Order         int     `gorm:"column:sort_order;not null;default:0" json:"order"`
	IsActive      bool    `gorm:"not null;default:true" json:"is_active"`
}

type Lesson struct {
	BaseModel

	Title           string  `gorm:"not null" json:"title"`
	Description     string  `json:"description"`
	CourseID        string  `gorm:"index;not null" json:"course_id"`
	VideoURL        *string `json:"video_url"`
	MuxPlaybackID   *string `json:"mux_playback_id"`
	DurationMinutes *int    `json:"duration_minutes"`
	Order           int     `gorm:"column:sort_order;not null;default:0" json:"order"`
	IsFree          bool    `gorm:"not null;default:false" json:"is_free"`
}

// Module - раздел курса с видео
type Module struct {
	BaseModel

	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	CourseID    string `gorm:"index;not null" json:"course_id"`
	Order       int    `gorm:"column:sort_order;not null;default:0" json:"order"`
}

type Video struct {
	BaseModel

	Title         string  `gorm:"not null" json:"title"`
	Description   string  `json:"description"`
	ModuleID      string  `gorm:"index;not null" json:"module_id"`
	MuxPlaybackID *string `json:"mux_playback_id"`
	MuxAssetID    *string `json:"mux_asset_id"`
	Duration      *int    `json:"duration"`
	Order         int     `gorm:"column:sort_order;not null;default:0" json:"order"`
}
