package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const EventTypePageView = "page_view"

type AnalyticsEvent struct {
	ID        string            `gorm:"type:varchar(36);primaryKey" json:"id"`
	EventType string            `gorm:"index;not null" json:"event_type"`
	Page      string            `json:"page"`
	UserID    *string           `gorm:"index" json:"user_id,omitempty"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb" json:"metadata"`
	Timestamp time.Time         `gorm:"index;not null" json:"timestamp"`
}

func (e *AnalyticsEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	return nil
}
