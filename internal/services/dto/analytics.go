package dto

import "academy_backend/internal/models"

type AnalyticsEventRequest struct {
	EventType string                 `json:"event_type" validate:"required,max=64"`
	Page      string                 `json:"page" validate:"max=512"`
	Metadata  map[string]interface{} `json:"metadata"`
}

type AnalyticsDashboard struct {
	TotalUsers         int64                   `json:"total_users"`
	TotalSubscriptions int64                   `json:"total_subscriptions"`
	PageViews7d        int64                   `json:"page_views_7d"`
	RecentEvents       []models.AnalyticsEvent `json:"recent_events"`
}
