package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"academy_backend/internal/models"
	"academy_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnalyticsService(now time.Time) (*analyticsService, *fakeAnalyticsRepo, *fakeUserRepo) {
	events := &fakeAnalyticsRepo{}
	users := newFakeUserRepo()
	svc := NewAnalyticsService(events, users).(*analyticsService)
	svc.now = func() time.Time { return now }
	return svc, events, users
}

func TestTrackEvent_Attribution(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, events, _ := newTestAnalyticsService(now)

	user := &models.User{BaseModel: models.BaseModel{ID: "u1"}}
	require.NoError(t, svc.TrackEvent(ctx, nil, user, &dto.AnalyticsEventRequest{
		EventType: models.EventTypePageView,
		Page:      "/programs",
		Metadata:  map[string]interface{}{"ref": "tiktok"},
	}))
	require.NoError(t, svc.TrackEvent(ctx, nil, nil, &dto.AnalyticsEventRequest{EventType: "click", Page: "/"}))

	require.Len(t, events.events, 2)

	attributed := events.events[0]
	require.NotNil(t, attributed.UserID)
	assert.Equal(t, "u1", *attributed.UserID)
	assert.Equal(t, "tiktok", attributed.Metadata["ref"])
	assert.Equal(t, now, attributed.Timestamp)

	anonymous := events.events[1]
	assert.Nil(t, anonymous.UserID)
	assert.NotNil(t, anonymous.Metadata)
}

func TestGetDashboard(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, events, users := newTestAnalyticsService(now)

	require.NoError(t, users.Create(nil, &models.User{Email: "a@x.com", Subscriptions: []string{"p1"}}))
	require.NoError(t, users.Create(nil, &models.User{Email: "b@x.com", Subscriptions: []string{}}))
	require.NoError(t, users.Create(nil, &models.User{Email: "c@x.com"}))

	// 60 просмотров за последние 60 часов, плюс старые и другие типы
	for i := 0; i < 60; i++ {
		require.NoError(t, events.Create(nil, &models.AnalyticsEvent{
			EventType: models.EventTypePageView,
			Page:      fmt.Sprintf("/p/%d", i),
			Timestamp: now.Add(-time.Duration(i) * time.Hour),
		}))
	}
	require.NoError(t, events.Create(nil, &models.AnalyticsEvent{
		EventType: models.EventTypePageView,
		Timestamp: now.Add(-7*24*time.Hour - time.Minute),
	}))
	require.NoError(t, events.Create(nil, &models.AnalyticsEvent{
		EventType: models.EventTypePageView,
		Timestamp: now.Add(-7 * 24 * time.Hour),
	}))
	require.NoError(t, events.Create(nil, &models.AnalyticsEvent{
		EventType: "click",
		Timestamp: now,
	}))

	dashboard, err := svc.GetDashboard(ctx, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(3), dashboard.TotalUsers)
	assert.Equal(t, int64(1), dashboard.TotalSubscriptions)
	assert.Equal(t, int64(61), dashboard.PageViews7d)

	require.Len(t, dashboard.RecentEvents, recentEventsLimit)
	for i := 1; i < len(dashboard.RecentEvents); i++ {
		assert.False(t, dashboard.RecentEvents[i].Timestamp.After(dashboard.RecentEvents[i-1].Timestamp))
	}
}

func TestGetDashboard_Empty(t *testing.T) {
	svc, _, _ := newTestAnalyticsService(time.Now())

	dashboard, err := svc.GetDashboard(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, dashboard.TotalUsers)
	assert.NotNil(t, dashboard.RecentEvents)
	assert.Empty(t, dashboard.RecentEvents)
}
