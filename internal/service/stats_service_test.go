package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mvolkova/studio-bot/internal/model"
)

type mockVisitStore struct {
	mock.Mock
}

func (m *mockVisitStore) Track(ctx context.Context, userID int64, username, firstName, lastName, action string) error {
	args := m.Called(ctx, userID, username, firstName, lastName, action)
	return args.Error(0)
}

func (m *mockVisitStore) Stats(ctx context.Context, inactiveAfter time.Duration) (*model.VisitStats, error) {
	args := m.Called(ctx, inactiveAfter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VisitStats), args.Error(1)
}

func (m *mockVisitStore) ListRecent(ctx context.Context, limit int) ([]*model.Visit, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Visit), args.Error(1)
}

func TestTrackVisitSwallowsStorageError(t *testing.T) {
	visits := new(mockVisitStore)
	svc := NewStatsService(visits, zap.NewNop())

	visits.On("Track", mock.Anything, int64(7), "user", "Имя", "Фамилия", "start").
		Return(fmt.Errorf("db down"))

	// Ошибка статистики не должна ломать обработку сообщения
	svc.TrackVisit(context.Background(), 7, "user", "Имя", "Фамилия", "start")
	visits.AssertExpectations(t)
}

func TestStatsUsesInactivityWindow(t *testing.T) {
	visits := new(mockVisitStore)
	svc := NewStatsService(visits, zap.NewNop())

	visits.On("Stats", mock.Anything, 30*24*time.Hour).Return(&model.VisitStats{
		UniqueUsers: 12, RepeatVisitors: 4, InactiveUsers: 3,
	}, nil)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, stats.UniqueUsers)
	assert.Equal(t, 4, stats.RepeatVisitors)
	assert.Equal(t, 3, stats.InactiveUsers)
}

func TestRecentVisitorsPassesLimit(t *testing.T) {
	visits := new(mockVisitStore)
	svc := NewStatsService(visits, zap.NewNop())

	visits.On("ListRecent", mock.Anything, 10).Return([]*model.Visit{
		{UserID: 7, Username: "user", VisitCount: 3},
	}, nil)

	got, err := svc.RecentVisitors(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(7), got[0].UserID)
}
