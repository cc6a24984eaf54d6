package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mvolkova/studio-bot/internal/model"
)

// Неактивным считается пользователь, не заходивший месяц.
const inactiveAfter = 30 * 24 * time.Hour

// VisitStore хранилище посещений. Реализуется repository.VisitRepository.
type VisitStore interface {
	Track(ctx context.Context, userID int64, username, firstName, lastName, action string) error
	Stats(ctx context.Context, inactiveAfter time.Duration) (*model.VisitStats, error)
	ListRecent(ctx context.Context, limit int) ([]*model.Visit, error)
}

type StatsService struct {
	visitRepo VisitStore
	logger    *zap.Logger
}

func NewStatsService(visitRepo VisitStore, logger *zap.Logger) *StatsService {
	return &StatsService{
		visitRepo: visitRepo,
		logger:    logger,
	}
}

// TrackVisit отмечает действие пользователя для статистики.
func (s *StatsService) TrackVisit(ctx context.Context, userID int64, username, firstName, lastName, action string) {
	if err := s.visitRepo.Track(ctx, userID, username, firstName, lastName, action); err != nil {
		// Статистика не должна ломать обработку сообщения
		s.logger.Warn("Failed to track visit",
			zap.Int64("user_id", userID),
			zap.String("action", action),
			zap.Error(err))
	}
}

// Stats возвращает агрегаты посещений.
func (s *StatsService) Stats(ctx context.Context) (*model.VisitStats, error) {
	return s.visitRepo.Stats(ctx, inactiveAfter)
}

// RecentVisitors возвращает последних посетителей.
func (s *StatsService) RecentVisitors(ctx context.Context, limit int) ([]*model.Visit, error) {
	return s.visitRepo.ListRecent(ctx, limit)
}
