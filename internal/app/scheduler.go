package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mvolkova/studio-bot/internal/service"
)

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	bookingService *service.BookingService
	notifyOwner    func(ctx context.Context, text string)
	logger         *zap.Logger
	stopChan       chan struct{}
}

// NewScheduler создаёт новый планировщик. notifyOwner шлёт текст
// в чат владельца.
func NewScheduler(bookingService *service.BookingService, notifyOwner func(ctx context.Context, text string), logger *zap.Logger) *Scheduler {
	return &Scheduler{
		bookingService: bookingService,
		notifyOwner:    notifyOwner,
		logger:         logger,
		stopChan:       make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler")

	go s.runDailyDigestTask(ctx)
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

// runDailyDigestTask раз в сутки присылает владельцу сводку записей
// на сегодня
func (s *Scheduler) runDailyDigestTask(ctx context.Context) {
	// Первый запуск сразу при старте
	s.sendDigest(ctx)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sendDigest(ctx)
		case <-s.stopChan:
			s.logger.Info("Daily digest task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Daily digest task cancelled")
			return
		}
	}
}

// sendDigest собирает записи на сегодняшнюю дату и отправляет владельцу
func (s *Scheduler) sendDigest(ctx context.Context) {
	appts, err := s.bookingService.ListFromToday(ctx)
	if err != nil {
		s.logger.Error("Failed to build daily digest", zap.Error(err))
		return
	}

	today := time.Now().Format("2006-01-02")
	var lines []string
	for _, appt := range appts {
		if appt.Date == nil || appt.Date.Format("2006-01-02") != today {
			continue
		}
		lines = append(lines, fmt.Sprintf("⏰ %s — %s %s (%s)",
			appt.TimeOfDay, appt.FirstName, appt.LastName, appt.Comments))
	}

	if len(lines) == 0 {
		s.logger.Info("Daily digest: no appointments today")
		return
	}

	s.notifyOwner(ctx, "🌅 Записи на сегодня:\n\n"+strings.Join(lines, "\n"))
	s.logger.Info("Daily digest sent", zap.Int("appointments", len(lines)))
}
