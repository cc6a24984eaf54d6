package callbacks

import (
	"context"

	"github.com/go-telegram/bot"
	"go.uber.org/zap"

	"github.com/mvolkova/studio-bot/internal/config"
	"github.com/mvolkova/studio-bot/internal/dialog"
	"github.com/mvolkova/studio-bot/internal/schedule"
	"github.com/mvolkova/studio-bot/internal/service"
)

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	Cfg            *config.Config
	BookingService *service.BookingService
	StatsService   *service.StatsService
	Presenter      *schedule.Presenter
	Store          *schedule.Store
	Pending        *schedule.PendingSelection
	Dialogs        *dialog.Store
	Logger         *zap.Logger

	// Функции-хэндлеры из основного контроллера
	StartAdminBooking func(ctx context.Context, b *bot.Bot, chatID int64, recordID int64)
	SendRecordsList   func(ctx context.Context, b *bot.Bot, chatID int64)
	SendPhoneRequest  func(ctx context.Context, b *bot.Bot, chatID int64)
	SendMainMenu      func(ctx context.Context, b *bot.Bot, chatID int64)
}
