package handlers

import (
	"go.uber.org/zap"

	"github.com/mvolkova/studio-bot/internal/config"
	"github.com/mvolkova/studio-bot/internal/dialog"
	"github.com/mvolkova/studio-bot/internal/schedule"
	"github.com/mvolkova/studio-bot/internal/service"
)

// Handlers содержит все зависимости для обработки сообщений
type Handlers struct {
	cfg            *config.Config
	bookingService *service.BookingService
	statsService   *service.StatsService
	presenter      *schedule.Presenter
	dialogs        *dialog.Store
	logger         *zap.Logger
}

// NewHandlers создаёт новый обработчик сообщений
func NewHandlers(
	cfg *config.Config,
	bookingService *service.BookingService,
	statsService *service.StatsService,
	presenter *schedule.Presenter,
	dialogs *dialog.Store,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		cfg:            cfg,
		bookingService: bookingService,
		statsService:   statsService,
		presenter:      presenter,
		dialogs:        dialogs,
		logger:         logger,
	}
}

// Dialogs отдаёт хранилище диалогов (нужно callback-обработчикам).
func (h *Handlers) Dialogs() *dialog.Store {
	return h.dialogs
}
