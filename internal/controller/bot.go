package controller

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/mvolkova/studio-bot/internal/config"
	"github.com/mvolkova/studio-bot/internal/controller/callbacks"
	"github.com/mvolkova/studio-bot/internal/controller/handlers"
	"github.com/mvolkova/studio-bot/internal/dialog"
	"github.com/mvolkova/studio-bot/internal/schedule"
	"github.com/mvolkova/studio-bot/internal/service"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	cfg *config.Config,
	bookingService *service.BookingService,
	statsService *service.StatsService,
	store *schedule.Store,
	logger *zap.Logger,
) *BotController {
	presenter := schedule.NewPresenter(store)
	dialogs := dialog.NewStore()

	// Создаём обработчики команд
	cmdHandlers := handlers.NewHandlers(
		cfg,
		bookingService,
		statsService,
		presenter,
		dialogs,
		logger,
	)

	// Создаём callback handler с зависимостями
	callbackHandler := &callbacks.Handler{
		Cfg:            cfg,
		BookingService: bookingService,
		StatsService:   statsService,
		Presenter:      presenter,
		Store:          store,
		Pending:        schedule.NewPendingSelection(),
		Dialogs:        dialogs,
		Logger:         logger,

		StartAdminBooking: cmdHandlers.StartAdminBookingForRecord,
		SendRecordsList:   cmdHandlers.SendRecordsList,
		SendPhoneRequest:  cmdHandlers.SendPhoneRequest,
		SendMainMenu:      cmdHandlers.SendMainMenu,
	}

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
	}
}

// NotifyOwner шлёт текст в чат владельца (для фоновых задач).
func (c *BotController) NotifyOwner(cfg *config.Config) func(ctx context.Context, text string) {
	return func(ctx context.Context, text string) {
		_, err := c.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: cfg.OwnerChatID,
			Text:   text,
		})
		if err != nil {
			c.logger.Error("Failed to notify owner", zap.Error(err))
		}
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)

	// Обработчик текстовых сообщений (кнопки меню и шаги диалога)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Присланный контакт приходит без текста, матчим по полю Contact
	c.bot.RegisterHandlerMatchFunc(func(update *models.Update) bool {
		return update.Message != nil && update.Message.Contact != nil
	}, c.handlers.HandleContact)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу с ботом"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
