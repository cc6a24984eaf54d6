package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/mvolkova/studio-bot/internal/app"
	"github.com/mvolkova/studio-bot/internal/config"
	"github.com/mvolkova/studio-bot/internal/controller"
	"github.com/mvolkova/studio-bot/internal/repository"
	"github.com/mvolkova/studio-bot/internal/schedule"
	"github.com/mvolkova/studio-bot/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Sugar().Infow("Starting studio bot",
		"environment", cfg.Environment,
		"token_length", len(cfg.TelegramToken))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Database is unreachable", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, "migrations")
	if err != nil {
		logger.Fatal("Failed to init migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	metricsServer := app.NewMetricsServer(cfg.MetricsAddr, logger)
	metricsServer.Start()

	store := schedule.NewStore(schedule.Template{
		StartHour:   cfg.WorkDayStartHour,
		EndHour:     cfg.WorkDayEndHour,
		StepMinutes: cfg.SlotStepMinutes,
	})

	apptRepo := repository.NewAppointmentRepository(pool)
	visitRepo := repository.NewVisitRepository(pool)
	unlockRepo := repository.NewUnlockRepository(pool)

	bookingService := service.NewBookingService(store, apptRepo, unlockRepo, logger)
	statsService := service.NewStatsService(visitRepo, logger)

	if err := bookingService.RestoreSchedule(ctx); err != nil {
		logger.Fatal("Failed to restore schedule", zap.Error(err))
	}

	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	botController := controller.NewBotController(b, cfg, bookingService, statsService, store, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Fatal("Failed to register handlers", zap.Error(err))
	}

	scheduler := app.NewScheduler(bookingService, botController.NotifyOwner(cfg), logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	logger.Info("Bot is up")
	if err := botController.Start(ctx); err != nil {
		logger.Error("Bot stopped with error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := metricsServer.Stop(shutdownCtx); err != nil {
		logger.Error("Failed to stop metrics server", zap.Error(err))
	}

	logger.Info("Bot stopped")
}
