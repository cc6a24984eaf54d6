// Package callbacks маршрутизирует нажатия inline-кнопок и реализует
// их обработчики: выбор слота клиентом, открытие времени владельцем,
// действия по заявкам и календарю.
package callbacks

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/mvolkova/studio-bot/internal/metrics"
)

// ========================
// Callback Data Patterns
// ========================

// Клиентский сценарий записи
const (
	ChooseProcedure = "proc:"     // proc:botox
	ChooseDate      = "bookdate:" // bookdate:botox:2026-01-02
	ChooseTime      = "booktime:" // booktime:botox:2026-01-02:09:30
	GetContact      = "get_contact"
)

// Владелец: открытие слотов
const (
	UnlockDates = "unlock_dates"
	UnlockDate  = "unlock_date:" // unlock_date:2026-01-02
	UnlockTime  = "unlock_time:" // unlock_time:2026-01-02:09:30
	UnlockDone  = "unlock_done:" // unlock_done:2026-01-02
)

// Владелец: заявки и календарь
const (
	RecordAction  = "record:"  // record:123
	DeclineAction = "decline:" // decline:123
	StatsAction   = "stats:"   // stats:unique
	CalRecords    = "cal_records"
	CalWeek       = "cal_week"
	CalExport     = "cal_export"
)

// HandleCallbackQuery точка входа для нажатий inline-кнопок.
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	Route(ctx, b, update.CallbackQuery, h)
}

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	data := callback.Data
	metrics.IncUpdateProcessed("callback")

	h.Logger.Info("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID))

	// Владельческие кнопки не исполняются от чужих нажатий: уведомления
	// пересылаемы, а callback data подделываема.
	if isOwnerCallback(data) && !h.Cfg.IsOwner(callback.From.ID) {
		AnswerCallbackAlert(ctx, b, callback.ID, "Недостаточно прав ❌")
		return
	}

	switch {
	// ===== Клиент: запись =====
	case strings.HasPrefix(data, ChooseProcedure):
		h.HandleProcedureChosen(ctx, b, callback)
	case strings.HasPrefix(data, ChooseDate):
		h.HandleDateChosen(ctx, b, callback)
	case strings.HasPrefix(data, ChooseTime):
		h.HandleTimeChosen(ctx, b, callback)
	case data == GetContact:
		h.HandleGetContact(ctx, b, callback)

	// ===== Владелец: открытие слотов =====
	case data == UnlockDates:
		h.HandleUnlockDates(ctx, b, callback)
	case strings.HasPrefix(data, UnlockDate):
		h.HandleUnlockDate(ctx, b, callback)
	case strings.HasPrefix(data, UnlockTime):
		h.HandleUnlockToggle(ctx, b, callback)
	case strings.HasPrefix(data, UnlockDone):
		h.HandleUnlockDone(ctx, b, callback)

	// ===== Владелец: заявки =====
	case strings.HasPrefix(data, RecordAction):
		h.HandleRecordAction(ctx, b, callback)
	case strings.HasPrefix(data, DeclineAction):
		h.HandleDeclineAction(ctx, b, callback)

	// ===== Владелец: статистика и календарь =====
	case strings.HasPrefix(data, StatsAction):
		h.HandleStats(ctx, b, callback)
	case data == CalRecords:
		h.HandleCalendarRecords(ctx, b, callback)
	case data == CalWeek:
		h.HandleCalendarWeek(ctx, b, callback)
	case data == CalExport:
		h.HandleCalendarExport(ctx, b, callback)

	default:
		h.Logger.Warn("Unknown callback", zap.String("data", data))
		AnswerCallback(ctx, b, callback.ID, "")
	}
}

func isOwnerCallback(data string) bool {
	switch {
	case data == UnlockDates, data == CalRecords, data == CalWeek, data == CalExport:
		return true
	case strings.HasPrefix(data, UnlockDate),
		strings.HasPrefix(data, UnlockTime),
		strings.HasPrefix(data, UnlockDone),
		strings.HasPrefix(data, RecordAction),
		strings.HasPrefix(data, DeclineAction),
		strings.HasPrefix(data, StatsAction):
		return true
	}
	return false
}
