package callbacks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/mvolkova/studio-bot/internal/schedule"
)

// HandleUnlockDates показывает владельцу сетку дат для открытия слотов.
// Горизонт шире клиентского: владелец планирует наперёд.
func (h *Handler) HandleUnlockDates(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	msg := GetMessageFromCallback(callback)
	if msg == nil {
		AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	AnswerCallback(ctx, b, callback.ID, "")
	h.renderUnlockDates(ctx, b, msg)
}

func (h *Handler) renderUnlockDates(ctx context.Context, b *bot.Bot, msg *models.Message) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var rows [][]models.InlineKeyboardButton
	var row []models.InlineKeyboardButton
	for i := 0; i < h.Cfg.AdminHorizonDays; i++ {
		d := today.AddDate(0, 0, i)
		row = append(row, models.InlineKeyboardButton{
			Text:         formatDateButton(d),
			CallbackData: UnlockDate + d.Format(callbackDateLayout),
		})
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	h.editOrSend(ctx, b, msg,
		"Выберите дату, на которой нужно открыть время 🗓️",
		&models.InlineKeyboardMarkup{InlineKeyboard: rows}, true)
}

// HandleUnlockDate показывает закрытые слоты даты. Повторные нажатия
// набирают выборку, галочка отмечает выбранное.
func (h *Handler) HandleUnlockDate(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	msg := GetMessageFromCallback(callback)
	if msg == nil {
		AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	date, err := parseCallbackDate(strings.TrimPrefix(callback.Data, UnlockDate))
	if err != nil {
		h.Logger.Warn("Bad date in callback", zap.String("data", callback.Data), zap.Error(err))
		AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	AnswerCallback(ctx, b, callback.ID, "")
	h.renderUnlockDate(ctx, b, msg, callback.From.ID, date)
}

func (h *Handler) renderUnlockDate(ctx context.Context, b *bot.Bot, msg *models.Message, adminID int64, date time.Time) {
	h.Store.EnsureDate(date)
	locked := h.Store.LockedTimes(date)

	if len(locked) == 0 {
		markup := &models.InlineKeyboardMarkup{
			InlineKeyboard: [][]models.InlineKeyboardButton{
				{{Text: "⬅️ Назад", CallbackData: UnlockDates}},
			},
		}
		h.editOrSend(ctx, b, msg,
			fmt.Sprintf("На %s всё время уже открыто ✅", formatDateButton(date)),
			markup, true)
		return
	}

	var rows [][]models.InlineKeyboardButton
	var row []models.InlineKeyboardButton
	for _, t := range locked {
		label := t.String()
		if h.Pending.IsSelected(adminID, date, t) {
			label = "✅ " + label
		}
		row = append(row, models.InlineKeyboardButton{
			Text:         label,
			CallbackData: fmt.Sprintf("%s%s:%s", UnlockTime, date.Format(callbackDateLayout), t),
		})
		if len(row) == 4 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows,
		[]models.InlineKeyboardButton{
			{Text: "✅ Готово", CallbackData: UnlockDone + date.Format(callbackDateLayout)},
		},
		[]models.InlineKeyboardButton{
			{Text: "⬅️ Назад", CallbackData: UnlockDates},
		},
	)

	h.editOrSend(ctx, b, msg,
		fmt.Sprintf("Дата: %s\nОтметьте время, которое нужно открыть, и нажмите «Готово».", formatDateButton(date)),
		&models.InlineKeyboardMarkup{InlineKeyboard: rows}, true)
}

// HandleUnlockToggle переключает слот в выборке и перерисовывает сетку.
func (h *Handler) HandleUnlockToggle(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	msg := GetMessageFromCallback(callback)
	if msg == nil {
		AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	parts := strings.SplitN(callback.Data, ":", 3)
	if len(parts) != 3 {
		AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	date, err := parseCallbackDate(parts[1])
	if err != nil {
		AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	slotTime, err := schedule.ParseTimeOfDay(parts[2])
	if err != nil {
		AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	selected := h.Pending.Toggle(callback.From.ID, date, slotTime)
	if selected {
		AnswerCallback(ctx, b, callback.ID, fmt.Sprintf("%s отмечено", slotTime))
	} else {
		AnswerCallback(ctx, b, callback.ID, fmt.Sprintf("%s снято", slotTime))
	}

	h.renderUnlockDate(ctx, b, msg, callback.From.ID, date)
}

// HandleUnlockDone открывает все отмеченные слоты даты одной операцией.
func (h *Handler) HandleUnlockDone(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	msg := GetMessageFromCallback(callback)
	if msg == nil {
		AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	date, err := parseCallbackDate(strings.TrimPrefix(callback.Data, UnlockDone))
	if err != nil {
		AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	adminID := callback.From.ID
	times := h.Pending.Selected(adminID, date)
	if len(times) == 0 {
		AnswerCallbackAlert(ctx, b, callback.ID, "Ничего не отмечено. Сначала выберите время.")
		return
	}

	if err := h.BookingService.UnlockSlots(ctx, adminID, date, times); err != nil {
		// Слоты уже открыты, не записался только журнал: после
		// перезапуска бота их придётся открыть заново.
		h.Logger.Error("Failed to journal unlocked slots", zap.Error(err))
		AnswerCallbackAlert(ctx, b, callback.ID,
			fmt.Sprintf("Слоты (%d) открыты, но не сохранены ⚠️ После перезапуска бота их нужно будет открыть заново.", len(times)))
	} else {
		AnswerCallback(ctx, b, callback.ID, fmt.Sprintf("Открыто слотов: %d ✅", len(times)))
	}

	h.Pending.Clear(adminID, date)
	h.renderUnlockDates(ctx, b, msg)
}
