package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/mvolkova/studio-bot/internal/dialog"
)

// HandleShowRecords показывает владельцу записи с сегодняшнего дня.
func (h *Handlers) HandleShowRecords(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.SendRecordsList(ctx, b, update.Message.Chat.ID)
}

// SendRecordsList отправляет список записей в указанный чат.
func (h *Handlers) SendRecordsList(ctx context.Context, b *bot.Bot, chatID int64) {
	records, err := h.bookingService.ListFromToday(ctx)
	if err != nil {
		h.logger.Error("Failed to list records", zap.Error(err))
		h.sendStorageError(ctx, b, chatID)
		return
	}

	if len(records) == 0 {
		h.send(ctx, b, chatID, "❌ Нет записей на сегодня или позже.", nil)
		return
	}

	var sb strings.Builder
	sb.WriteString("📋 <b>Текущие записи:</b>\n\n")
	for _, r := range records {
		date := "—"
		if r.Date != nil {
			date = r.Date.Format(dialog.DateLayout)
		}
		fmt.Fprintf(&sb,
			"🆔 Заявка №%d\n👤 Клиент: %s %s\n📱 Телефон: %s\n📧 Username: @%s\n📅 Дата: %s\n⏰ Время: %s\n💬 Комментарий: %s\n-----------------------------\n",
			r.ID,
			r.FirstName, r.LastName,
			orDash(r.PhoneNumber),
			orDash(r.Username),
			date,
			orDash(r.TimeOfDay),
			orDash(r.Comments),
		)
	}

	_, err = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      sb.String(),
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		h.logger.Error("Failed to send records", zap.Error(err))
	}
}

// HandleShowStatistics показывает меню статистики посещений.
func (h *Handlers) HandleShowStatistics(ctx context.Context, b *bot.Bot, update *models.Update) {
	markup := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "👥 Уникальные пользователи", CallbackData: "stats:unique"}},
			{{Text: "🔄 Повторные посещения", CallbackData: "stats:repeat"}},
			{{Text: "📭 Неактивные пользователи", CallbackData: "stats:inactive"}},
			{{Text: "🕐 Последние посетители", CallbackData: "stats:recent"}},
		},
	}

	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text: "📊 <b>Статистика посещений:</b>\n\n" +
			"👥 Уникальные пользователи: [Нажмите кнопку]\n" +
			"🔄 Повторные посещения: [Нажмите кнопку]\n" +
			"📭 Неактивные пользователи: [Нажмите кнопку]\n" +
			"🕐 Последние посетители: [Нажмите кнопку]\n",
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: markup,
	})
	if err != nil {
		h.logger.Error("Failed to send statistics menu", zap.Error(err))
	}
}

// HandleCalendarMenu показывает владельцу меню календаря.
func (h *Handlers) HandleCalendarMenu(ctx context.Context, b *bot.Bot, update *models.Update) {
	markup := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "Освободить время под записи", CallbackData: "unlock_dates"}},
			{{Text: "Прислать список записей", CallbackData: "cal_records"}},
			{{Text: "Расписание картинкой", CallbackData: "cal_week"}},
			{{Text: "Выгрузить записи в Excel", CallbackData: "cal_export"}},
		},
	}

	h.send(ctx, b, update.Message.Chat.ID, "Выберите действие:", markup)
}
