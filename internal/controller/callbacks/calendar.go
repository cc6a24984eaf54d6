package callbacks

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/mvolkova/studio-bot/internal/export"
	"github.com/mvolkova/studio-bot/internal/render"
)

// HandleStats отвечает всплывающим окном с выбранным показателем.
func (h *Handler) HandleStats(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	stats, err := h.StatsService.Stats(ctx)
	if err != nil {
		h.Logger.Error("Failed to load visit stats", zap.Error(err))
		AnswerCallbackAlert(ctx, b, callback.ID, "Не удалось получить статистику ❌")
		return
	}

	switch strings.TrimPrefix(callback.Data, StatsAction) {
	case "unique":
		AnswerCallbackAlert(ctx, b, callback.ID,
			fmt.Sprintf("👥 Уникальных пользователей: %d", stats.UniqueUsers))
	case "repeat":
		AnswerCallbackAlert(ctx, b, callback.ID,
			fmt.Sprintf("🔄 Повторных посетителей: %d", stats.RepeatVisitors))
	case "inactive":
		AnswerCallbackAlert(ctx, b, callback.ID,
			fmt.Sprintf("📭 Неактивных пользователей: %d", stats.InactiveUsers))
	case "recent":
		h.sendRecentVisitors(ctx, b, callback)
	default:
		AnswerCallback(ctx, b, callback.ID, "")
	}
}

// Последние посетители не влезают во всплывающее окно, поэтому
// уходят отдельным сообщением в чат владельца.
func (h *Handler) sendRecentVisitors(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	msg := GetMessageFromCallback(callback)
	if msg == nil {
		AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	visits, err := h.StatsService.RecentVisitors(ctx, 10)
	if err != nil {
		h.Logger.Error("Failed to list recent visitors", zap.Error(err))
		AnswerCallbackAlert(ctx, b, callback.ID, "Не удалось получить статистику ❌")
		return
	}

	AnswerCallback(ctx, b, callback.ID, "")

	if len(visits) == 0 {
		_, _ = b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: msg.Chat.ID,
			Text:   "Посетителей пока не было 📭",
		})
		return
	}

	var sb strings.Builder
	sb.WriteString("🕐 <b>Последние посетители:</b>\n\n")
	for _, v := range visits {
		name := strings.TrimSpace(v.FirstName + " " + v.LastName)
		if name == "" {
			name = fmt.Sprintf("id %d", v.UserID)
		}
		sb.WriteString(fmt.Sprintf("%s — %s", v.LastSeen.Format("02.01 15:04"), name))
		if v.Username != "" {
			sb.WriteString(" (@" + v.Username + ")")
		}
		sb.WriteString(fmt.Sprintf(", визитов: %d\n", v.VisitCount))
	}

	_, err = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    msg.Chat.ID,
		Text:      sb.String(),
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		h.Logger.Error("Failed to send recent visitors", zap.Error(err))
	}
}

// HandleCalendarRecords присылает список записей в чат владельца.
func (h *Handler) HandleCalendarRecords(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	msg := GetMessageFromCallback(callback)
	if msg == nil {
		AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	AnswerCallback(ctx, b, callback.ID, "")
	h.SendRecordsList(ctx, b, msg.Chat.ID)
}

// HandleCalendarWeek присылает расписание на неделю картинкой.
func (h *Handler) HandleCalendarWeek(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	msg := GetMessageFromCallback(callback)
	if msg == nil {
		AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	imageData, err := render.WeekPNG(h.Store, 7)
	if err != nil {
		h.Logger.Error("Failed to render week image", zap.Error(err))
		AnswerCallbackAlert(ctx, b, callback.ID, "Не удалось построить расписание ❌")
		return
	}

	AnswerCallback(ctx, b, callback.ID, "")

	_, err = b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:  msg.Chat.ID,
		Photo:   &models.InputFileUpload{Filename: "week.png", Data: bytes.NewReader(imageData)},
		Caption: "🗓 Доступность на неделю: зелёное — свободно",
	})
	if err != nil {
		h.Logger.Error("Failed to send week image", zap.Error(err))
	}
}

// HandleCalendarExport выгружает все записи файлом xlsx.
func (h *Handler) HandleCalendarExport(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	msg := GetMessageFromCallback(callback)
	if msg == nil {
		AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	appts, err := h.BookingService.ListAll(ctx)
	if err != nil {
		h.Logger.Error("Failed to list appointments for export", zap.Error(err))
		AnswerCallbackAlert(ctx, b, callback.ID, "Не удалось выгрузить записи ❌")
		return
	}

	if len(appts) == 0 {
		AnswerCallbackAlert(ctx, b, callback.ID, "Записей пока нет 📭")
		return
	}

	buf, err := export.AppointmentsWorkbook(appts)
	if err != nil {
		h.Logger.Error("Failed to build workbook", zap.Error(err))
		AnswerCallbackAlert(ctx, b, callback.ID, "Не удалось выгрузить записи ❌")
		return
	}

	AnswerCallback(ctx, b, callback.ID, "")

	_, err = b.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID:   msg.Chat.ID,
		Document: &models.InputFileUpload{Filename: "records.xlsx", Data: buf},
		Caption:  fmt.Sprintf("📋 Выгрузка записей: %d шт.", len(appts)),
	})
	if err != nil {
		h.Logger.Error("Failed to send export", zap.Error(err))
	}
}
