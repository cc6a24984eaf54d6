package callbacks

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleRecordAction запускает у владельца диалог назначения даты
// и времени по заявке из уведомления.
func (h *Handler) HandleRecordAction(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	msg := GetMessageFromCallback(callback)
	if msg == nil {
		AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	recordID, err := ParseIDFromCallback(callback.Data)
	if err != nil {
		AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	appt, err := h.BookingService.GetRequest(ctx, recordID)
	if err != nil {
		h.Logger.Error("Failed to load request", zap.Int64("record_id", recordID), zap.Error(err))
		AnswerCallbackAlert(ctx, b, callback.ID, "Не удалось загрузить заявку ❌")
		return
	}
	if appt == nil {
		AnswerCallbackAlert(ctx, b, callback.ID, "Заявка не найдена ❌")
		return
	}

	AnswerCallback(ctx, b, callback.ID, "")
	h.StartAdminBooking(ctx, b, msg.Chat.ID, recordID)
}

// HandleDeclineAction отклоняет заявку: уведомление владельца
// редактируется в итоговый текст, клиенту уходит отказ.
func (h *Handler) HandleDeclineAction(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	msg := GetMessageFromCallback(callback)
	if msg == nil {
		AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	recordID, err := ParseIDFromCallback(callback.Data)
	if err != nil {
		AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	appt, err := h.BookingService.DeclineRequest(ctx, recordID)
	if err != nil {
		h.Logger.Error("Failed to decline request", zap.Int64("record_id", recordID), zap.Error(err))
		AnswerCallbackAlert(ctx, b, callback.ID, "Не удалось отклонить заявку ❌")
		return
	}
	if appt == nil {
		AnswerCallbackAlert(ctx, b, callback.ID, "Заявка не найдена ❌")
		return
	}

	AnswerCallback(ctx, b, callback.ID, "Заявка отклонена")

	// Кнопки убираются вместе с текстом: повторное нажатие невозможно.
	_, err = b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
		Text: fmt.Sprintf("❌ Заявка №%d отклонена.\n👤 %s %s\n📱 %s",
			appt.ID, appt.FirstName, appt.LastName, appt.PhoneNumber),
	})
	if err != nil {
		h.Logger.Error("Failed to edit decline notification", zap.Error(err))
	}

	if appt.UserID != 0 {
		_, err = b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: appt.UserID,
			Text:   "К сожалению, сейчас мы не можем вас записать. 😔 Попробуйте, пожалуйста, позже.",
		})
		if err != nil {
			h.Logger.Error("Failed to notify client about decline",
				zap.Int64("user_id", appt.UserID), zap.Error(err))
			return
		}
		h.SendMainMenu(ctx, b, appt.UserID)
	}
}
