package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/mvolkova/studio-bot/internal/metrics"
	"github.com/mvolkova/studio-bot/internal/model"
)

// HandleStartPhoneRequest просит у клиента номер телефона для связи.
func (h *Handlers) HandleStartPhoneRequest(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.SendPhoneRequest(ctx, b, update.Message.Chat.ID)
}

// SendPhoneRequest отправляет клавиатуру запроса контакта в чат.
func (h *Handlers) SendPhoneRequest(ctx context.Context, b *bot.Bot, chatID int64) {
	h.send(ctx, b, chatID,
		"📋 Пожалуйста, оставьте ваш номер телефона, чтобы мы могли с вами связаться. 😊",
		phoneRequestKeyboard())
}

// HandleContact обрабатывает присланный контакт: сохраняет заявку со
// статусом "awaiting" и уведомляет владельца кнопками Записать/Отклонить.
func (h *Handlers) HandleContact(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Contact == nil {
		return
	}

	contact := update.Message.Contact
	chatID := update.Message.Chat.ID
	metrics.IncUpdateProcessed("contact")

	appt := &model.Appointment{
		UserID:      contact.UserID,
		PhoneNumber: contact.PhoneNumber,
		FirstName:   contact.FirstName,
		LastName:    contact.LastName,
	}
	if from := update.Message.From; from != nil {
		appt.Username = from.Username
		if appt.UserID == 0 {
			appt.UserID = from.ID
		}
	}

	if err := h.bookingService.CreatePhoneRequest(ctx, appt); err != nil {
		h.logger.Error("Failed to save phone request",
			zap.Int64("user_id", appt.UserID),
			zap.Error(err))
		h.sendStorageError(ctx, b, chatID)
		return
	}

	h.notifyOwnerPhoneRequest(ctx, b, appt)

	h.send(ctx, b, chatID,
		"💖 Мы свяжемся с вами совсем скоро, чтобы обсудить все детали. 😊\n\n"+
			"📱 Номер нужен для связи в мессенджерах, а если не получится, то мы попробуем вам позвонить.\n\n"+
			"📋 Вы также можете ознакомиться с краткой информацией о наших процедурах или посетить наши страницы в социальных сетях.",
		removeKeyboard())

	h.SendMainMenu(ctx, b, chatID)
}

// notifyOwnerPhoneRequest шлёт владельцу заявку с кнопками решения и
// сохраняет id сообщения для последующего редактирования.
func (h *Handlers) notifyOwnerPhoneRequest(ctx context.Context, b *bot.Bot, appt *model.Appointment) {
	text := fmt.Sprintf(
		"📩 Запрос на запись (Заявка №%d):\n"+
			"👤 Имя: %s %s\n"+
			"📱 Телефон: %s\n"+
			"📧 Username: @%s\n"+
			"🆔 ID клиента: <code>%d</code>\n\n"+
			"💡 Нажмите на одну из кнопок ниже, чтобы записать клиента или написать ему сообщение.",
		appt.ID,
		appt.FirstName, appt.LastName,
		appt.PhoneNumber,
		orDash(appt.Username),
		appt.UserID,
	)

	markup := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{Text: "✉️ Написать сообщение", URL: fmt.Sprintf("tg://user?id=%d", appt.UserID)},
			},
			{
				{Text: "📝 Записать", CallbackData: fmt.Sprintf("record:%d", appt.ID)},
				{Text: "❌ Отклонить", CallbackData: fmt.Sprintf("decline:%d", appt.ID)},
			},
		},
	}

	sent, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      h.cfg.OwnerChatID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: markup,
	})
	if err != nil {
		h.logger.Error("Failed to notify owner about request",
			zap.Int64("appointment_id", appt.ID),
			zap.Error(err))
		return
	}

	if err := h.bookingService.AttachNotification(ctx, appt.ID, sent.ID); err != nil {
		h.logger.Warn("Failed to attach notification message id",
			zap.Int64("appointment_id", appt.ID),
			zap.Error(err))
	}
}
