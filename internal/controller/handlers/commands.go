package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	h.dialogs.Clear(chatID)

	if from := update.Message.From; from != nil && !h.cfg.IsOwner(chatID) {
		h.statsService.TrackVisit(ctx, from.ID, from.Username, from.FirstName, from.LastName, ActionStart)
	}

	h.SendMainMenu(ctx, b, chatID)
}

// SendMainMenu показывает главное меню: у владельца и клиента оно разное.
func (h *Handlers) SendMainMenu(ctx context.Context, b *bot.Bot, chatID int64) {
	if h.cfg.IsOwner(chatID) {
		h.send(ctx, b, chatID,
			"👨‍💼 Здравствуйте, Администратор! Я помогу вам управлять записями и пользователями.\n\n"+
				"Выберите одну из опций ниже, чтобы продолжить.",
			ownerMenuKeyboard())
		return
	}

	h.send(ctx, b, chatID,
		"👋 Приветствуем вас! Я ваш личный помощник. 🤖\n\n"+
			"Готов помочь вам с записью на процедуры и предоставить всю информацию о наших услугах! 😊\n\n"+
			"Выберите одну из опций ниже, чтобы продолжить:👇",
		clientMenuKeyboard())
}

// send отправляет сообщение, ошибку только логирует: падение отправки
// не должно ронять обработку апдейта.
func (h *Handlers) send(ctx context.Context, b *bot.Bot, chatID int64, text string, markup models.ReplyMarkup) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: markup,
	})
	if err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}

// sendStorageError единое сообщение о недоступности хранилища.
func (h *Handlers) sendStorageError(ctx context.Context, b *bot.Bot, chatID int64) {
	h.send(ctx, b, chatID, "❌ Произошла ошибка при сохранении. Попробуйте позже.", nil)
}
