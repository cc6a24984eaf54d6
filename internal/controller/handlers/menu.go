package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/mvolkova/studio-bot/internal/metrics"
)

// HandleTextMessage маршрутизирует текстовые сообщения: сначала кнопки
// меню, затем активный диалог записи по его текущему шагу.
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	text := update.Message.Text
	// Команды обрабатываются своими handlers
	if strings.HasPrefix(text, "/") {
		return
	}

	chatID := update.Message.Chat.ID
	isOwner := h.cfg.IsOwner(chatID)
	metrics.IncUpdateProcessed("message")

	if from := update.Message.From; from != nil && !isOwner {
		h.statsService.TrackVisit(ctx, from.ID, from.Username, from.FirstName, from.LastName, actionFor(text))
	}

	if isOwner {
		switch text {
		case BtnBookClient:
			h.startAdminBooking(ctx, b, chatID, 0)
			return
		case BtnShowRecords:
			h.HandleShowRecords(ctx, b, update)
			return
		case BtnShowUsers:
			h.HandleShowStatistics(ctx, b, update)
			return
		case BtnCalendar:
			h.HandleCalendarMenu(ctx, b, update)
			return
		}
	} else {
		switch text {
		case BtnProcedures:
			h.HandleShowProcedures(ctx, b, update)
			return
		case BtnBookSelf:
			h.HandleStartSelfBooking(ctx, b, update)
			return
		case BtnLeaveRequest:
			h.HandleStartPhoneRequest(ctx, b, update)
			return
		case BtnSocialMedia:
			h.HandleShowSocialMedia(ctx, b, update)
			return
		}
	}

	// Не кнопка меню: возможно, это шаг активного диалога записи
	if h.handleDialogInput(ctx, b, update) {
		return
	}

	h.send(ctx, b, chatID, "🤔 Не понимаю. Выберите одну из опций меню ниже 👇", nil)
	h.SendMainMenu(ctx, b, chatID)
}

func actionFor(text string) string {
	switch text {
	case BtnProcedures:
		return ActionProcedures
	case BtnBookSelf:
		return ActionBooking
	case BtnLeaveRequest:
		return ActionPhoneRequest
	case BtnSocialMedia:
		return ActionSocialMedia
	default:
		return "message"
	}
}
