package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/mvolkova/studio-bot/internal/model"
)

// HandleShowProcedures показывает каталог процедур с описаниями.
func (h *Handlers) HandleShowProcedures(ctx context.Context, b *bot.Bot, update *models.Update) {
	var sb strings.Builder
	sb.WriteString("💉 <b>Виды процедур и их описание:</b>\n\n")
	for i, p := range model.Procedures {
		fmt.Fprintf(&sb, "%d. <b>%s</b> — %s\n", i+1, p.Title, p.Description)
	}
	sb.WriteString("\nВыберите интересующую процедуру, чтобы узнать больше. 😊")

	markup := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "ℹ️ Узнать подробнее", CallbackData: "get_contact"}},
		},
	}

	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        sb.String(),
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: markup,
	})
	if err != nil {
		h.logger.Error("Failed to send procedures", zap.Error(err))
	}
}

// HandleShowSocialMedia отправляет ссылки на социальные сети студии.
func (h *Handlers) HandleShowSocialMedia(ctx context.Context, b *bot.Bot, update *models.Update) {
	markup := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "📲 Перейти в Instagram", URL: "https://www.instagram.com/your_instagram"}},
		},
	}

	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text: "💖 Давайте оставаться на связи! Я выкладываю полезные посты, делюсь акциями, розыгрышами и новостями в Instagram.\n\n" +
			"📸 <b>Мой Instagram:</b> <a href='https://www.instagram.com/your_instagram'>@your_instagram</a>\n\n" +
			"Подписывайтесь, чтобы быть в курсе всех обновлений! 🥰",
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: markup,
	})
	if err != nil {
		h.logger.Error("Failed to send social media", zap.Error(err))
	}
}
