package callbacks

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Формат даты внутри callback data. Человекочитаемые подписи кнопок
// форматируются отдельно.
const callbackDateLayout = "2006-01-02"

// AnswerCallback отвечает на callback query (без alert)
func AnswerCallback(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       false,
	})
}

// AnswerCallbackAlert отвечает на callback query с alert (всплывающее окно)
func AnswerCallbackAlert(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}

// GetMessageFromCallback извлекает сообщение из callback query
func GetMessageFromCallback(callback *models.CallbackQuery) *models.Message {
	if callback.Message.Message != nil {
		return callback.Message.Message
	}
	return nil
}

// ParseIDFromCallback извлекает ID из callback data
// Например: "record:123" -> 123
func ParseIDFromCallback(data string) (int64, error) {
	parts := strings.Split(data, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid callback data format")
	}
	return strconv.ParseInt(parts[1], 10, 64)
}

// parseCallbackDate разбирает дату из сегмента callback data.
func parseCallbackDate(segment string) (time.Time, error) {
	d, err := time.ParseInLocation(callbackDateLayout, segment, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse callback date: %w", err)
	}
	return d, nil
}

var weekdayShortNames = []string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}

// formatDateButton подписывает кнопку даты: "02.01 (Пт)".
func formatDateButton(d time.Time) string {
	return fmt.Sprintf("%s (%s)", d.Format("02.01"), weekdayShortNames[int(d.Weekday())])
}
