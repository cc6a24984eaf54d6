package callbacks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/mvolkova/studio-bot/internal/dialog"
	"github.com/mvolkova/studio-bot/internal/model"
	"github.com/mvolkova/studio-bot/internal/schedule"
)

// HandleProcedureChosen показывает даты со свободными слотами
// под выбранную процедуру.
func (h *Handler) HandleProcedureChosen(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	msg := GetMessageFromCallback(callback)
	if msg == nil {
		AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	code := strings.TrimPrefix(callback.Data, ChooseProcedure)
	proc := model.ProcedureByCode(code)
	if proc == nil {
		AnswerCallbackAlert(ctx, b, callback.ID, "Процедура не найдена ❌")
		return
	}

	AnswerCallback(ctx, b, callback.ID, "")
	h.sendOpenDates(ctx, b, msg, proc, true)
}

// sendOpenDates рисует клавиатуру дат. edit — перерисовать сообщение
// кнопки, иначе отправить новое.
func (h *Handler) sendOpenDates(ctx context.Context, b *bot.Bot, msg *models.Message, proc *model.Procedure, edit bool) {
	dates := h.Presenter.OpenDates(h.Cfg.ClientHorizonDays)

	if len(dates) == 0 {
		text := "К сожалению, свободных слотов на ближайшие дни нет. 😔\n" +
			"Оставьте номер телефона, и мы свяжемся с вами, когда время появится."
		markup := &models.InlineKeyboardMarkup{
			InlineKeyboard: [][]models.InlineKeyboardButton{
				{{Text: "📞 Оставить номер", CallbackData: GetContact}},
			},
		}
		h.editOrSend(ctx, b, msg, text, markup, edit)
		return
	}

	var rows [][]models.InlineKeyboardButton
	for _, d := range dates {
		rows = append(rows, []models.InlineKeyboardButton{{
			Text:         formatDateButton(d),
			CallbackData: fmt.Sprintf("%s%s:%s", ChooseDate, proc.Code, d.Format(callbackDateLayout)),
		}})
	}

	text := fmt.Sprintf("Процедура: %s\nВыберите дату 🗓️", proc.Title)
	h.editOrSend(ctx, b, msg, text, &models.InlineKeyboardMarkup{InlineKeyboard: rows}, edit)
}

// HandleDateChosen показывает свободное время выбранной даты с шагом
// длительности процедуры.
func (h *Handler) HandleDateChosen(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
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

	proc := model.ProcedureByCode(parts[1])
	if proc == nil {
		AnswerCallbackAlert(ctx, b, callback.ID, "Процедура не найдена ❌")
		return
	}

	date, err := parseCallbackDate(parts[2])
	if err != nil {
		h.Logger.Warn("Bad date in callback", zap.String("data", callback.Data), zap.Error(err))
		AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	AnswerCallback(ctx, b, callback.ID, "")
	h.sendOpenTimes(ctx, b, msg, proc, date)
}

func (h *Handler) sendOpenTimes(ctx context.Context, b *bot.Bot, msg *models.Message, proc *model.Procedure, date time.Time) {
	times := h.Presenter.OpenTimes(date, proc.IntervalMinutes)

	if len(times) == 0 {
		// Пустой список — это сообщение, а не молчание: дата могла
		// закончиться между перерисовками клавиатуры.
		markup := &models.InlineKeyboardMarkup{
			InlineKeyboard: [][]models.InlineKeyboardButton{
				{{Text: "⬅️ Другая дата", CallbackData: ChooseProcedure + proc.Code}},
			},
		}
		h.editOrSend(ctx, b, msg,
			fmt.Sprintf("На %s свободных слотов не осталось. 😔", formatDateButton(date)),
			markup, true)
		return
	}

	var rows [][]models.InlineKeyboardButton
	var row []models.InlineKeyboardButton
	for _, t := range times {
		row = append(row, models.InlineKeyboardButton{
			Text:         t.String(),
			CallbackData: fmt.Sprintf("%s%s:%s:%s", ChooseTime, proc.Code, date.Format(callbackDateLayout), t),
		})
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, []models.InlineKeyboardButton{
		{Text: "⬅️ Другая дата", CallbackData: ChooseProcedure + proc.Code},
	})

	text := fmt.Sprintf("Процедура: %s\nДата: %s\nВыберите время ⏰", proc.Title, formatDateButton(date))
	h.editOrSend(ctx, b, msg, text, &models.InlineKeyboardMarkup{InlineKeyboard: rows}, true)
}

// HandleTimeChosen фиксирует выбранный слот в диалоге и запрашивает
// комментарий. Слот перепроверяется: между показом клавиатуры и
// нажатием его мог занять другой клиент.
func (h *Handler) HandleTimeChosen(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	msg := GetMessageFromCallback(callback)
	if msg == nil {
		AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	parts := strings.SplitN(callback.Data, ":", 4)
	if len(parts) != 4 {
		AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	proc := model.ProcedureByCode(parts[1])
	if proc == nil {
		AnswerCallbackAlert(ctx, b, callback.ID, "Процедура не найдена ❌")
		return
	}

	date, err := parseCallbackDate(parts[2])
	if err != nil {
		AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	slotTime, err := schedule.ParseTimeOfDay(parts[3])
	if err != nil {
		AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	if !h.Store.IsAvailable(date, slotTime) {
		AnswerCallbackAlert(ctx, b, callback.ID, "Этот слот уже занят 😔")
		h.sendOpenTimes(ctx, b, msg, proc, date)
		return
	}

	chatID := msg.Chat.ID
	session := h.Dialogs.Start(chatID, dialog.Draft{
		ProcedureCode:   proc.Code,
		IntervalMinutes: proc.IntervalMinutes,
	})
	session.SetDate(date)
	session.SetTime(slotTime)

	AnswerCallback(ctx, b, callback.ID, "")
	h.editOrSend(ctx, b, msg,
		fmt.Sprintf("Процедура: %s\nДата: %s 🗓️\nВремя: %s ⏰\n\nНапишите комментарий (пожелания, противопоказания). ✍️",
			proc.Title, date.Format(dialog.DateLayout), slotTime),
		nil, true)
}

// HandleGetContact переводит клиента в запрос номера телефона.
func (h *Handler) HandleGetContact(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	msg := GetMessageFromCallback(callback)
	if msg == nil {
		AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	AnswerCallback(ctx, b, callback.ID, "")
	h.SendPhoneRequest(ctx, b, msg.Chat.ID)
}

// editOrSend перерисовывает сообщение кнопки либо шлёт новое.
func (h *Handler) editOrSend(ctx context.Context, b *bot.Bot, msg *models.Message, text string, markup models.ReplyMarkup, edit bool) {
	var err error
	if edit {
		_, err = b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:      msg.Chat.ID,
			MessageID:   msg.ID,
			Text:        text,
			ReplyMarkup: markup,
		})
	} else {
		_, err = b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      msg.Chat.ID,
			Text:        text,
			ReplyMarkup: markup,
		})
	}
	if err != nil {
		h.Logger.Error("Failed to render callback reply", zap.Error(err))
	}
}
