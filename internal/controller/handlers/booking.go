package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/mvolkova/studio-bot/internal/dialog"
	"github.com/mvolkova/studio-bot/internal/model"
)

// HandleStartSelfBooking начинает самостоятельную запись клиента:
// сначала выбор процедуры, от неё зависит сетка доступного времени.
func (h *Handlers) HandleStartSelfBooking(ctx context.Context, b *bot.Bot, update *models.Update) {
	var rows [][]models.InlineKeyboardButton
	for _, p := range model.Procedures {
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: p.Title, CallbackData: "proc:" + p.Code},
		})
	}

	h.send(ctx, b, update.Message.Chat.ID, "Выберите процедуру для записи 💆‍♀️", &models.InlineKeyboardMarkup{InlineKeyboard: rows})
}

// startAdminBooking начинает админский диалог записи клиента.
// recordID > 0 связывает диалог с существующей заявкой.
func (h *Handlers) startAdminBooking(ctx context.Context, b *bot.Bot, chatID int64, recordID int64) {
	h.dialogs.Start(chatID, dialog.Draft{Admin: true, RecordID: recordID})

	h.logger.Info("Admin booking started",
		zap.Int64("chat_id", chatID),
		zap.Int64("record_id", recordID))

	h.send(ctx, b, chatID, "Выберите дату для записи 🗓️ (формат: ДД.ММ.ГГ)", removeKeyboard())
}

// StartAdminBookingForRecord открывает админский диалог по заявке
// (вызывается из callback "Записать").
func (h *Handlers) StartAdminBookingForRecord(ctx context.Context, b *bot.Bot, chatID int64, recordID int64) {
	h.startAdminBooking(ctx, b, chatID, recordID)
}

// handleDialogInput прогоняет текст через активный диалог записи.
// Возвращает false, если диалога нет.
func (h *Handlers) handleDialogInput(ctx context.Context, b *bot.Bot, update *models.Update) bool {
	chatID := update.Message.Chat.ID
	session := h.dialogs.Get(chatID)
	if session == nil {
		return false
	}

	text := update.Message.Text

	switch session.Step {
	case dialog.StepAwaitingDate:
		h.handleDateStep(ctx, b, chatID, session, text)
	case dialog.StepAwaitingTime:
		h.handleTimeStep(ctx, b, chatID, session, text)
	case dialog.StepAwaitingComment:
		h.handleCommentStep(ctx, b, chatID, session, text)
	case dialog.StepAwaitingConfirm, dialog.StepAwaitingAdminConfirm:
		h.handleConfirmStep(ctx, b, update, session, text)
	case dialog.StepAwaitingEdit:
		h.handleEditChoiceStep(ctx, b, chatID, session, text)
	default:
		return false
	}

	return true
}

func (h *Handlers) handleDateStep(ctx context.Context, b *bot.Bot, chatID int64, session *dialog.Session, text string) {
	if err := session.SubmitDate(text, time.Now()); err != nil {
		// Повторный ввод без ограничения попыток
		if dialog.IsPastDateError(err) {
			h.send(ctx, b, chatID, "Дата не может быть в прошлом. ❌", nil)
		} else {
			h.send(ctx, b, chatID, "Неверный формат даты. Пожалуйста, введите дату в формате ДД.ММ.ГГ. ❌", nil)
		}
		return
	}

	h.send(ctx, b, chatID, fmt.Sprintf("Вы выбрали дату: %s 🗓️. Теперь укажите время ⏰ (формат: ЧЧ:ММ).",
		session.Draft.Date.Format(dialog.DateLayout)), nil)
}

func (h *Handlers) handleTimeStep(ctx context.Context, b *bot.Bot, chatID int64, session *dialog.Session, text string) {
	if err := session.SubmitTime(text); err != nil {
		h.send(ctx, b, chatID, "Неверный формат времени. Пожалуйста, введите время в формате ЧЧ:ММ. Например: 09:00 ⏰", nil)
		return
	}

	h.send(ctx, b, chatID, fmt.Sprintf("Вы выбрали время: %s ⏰. Теперь напишите комментарий (например, вид процедуры). ✍️",
		session.Draft.Time), nil)
}

func (h *Handlers) handleCommentStep(ctx context.Context, b *bot.Bot, chatID int64, session *dialog.Session, text string) {
	session.SubmitComment(text)
	h.sendConfirmation(ctx, b, chatID, session)
}

// sendConfirmation показывает сводку черновика и кнопки действия.
func (h *Handlers) sendConfirmation(ctx context.Context, b *bot.Bot, chatID int64, session *dialog.Session) {
	summary := fmt.Sprintf(
		"📅 Дата: %s\n⏰ Время: %s\n💬 Комментарии: %s\n\nВыберите действие:",
		session.Draft.Date.Format(dialog.DateLayout),
		session.Draft.Time,
		session.Draft.Comment,
	)

	if session.Draft.Admin {
		h.send(ctx, b, chatID, summary, adminConfirmKeyboard())
	} else {
		h.send(ctx, b, chatID, summary, confirmKeyboard())
	}
}

func (h *Handlers) handleConfirmStep(ctx context.Context, b *bot.Bot, update *models.Update, session *dialog.Session, text string) {
	chatID := update.Message.Chat.ID

	switch session.SubmitConfirm(text) {
	case dialog.DecisionSave:
		h.handleSave(ctx, b, update, session)
	case dialog.DecisionEdit:
		h.send(ctx, b, chatID, "Что вы хотите отредактировать?", editChoiceKeyboard())
	case dialog.DecisionCancel:
		h.dialogs.Clear(chatID)
		h.send(ctx, b, chatID, "Запись отменена ❌", removeKeyboard())
		h.send(ctx, b, chatID, "Отмена завершена. Возвращаемся в главное меню... 🏠", nil)
		h.SendMainMenu(ctx, b, chatID)
	default:
		h.sendConfirmation(ctx, b, chatID, session)
	}
}

func (h *Handlers) handleEditChoiceStep(ctx context.Context, b *bot.Bot, chatID int64, session *dialog.Session, text string) {
	step, ok := session.SubmitEditChoice(text)
	if !ok {
		h.send(ctx, b, chatID, "Что вы хотите отредактировать?", editChoiceKeyboard())
		return
	}

	switch step {
	case dialog.StepAwaitingDate:
		h.send(ctx, b, chatID, "Введите новую дату (формат: ДД.ММ.ГГ) 🗓️", removeKeyboard())
	case dialog.StepAwaitingTime:
		h.send(ctx, b, chatID, "Введите новое время (формат: ЧЧ:ММ) ⏰", removeKeyboard())
	case dialog.StepAwaitingComment:
		h.send(ctx, b, chatID, "Введите новый комментарий 📝", removeKeyboard())
	}
}

// handleSave финализирует запись. Эффекты видны только здесь:
// слот закрывается, запись сохраняется, владелец получает уведомление.
func (h *Handlers) handleSave(ctx context.Context, b *bot.Bot, update *models.Update, session *dialog.Session) {
	chatID := update.Message.Chat.ID

	if !session.CanSave() {
		h.sendConfirmation(ctx, b, chatID, session)
		return
	}

	if session.Draft.Admin && session.Draft.RecordID > 0 {
		h.saveRecordConfirmation(ctx, b, chatID, session)
		return
	}

	// Клиент мог ввести время вручную (после "Изменить время"), минуя
	// кнопки слотов. Перед сохранением слот проверяется ещё раз;
	// владелец может записывать и мимо сетки, его не ограничиваем.
	if !session.Draft.Admin && !h.presenter.IsOpen(session.Draft.Date, session.Draft.Time) {
		session.ReenterTime()
		h.send(ctx, b, chatID, fmt.Sprintf(
			"Время %s уже занято 😔 Введите другое время (формат: ЧЧ:ММ) ⏰",
			session.Draft.Time), removeKeyboard())
		return
	}

	appt := &model.Appointment{
		Date:     &session.Draft.Date,
		Comments: session.Draft.Comment,
		Status:   model.AppointmentStatusBooked,
	}

	if session.Draft.Admin {
		// Клиент записан владельцем вне Telegram: профиля нет,
		// все детали живут в комментарии.
	} else if from := update.Message.From; from != nil {
		appt.UserID = from.ID
		appt.Username = from.Username
		appt.FirstName = from.FirstName
		appt.LastName = from.LastName
	}

	if err := h.bookingService.SaveBooking(ctx, appt, session.Draft.Time); err != nil {
		h.sendStorageError(ctx, b, chatID)
		return
	}

	h.dialogs.Clear(chatID)

	h.send(ctx, b, chatID, fmt.Sprintf(
		"Запись успешно сохранена! ✅\n\nНовая запись:\nДата: %s\nВремя: %s\nКомментарии: %s 📝",
		session.Draft.Date.Format(dialog.DateLayout),
		session.Draft.Time,
		session.Draft.Comment,
	), removeKeyboard())

	if !session.Draft.Admin {
		h.notifyOwnerNewBooking(ctx, b, appt)
	}

	h.send(ctx, b, chatID, "Запись сохранена. Возвращаемся в главное меню... 🏠", nil)
	h.SendMainMenu(ctx, b, chatID)
}

// saveRecordConfirmation закрывает админский диалог по заявке:
// запись переводится в "booked", уведомление в чате владельца
// редактируется в решённый вид.
func (h *Handlers) saveRecordConfirmation(ctx context.Context, b *bot.Bot, chatID int64, session *dialog.Session) {
	appt, err := h.bookingService.ConfirmRequest(ctx, session.Draft.RecordID,
		session.Draft.Date, session.Draft.Time, session.Draft.Comment)
	if err != nil {
		h.logger.Error("Failed to confirm request",
			zap.Int64("record_id", session.Draft.RecordID),
			zap.Error(err))
		h.sendStorageError(ctx, b, chatID)
		return
	}

	h.dialogs.Clear(chatID)

	h.send(ctx, b, chatID, fmt.Sprintf(
		"Заявка №%d записана ✅\nДата: %s\nВремя: %s",
		appt.ID,
		session.Draft.Date.Format(dialog.DateLayout),
		session.Draft.Time,
	), removeKeyboard())

	h.updateOwnerNotification(ctx, b, appt)

	// Сообщаем клиенту о подтверждении, если он известен
	if appt.UserID != 0 {
		h.send(ctx, b, appt.UserID, fmt.Sprintf(
			"🎉 Ваша заявка подтверждена!\n📅 Дата: %s\n⏰ Время: %s",
			session.Draft.Date.Format(dialog.DateLayout),
			session.Draft.Time,
		), nil)
	}

	h.SendMainMenu(ctx, b, chatID)
}

// notifyOwnerNewBooking шлёт владельцу уведомление о самостоятельной
// записи клиента и привязывает id сообщения к записи.
func (h *Handlers) notifyOwnerNewBooking(ctx context.Context, b *bot.Bot, appt *model.Appointment) {
	text := fmt.Sprintf(
		"📩 Новая запись №%d:\n👤 Клиент: %s %s\n📧 Username: @%s\n📅 Дата: %s\n⏰ Время: %s\n💬 Комментарии: %s 📝",
		appt.ID,
		appt.FirstName, appt.LastName,
		orDash(appt.Username),
		appt.Date.Format(dialog.DateLayout),
		appt.TimeOfDay,
		appt.Comments,
	)

	sent, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: h.cfg.OwnerChatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to notify owner", zap.Error(err))
		return
	}

	if err := h.bookingService.AttachNotification(ctx, appt.ID, sent.ID); err != nil {
		h.logger.Warn("Failed to attach notification message id",
			zap.Int64("appointment_id", appt.ID),
			zap.Error(err))
	}
}

// updateOwnerNotification редактирует исходное уведомление по заявке
// в его решённый вид, чтобы у владельца не висели открытые кнопки.
func (h *Handlers) updateOwnerNotification(ctx context.Context, b *bot.Bot, appt *model.Appointment) {
	if appt.NotifyMessageID == 0 {
		return
	}

	var text string
	if appt.Status == model.AppointmentStatusDeclined {
		text = fmt.Sprintf("❌ Заявка №%d отклонена.", appt.ID)
	} else {
		text = fmt.Sprintf("✅ Заявка №%d записана на %s %s.",
			appt.ID, appt.Date.Format(dialog.DateLayout), appt.TimeOfDay)
	}

	_, err := b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    h.cfg.OwnerChatID,
		MessageID: appt.NotifyMessageID,
		Text:      text,
	})
	if err != nil {
		h.logger.Warn("Failed to edit owner notification",
			zap.Int64("appointment_id", appt.ID),
			zap.Error(err))
	}
}

func orDash(s string) string {
	if s == "" {
		return "Не указан"
	}
	return s
}
