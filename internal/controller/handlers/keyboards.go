package handlers

import (
	"github.com/go-telegram/bot/models"

	"github.com/mvolkova/studio-bot/internal/dialog"
)

// ownerMenuKeyboard главное меню владельца.
func ownerMenuKeyboard() *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{{Text: BtnBookClient}, {Text: BtnShowRecords}},
			{{Text: BtnShowUsers}, {Text: BtnCalendar}},
		},
		ResizeKeyboard: true,
	}
}

// clientMenuKeyboard главное меню клиента.
func clientMenuKeyboard() *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{{Text: BtnProcedures}, {Text: BtnBookSelf}},
			{{Text: BtnLeaveRequest}, {Text: BtnSocialMedia}},
		},
		ResizeKeyboard: true,
	}
}

// confirmKeyboard кнопки подтверждения черновика записи.
func confirmKeyboard() *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{{Text: dialog.LabelSave}, {Text: dialog.LabelEdit}, {Text: dialog.LabelCancel}},
		},
		ResizeKeyboard: true,
	}
}

// adminConfirmKeyboard подтверждение в админском сценарии: только
// явные подтвердить/отменить, без повторного свободного ввода.
func adminConfirmKeyboard() *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{{Text: dialog.LabelAdminConfirm}, {Text: dialog.LabelCancel}},
		},
		ResizeKeyboard: true,
	}
}

// editChoiceKeyboard выбор поля для исправления.
func editChoiceKeyboard() *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{{Text: dialog.LabelEditDate}, {Text: dialog.LabelEditTime}, {Text: dialog.LabelEditComment}},
		},
		ResizeKeyboard: true,
	}
}

// phoneRequestKeyboard кнопка отправки контакта.
func phoneRequestKeyboard() *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{{Text: BtnSendPhone, RequestContact: true}},
		},
		ResizeKeyboard:  true,
		OneTimeKeyboard: true,
	}
}

// removeKeyboard убирает reply-клавиатуру.
func removeKeyboard() *models.ReplyKeyboardRemove {
	return &models.ReplyKeyboardRemove{RemoveKeyboard: true}
}
