// Package dialog реализует пошаговый диалог записи как явный конечный
// автомат: тег состояния плюс черновик, хранимые по chat id. Каждое
// входящее сообщение прогоняется через функцию перехода, поэтому
// параллельные чаты не портят черновики друг друга.
package dialog

import (
	"fmt"
	"sync"
	"time"

	"github.com/mvolkova/studio-bot/internal/schedule"
)

// Step состояние диалога записи.
type Step string

const (
	StepNone            Step = ""
	StepAwaitingDate    Step = "awaiting_date"
	StepAwaitingTime    Step = "awaiting_time"
	StepAwaitingComment Step = "awaiting_comment"
	StepAwaitingConfirm Step = "awaiting_confirm"
	StepAwaitingEdit    Step = "awaiting_edit_choice"

	// Админский вариант: подтверждение только явными кнопками,
	// без свободного повторного ввода.
	StepAwaitingAdminConfirm Step = "awaiting_admin_confirm"
)

// Кнопки подтверждения. Точное совпадение текста служит ключом маршрутизации.
const (
	LabelSave         = "✅ Сохранить"
	LabelEdit         = "✏️ Редактировать"
	LabelCancel       = "❌ Отменить"
	LabelEditDate     = "📅 Изменить дату"
	LabelEditTime     = "⏰ Изменить время"
	LabelEditComment  = "💬 Изменить комментарий"
	LabelAdminConfirm = "✅ Подтвердить запись"
)

// DateLayout человекочитаемый формат даты в диалоге.
const DateLayout = "02.01.06"

// Draft черновик одной записи. Перезаписывается шаг за шагом,
// превращается в Appointment при сохранении, выбрасывается при отмене.
type Draft struct {
	ProcedureCode   string
	IntervalMinutes int

	Date    time.Time
	HasDate bool

	Time    schedule.TimeOfDay
	HasTime bool

	Comment    string
	HasComment bool

	// Для админского сценария: id существующей заявки, по которой
	// владелец назначает дату и время.
	RecordID int64
	Admin    bool
}

// Session диалог одного чата.
type Session struct {
	ChatID    int64
	Step      Step
	Draft     Draft
	StartedAt time.Time
	UpdatedAt time.Time
}

// Decision результат обработки кнопки подтверждения.
type Decision int

const (
	DecisionUnknown Decision = iota
	DecisionSave
	DecisionEdit
	DecisionCancel
)

var errPastDate = fmt.Errorf("date is in the past")

// SubmitDate разбирает дату ДД.ММ.ГГ и проверяет, что она не раньше
// сегодняшней. При ошибке состояние не меняется: повторный ввод
// не ограничен по числу попыток.
func (s *Session) SubmitDate(input string, today time.Time) error {
	if s.Step != StepAwaitingDate {
		return fmt.Errorf("unexpected step %q", s.Step)
	}

	d, err := time.ParseInLocation(DateLayout, input, today.Location())
	if err != nil {
		return fmt.Errorf("parse date: %w", err)
	}

	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	if d.Before(day) {
		return errPastDate
	}

	s.Draft.Date = d
	s.Draft.HasDate = true
	s.advance(StepAwaitingTime)
	return nil
}

// IsPastDateError отличает прошедшую дату от нечитаемого ввода,
// чтобы показать точное сообщение.
func IsPastDateError(err error) bool {
	return err == errPastDate
}

// SubmitTime разбирает время ЧЧ:ММ. При ошибке состояние не меняется.
func (s *Session) SubmitTime(input string) error {
	if s.Step != StepAwaitingTime {
		return fmt.Errorf("unexpected step %q", s.Step)
	}

	t, err := schedule.ParseTimeOfDay(input)
	if err != nil {
		return err
	}

	s.Draft.Time = t
	s.Draft.HasTime = true
	s.advance(StepAwaitingComment)
	return nil
}

// SetTime задаёт время, выбранное кнопкой слота (уже проверенное).
func (s *Session) SetTime(t schedule.TimeOfDay) {
	s.Draft.Time = t
	s.Draft.HasTime = true
	s.advance(StepAwaitingComment)
}

// SetDate задаёт дату, выбранную кнопкой.
func (s *Session) SetDate(d time.Time) {
	s.Draft.Date = d
	s.Draft.HasDate = true
	s.advance(StepAwaitingTime)
}

// SubmitComment принимает любой текст безусловно.
func (s *Session) SubmitComment(input string) {
	s.Draft.Comment = input
	s.Draft.HasComment = true
	if s.Draft.Admin {
		s.advance(StepAwaitingAdminConfirm)
	} else {
		s.advance(StepAwaitingConfirm)
	}
}

// SubmitConfirm распознаёт ровно три действия на шаге подтверждения.
// Любой другой ввод — DecisionUnknown: перепросить и остаться на месте.
func (s *Session) SubmitConfirm(label string) Decision {
	switch s.Step {
	case StepAwaitingConfirm:
		switch label {
		case LabelSave:
			return DecisionSave
		case LabelEdit:
			s.advance(StepAwaitingEdit)
			return DecisionEdit
		case LabelCancel:
			return DecisionCancel
		}
	case StepAwaitingAdminConfirm:
		switch label {
		case LabelAdminConfirm:
			return DecisionSave
		case LabelCancel:
			return DecisionCancel
		}
	}
	return DecisionUnknown
}

// SubmitEditChoice выбирает поле для повторного ввода и возвращает шаг,
// в который вернулся диалог. false — нераспознанная кнопка.
func (s *Session) SubmitEditChoice(label string) (Step, bool) {
	if s.Step != StepAwaitingEdit {
		return s.Step, false
	}

	switch label {
	case LabelEditDate:
		s.advance(StepAwaitingDate)
	case LabelEditTime:
		s.advance(StepAwaitingTime)
	case LabelEditComment:
		s.advance(StepAwaitingComment)
	default:
		return s.Step, false
	}
	return s.Step, true
}

// ReenterTime возвращает диалог на ввод времени, сбрасывая выбранное.
// Нужен, когда указанное вручную время оказалось занято при сохранении.
func (s *Session) ReenterTime() {
	s.Draft.HasTime = false
	s.advance(StepAwaitingTime)
}

// CanSave истинно только на шаге подтверждения с полным черновиком.
// Побочные эффекты сохранения возможны только отсюда.
func (s *Session) CanSave() bool {
	confirm := s.Step == StepAwaitingConfirm || s.Step == StepAwaitingAdminConfirm
	return confirm && s.Draft.HasDate && s.Draft.HasTime && s.Draft.HasComment
}

func (s *Session) advance(step Step) {
	s.Step = step
	s.UpdatedAt = time.Now()
}

// Store сессии диалогов по chat id.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[int64]*Session)}
}

// Start начинает новый диалог, затирая прежний для этого чата.
func (st *Store) Start(chatID int64, draft Draft) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := time.Now()
	session := &Session{
		ChatID:    chatID,
		Step:      StepAwaitingDate,
		Draft:     draft,
		StartedAt: now,
		UpdatedAt: now,
	}
	st.sessions[chatID] = session
	return session
}

// Get возвращает активную сессию чата или nil.
func (st *Store) Get(chatID int64) *Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.sessions[chatID]
}

// Clear завершает диалог чата.
func (st *Store) Clear(chatID int64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, chatID)
}
