package dialog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvolkova/studio-bot/internal/schedule"
)

func testToday() time.Time {
	return time.Date(2026, 3, 2, 12, 0, 0, 0, time.Local)
}

func startedSession(t *testing.T, draft Draft) *Session {
	t.Helper()
	return NewStore().Start(42, draft)
}

func TestHappyPathToSave(t *testing.T) {
	s := startedSession(t, Draft{})
	require.Equal(t, StepAwaitingDate, s.Step)

	require.NoError(t, s.SubmitDate("05.03.26", testToday()))
	require.Equal(t, StepAwaitingTime, s.Step)

	require.NoError(t, s.SubmitTime("10:30"))
	require.Equal(t, StepAwaitingComment, s.Step)

	s.SubmitComment("ботокс")
	require.Equal(t, StepAwaitingConfirm, s.Step)
	assert.True(t, s.CanSave())

	assert.Equal(t, DecisionSave, s.SubmitConfirm(LabelSave))
}

func TestInvalidDateKeepsStep(t *testing.T) {
	s := startedSession(t, Draft{})

	// Сколько угодно неудачных попыток, шаг не меняется
	for _, input := range []string{"мусор", "32.01.26", "2026-03-05", "", "01.13.26"} {
		err := s.SubmitDate(input, testToday())
		assert.Error(t, err, "input %q", input)
		assert.False(t, IsPastDateError(err))
		assert.Equal(t, StepAwaitingDate, s.Step)
		assert.False(t, s.Draft.HasDate)
	}

	require.NoError(t, s.SubmitDate("05.03.26", testToday()))
	assert.Equal(t, StepAwaitingTime, s.Step)
}

func TestPastDateRejected(t *testing.T) {
	s := startedSession(t, Draft{})

	err := s.SubmitDate("01.03.26", testToday())
	require.Error(t, err)
	assert.True(t, IsPastDateError(err))
	assert.Equal(t, StepAwaitingDate, s.Step)

	// Сегодняшняя дата проходит
	require.NoError(t, s.SubmitDate("02.03.26", testToday()))
}

func TestInvalidTimeKeepsStep(t *testing.T) {
	s := startedSession(t, Draft{})
	require.NoError(t, s.SubmitDate("05.03.26", testToday()))

	assert.Error(t, s.SubmitTime("25:00"))
	assert.Error(t, s.SubmitTime("десять"))
	assert.Equal(t, StepAwaitingTime, s.Step)

	require.NoError(t, s.SubmitTime("10:00"))
	assert.Equal(t, StepAwaitingComment, s.Step)
}

func TestCanSaveOnlyOnConfirmStep(t *testing.T) {
	s := startedSession(t, Draft{})
	assert.False(t, s.CanSave())

	require.NoError(t, s.SubmitDate("05.03.26", testToday()))
	assert.False(t, s.CanSave())

	require.NoError(t, s.SubmitTime("10:30"))
	assert.False(t, s.CanSave())

	s.SubmitComment("пилинг")
	assert.True(t, s.CanSave())

	// После ухода в редактирование сохранение снова запрещено
	s.SubmitConfirm(LabelEdit)
	assert.False(t, s.CanSave())
}

func TestConfirmUnknownLabelStays(t *testing.T) {
	s := startedSession(t, Draft{})
	require.NoError(t, s.SubmitDate("05.03.26", testToday()))
	require.NoError(t, s.SubmitTime("10:30"))
	s.SubmitComment("комментарий")

	assert.Equal(t, DecisionUnknown, s.SubmitConfirm("что-то левое"))
	assert.Equal(t, StepAwaitingConfirm, s.Step)
	assert.True(t, s.CanSave())
}

func TestAdminConfirmAcceptsOnlyExplicitButtons(t *testing.T) {
	s := startedSession(t, Draft{Admin: true, RecordID: 7})
	require.NoError(t, s.SubmitDate("05.03.26", testToday()))
	require.NoError(t, s.SubmitTime("10:30"))
	s.SubmitComment("по телефону")
	require.Equal(t, StepAwaitingAdminConfirm, s.Step)

	// Клиентская кнопка в админском диалоге не работает
	assert.Equal(t, DecisionUnknown, s.SubmitConfirm(LabelSave))
	assert.Equal(t, DecisionUnknown, s.SubmitConfirm(LabelEdit))

	assert.Equal(t, DecisionCancel, s.SubmitConfirm(LabelCancel))
	assert.Equal(t, DecisionSave, s.SubmitConfirm(LabelAdminConfirm))
}

func TestEditChoiceReturnsToStep(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  Step
		ok    bool
	}{
		{"дата", LabelEditDate, StepAwaitingDate, true},
		{"время", LabelEditTime, StepAwaitingTime, true},
		{"комментарий", LabelEditComment, StepAwaitingComment, true},
		{"неизвестная кнопка", "другое", StepAwaitingEdit, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := startedSession(t, Draft{})
			require.NoError(t, s.SubmitDate("05.03.26", testToday()))
			require.NoError(t, s.SubmitTime("10:30"))
			s.SubmitComment("к")
			require.Equal(t, DecisionEdit, s.SubmitConfirm(LabelEdit))

			step, ok := s.SubmitEditChoice(tt.label)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, step)

			// Черновик при редактировании не теряется
			assert.True(t, s.Draft.HasDate)
			assert.True(t, s.Draft.HasTime)
		})
	}
}

func TestCallbackSeededDraft(t *testing.T) {
	s := startedSession(t, Draft{ProcedureCode: "botox", IntervalMinutes: 30})

	s.SetDate(time.Date(2026, 3, 5, 0, 0, 0, 0, time.Local))
	require.Equal(t, StepAwaitingTime, s.Step)

	s.SetTime(schedule.TimeOfDay{Hour: 10, Minute: 30})
	require.Equal(t, StepAwaitingComment, s.Step)

	s.SubmitComment("после кнопок")
	assert.True(t, s.CanSave())
}

func TestReenterTimeBlocksSaveUntilNewTime(t *testing.T) {
	s := startedSession(t, Draft{ProcedureCode: "botox", IntervalMinutes: 30})

	// Черновик собран кнопками, затем время переписано вручную
	s.SetDate(time.Date(2026, 3, 5, 0, 0, 0, 0, time.Local))
	s.SetTime(schedule.TimeOfDay{Hour: 10, Minute: 30})
	s.SubmitComment("пилинг")
	require.Equal(t, DecisionEdit, s.SubmitConfirm(LabelEdit))
	_, ok := s.SubmitEditChoice(LabelEditTime)
	require.True(t, ok)
	require.NoError(t, s.SubmitTime("11:00"))
	s.SubmitComment("пилинг")
	require.True(t, s.CanSave())

	// Слот оказался занят: диалог возвращается на ввод времени
	s.ReenterTime()
	assert.Equal(t, StepAwaitingTime, s.Step)
	assert.False(t, s.Draft.HasTime)
	assert.False(t, s.CanSave())

	// Дата и комментарий при этом не теряются
	assert.True(t, s.Draft.HasDate)
	assert.True(t, s.Draft.HasComment)

	require.NoError(t, s.SubmitTime("12:00"))
	s.SubmitComment("пилинг")
	assert.True(t, s.CanSave())
}

func TestStoreIsolatesChats(t *testing.T) {
	store := NewStore()

	a := store.Start(1, Draft{})
	b := store.Start(2, Draft{})

	require.NoError(t, a.SubmitDate("05.03.26", testToday()))

	assert.Equal(t, StepAwaitingTime, store.Get(1).Step)
	assert.Equal(t, StepAwaitingDate, store.Get(2).Step)
	_ = b

	store.Clear(1)
	assert.Nil(t, store.Get(1))
	assert.NotNil(t, store.Get(2))
}

func TestStartOverwritesPreviousDialog(t *testing.T) {
	store := NewStore()

	s := store.Start(1, Draft{})
	require.NoError(t, s.SubmitDate("05.03.26", testToday()))

	fresh := store.Start(1, Draft{Admin: true})
	assert.Equal(t, StepAwaitingDate, fresh.Step)
	assert.True(t, fresh.Draft.Admin)
	assert.False(t, fresh.Draft.HasDate)
}
