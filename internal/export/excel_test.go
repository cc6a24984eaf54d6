package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mvolkova/studio-bot/internal/model"
)

func TestAppointmentsWorkbook(t *testing.T) {
	date := time.Date(2026, 3, 5, 0, 0, 0, 0, time.Local)
	appts := []*model.Appointment{
		{
			ID:          1,
			FirstName:   "Анна",
			LastName:    "Иванова",
			PhoneNumber: "+79990001122",
			Username:    "anna",
			Date:        &date,
			TimeOfDay:   "10:30",
			Comments:    "ботокс",
			Status:      model.AppointmentStatusBooked,
			RequestedAt: time.Date(2026, 3, 1, 15, 0, 0, 0, time.Local),
		},
		{
			ID:          2,
			FirstName:   "Пётр",
			PhoneNumber: "+79990003344",
			Status:      model.AppointmentStatusAwaiting,
			RequestedAt: time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local),
		},
	}

	buf, err := AppointmentsWorkbook(appts)
	require.NoError(t, err)
	require.NotZero(t, buf.Len())

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3, "заголовок плюс две записи")

	assert.Equal(t, "№", rows[0][0])
	assert.Equal(t, "Анна Иванова", rows[1][1])
	assert.Equal(t, "05.03.2026", rows[1][4])
	assert.Equal(t, "booked", rows[1][7])

	// Заявка без даты: пустая ячейка, не нулевое время
	assert.Equal(t, "", rows[2][4])
}

func TestAppointmentsWorkbookEmpty(t *testing.T) {
	buf, err := AppointmentsWorkbook(nil)
	require.NoError(t, err)
	assert.NotZero(t, buf.Len(), "пустая выгрузка всё равно содержит заголовок")
}
