package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mvolkova/studio-bot/internal/model"
	"github.com/mvolkova/studio-bot/internal/repository"
	"github.com/mvolkova/studio-bot/internal/schedule"
)

type mockApptStore struct {
	mock.Mock
}

func (m *mockApptStore) Upsert(ctx context.Context, appt *model.Appointment) error {
	args := m.Called(ctx, appt)
	return args.Error(0)
}

func (m *mockApptStore) Update(ctx context.Context, id int64, date *time.Time, timeOfDay string, status model.AppointmentStatus, comment string) error {
	args := m.Called(ctx, id, date, timeOfDay, status, comment)
	return args.Error(0)
}

func (m *mockApptStore) GetByID(ctx context.Context, id int64) (*model.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Appointment), args.Error(1)
}

func (m *mockApptStore) AttachMessageID(ctx context.Context, id int64, messageID int) error {
	args := m.Called(ctx, id, messageID)
	return args.Error(0)
}

func (m *mockApptStore) ListFromToday(ctx context.Context) ([]*model.Appointment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Appointment), args.Error(1)
}

func (m *mockApptStore) ListAll(ctx context.Context) ([]*model.Appointment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Appointment), args.Error(1)
}

type mockUnlockJournal struct {
	mock.Mock
}

func (m *mockUnlockJournal) RecordBatch(ctx context.Context, batchID uuid.UUID, adminID int64, date time.Time, times []schedule.TimeOfDay) error {
	args := m.Called(ctx, batchID, adminID, date, times)
	return args.Error(0)
}

func (m *mockUnlockJournal) ListFuture(ctx context.Context) ([]repository.SlotRef, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.SlotRef), args.Error(1)
}

func serviceNow() time.Time {
	return time.Date(2026, 3, 2, 12, 0, 0, 0, time.Local)
}

func newTestService(appts *mockApptStore, unlocks *mockUnlockJournal) (*BookingService, *schedule.Store) {
	store := schedule.NewStore(
		schedule.Template{StartHour: 9, EndHour: 18, StepMinutes: 30},
		schedule.WithNow(serviceNow),
	)
	return NewBookingService(store, appts, unlocks, zap.NewNop()), store
}

func TestUnlockSlotsJournalsBatch(t *testing.T) {
	appts := new(mockApptStore)
	unlocks := new(mockUnlockJournal)
	svc, store := newTestService(appts, unlocks)

	date := serviceNow().AddDate(0, 0, 1)
	times := []schedule.TimeOfDay{{Hour: 10}, {Hour: 10, Minute: 30}}

	unlocks.On("RecordBatch", mock.Anything, mock.Anything, int64(99), date, times).Return(nil)

	require.NoError(t, svc.UnlockSlots(context.Background(), 99, date, times))

	for _, tm := range times {
		assert.True(t, store.IsAvailable(date, tm))
	}
	unlocks.AssertExpectations(t)
}

func TestUnlockSlotsAuditFailureReturnsError(t *testing.T) {
	appts := new(mockApptStore)
	unlocks := new(mockUnlockJournal)
	svc, store := newTestService(appts, unlocks)

	date := serviceNow().AddDate(0, 0, 1)
	times := []schedule.TimeOfDay{{Hour: 11}}

	unlocks.On("RecordBatch", mock.Anything, mock.Anything, int64(99), date, times).
		Return(fmt.Errorf("connection refused"))

	err := svc.UnlockSlots(context.Background(), 99, date, times)
	require.Error(t, err)

	// Сетка открыта несмотря на ошибку журнала: слоты не откатываются
	assert.True(t, store.IsAvailable(date, times[0]))
}

func TestSaveBookingLocksSlot(t *testing.T) {
	appts := new(mockApptStore)
	unlocks := new(mockUnlockJournal)
	svc, store := newTestService(appts, unlocks)

	date := serviceNow().AddDate(0, 0, 2)
	slot := schedule.TimeOfDay{Hour: 14}
	store.Unlock(date, slot)

	appts.On("Upsert", mock.Anything, mock.AnythingOfType("*model.Appointment")).Return(nil)

	appt := &model.Appointment{
		UserID: 7, Date: &date,
		Comments: "ботокс",
		Status:   model.AppointmentStatusBooked,
	}
	require.NoError(t, svc.SaveBooking(context.Background(), appt, slot))

	assert.False(t, store.IsAvailable(date, slot))
	assert.Equal(t, "14:00", appt.TimeOfDay)
	assert.False(t, appt.RequestedAt.IsZero())
	appts.AssertExpectations(t)
}

func TestSaveBookingPersistErrorKeepsSlotLocked(t *testing.T) {
	appts := new(mockApptStore)
	unlocks := new(mockUnlockJournal)
	svc, store := newTestService(appts, unlocks)

	date := serviceNow().AddDate(0, 0, 2)
	slot := schedule.TimeOfDay{Hour: 15}
	store.Unlock(date, slot)

	appts.On("Upsert", mock.Anything, mock.Anything).Return(fmt.Errorf("db down"))

	appt := &model.Appointment{UserID: 7, Date: &date, Status: model.AppointmentStatusBooked}
	require.Error(t, svc.SaveBooking(context.Background(), appt, slot))

	// Слот остаётся закрытым до ручной разблокировки владельцем
	assert.False(t, store.IsAvailable(date, slot))
}

func TestDeclineRequestUpdatesStatus(t *testing.T) {
	appts := new(mockApptStore)
	unlocks := new(mockUnlockJournal)
	svc, _ := newTestService(appts, unlocks)

	appts.On("GetByID", mock.Anything, int64(5)).Return(&model.Appointment{
		ID: 5, UserID: 7, Status: model.AppointmentStatusAwaiting,
	}, nil)
	appts.On("Update", mock.Anything, int64(5), (*time.Time)(nil), "",
		model.AppointmentStatusDeclined, "").Return(nil)

	appt, err := svc.DeclineRequest(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusDeclined, appt.Status)
	appts.AssertExpectations(t)
}

func TestDeclineRequestIsIdempotent(t *testing.T) {
	appts := new(mockApptStore)
	unlocks := new(mockUnlockJournal)
	svc, _ := newTestService(appts, unlocks)

	appts.On("GetByID", mock.Anything, int64(5)).Return(&model.Appointment{
		ID: 5, UserID: 7, Status: model.AppointmentStatusDeclined,
	}, nil)

	// Повторное отклонение не трогает базу
	appt, err := svc.DeclineRequest(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusDeclined, appt.Status)
	appts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRestoreScheduleBookingsWin(t *testing.T) {
	appts := new(mockApptStore)
	unlocks := new(mockUnlockJournal)
	svc, store := newTestService(appts, unlocks)

	date := serviceNow().AddDate(0, 0, 3)
	free := schedule.TimeOfDay{Hour: 9}
	taken := schedule.TimeOfDay{Hour: 9, Minute: 30}

	unlocks.On("ListFuture", mock.Anything).Return([]repository.SlotRef{
		{Date: date, Time: free},
		{Date: date, Time: taken},
	}, nil)
	appts.On("ListFromToday", mock.Anything).Return([]*model.Appointment{
		{ID: 1, Date: &date, TimeOfDay: "09:30", Status: model.AppointmentStatusBooked},
		{ID: 2, Status: model.AppointmentStatusAwaiting}, // заявка без даты
	}, nil)

	require.NoError(t, svc.RestoreSchedule(context.Background()))

	assert.True(t, store.IsAvailable(date, free))
	assert.False(t, store.IsAvailable(date, taken))
}
