package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mvolkova/studio-bot/internal/metrics"
	"github.com/mvolkova/studio-bot/internal/model"
	"github.com/mvolkova/studio-bot/internal/repository"
	"github.com/mvolkova/studio-bot/internal/schedule"
)

// AppointmentStore доступ к записям. Реализуется repository.AppointmentRepository.
type AppointmentStore interface {
	Upsert(ctx context.Context, appt *model.Appointment) error
	Update(ctx context.Context, id int64, date *time.Time, timeOfDay string, status model.AppointmentStatus, comment string) error
	GetByID(ctx context.Context, id int64) (*model.Appointment, error)
	AttachMessageID(ctx context.Context, id int64, messageID int) error
	ListFromToday(ctx context.Context) ([]*model.Appointment, error)
	ListAll(ctx context.Context) ([]*model.Appointment, error)
}

// UnlockJournal журнал разблокировок. Реализуется repository.UnlockRepository.
type UnlockJournal interface {
	RecordBatch(ctx context.Context, batchID uuid.UUID, adminID int64, date time.Time, times []schedule.TimeOfDay) error
	ListFuture(ctx context.Context) ([]repository.SlotRef, error)
}

type BookingService struct {
	store      *schedule.Store
	apptRepo   AppointmentStore
	unlockRepo UnlockJournal
	logger     *zap.Logger
}

func NewBookingService(
	store *schedule.Store,
	apptRepo AppointmentStore,
	unlockRepo UnlockJournal,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		store:      store,
		apptRepo:   apptRepo,
		unlockRepo: unlockRepo,
		logger:     logger,
	}
}

// SaveBooking финализирует диалог записи: закрывает слот и сохраняет
// запись. Это два независимых эффекта без общей транзакции: при падении
// между ними слот остаётся закрыт без записи. Откат слота не делаем,
// владелец разблокирует его вручную.
func (s *BookingService) SaveBooking(ctx context.Context, appt *model.Appointment, slotTime schedule.TimeOfDay) error {
	if appt.Date == nil {
		return fmt.Errorf("booking has no date")
	}

	s.store.Lock(*appt.Date, slotTime)

	appt.TimeOfDay = slotTime.String()
	if appt.RequestedAt.IsZero() {
		appt.RequestedAt = time.Now()
	}

	if err := s.apptRepo.Upsert(ctx, appt); err != nil {
		metrics.IncStorageError()
		s.logger.Error("Failed to persist booking, slot stays locked",
			zap.Int64("user_id", appt.UserID),
			zap.String("date", appt.Date.Format("2006-01-02")),
			zap.String("time", appt.TimeOfDay),
			zap.Error(err))
		return fmt.Errorf("save booking: %w", err)
	}

	metrics.IncAppointmentSaved(string(appt.Status))
	s.logger.Info("Booking saved",
		zap.Int64("appointment_id", appt.ID),
		zap.Int64("user_id", appt.UserID),
		zap.String("date", appt.Date.Format("2006-01-02")),
		zap.String("time", appt.TimeOfDay),
		zap.String("status", string(appt.Status)))

	return nil
}

// CreatePhoneRequest сохраняет заявку клиента без даты: клиент оставил
// телефон, владелец свяжется и назначит время.
func (s *BookingService) CreatePhoneRequest(ctx context.Context, appt *model.Appointment) error {
	appt.Date = nil
	appt.TimeOfDay = ""
	appt.Status = model.AppointmentStatusAwaiting
	if appt.RequestedAt.IsZero() {
		appt.RequestedAt = time.Now()
	}

	if err := s.apptRepo.Upsert(ctx, appt); err != nil {
		metrics.IncStorageError()
		return fmt.Errorf("create phone request: %w", err)
	}

	metrics.IncAppointmentSaved(string(model.AppointmentStatusAwaiting))
	s.logger.Info("Phone request created",
		zap.Int64("appointment_id", appt.ID),
		zap.Int64("user_id", appt.UserID))

	return nil
}

// ConfirmRequest переводит заявку в статус "booked" на назначенные
// дату и время и закрывает слот.
func (s *BookingService) ConfirmRequest(ctx context.Context, recordID int64, date time.Time, slotTime schedule.TimeOfDay, comment string) (*model.Appointment, error) {
	appt, err := s.apptRepo.GetByID(ctx, recordID)
	if err != nil {
		metrics.IncStorageError()
		return nil, fmt.Errorf("get request: %w", err)
	}
	if appt == nil {
		return nil, fmt.Errorf("request %d not found", recordID)
	}

	s.store.Lock(date, slotTime)

	if err := s.apptRepo.Update(ctx, recordID, &date, slotTime.String(), model.AppointmentStatusBooked, comment); err != nil {
		metrics.IncStorageError()
		return nil, fmt.Errorf("confirm request: %w", err)
	}

	appt.Date = &date
	appt.TimeOfDay = slotTime.String()
	appt.Status = model.AppointmentStatusBooked
	appt.Comments = comment

	metrics.IncAppointmentSaved(string(model.AppointmentStatusBooked))
	s.logger.Info("Request confirmed",
		zap.Int64("appointment_id", recordID),
		zap.String("date", date.Format("2006-01-02")),
		zap.String("time", slotTime.String()))

	return appt, nil
}

// DeclineRequest отклоняет заявку.
func (s *BookingService) DeclineRequest(ctx context.Context, recordID int64) (*model.Appointment, error) {
	appt, err := s.apptRepo.GetByID(ctx, recordID)
	if err != nil {
		metrics.IncStorageError()
		return nil, fmt.Errorf("get request: %w", err)
	}
	if appt == nil {
		return nil, fmt.Errorf("request %d not found", recordID)
	}

	// Повторное нажатие "Отклонить" по тому же уведомлению: запись уже
	// в финальном статусе, второй раз в базу не ходим.
	if appt.Status.IsTerminal() {
		return appt, nil
	}

	if err := s.apptRepo.Update(ctx, recordID, appt.Date, appt.TimeOfDay, model.AppointmentStatusDeclined, appt.Comments); err != nil {
		metrics.IncStorageError()
		return nil, fmt.Errorf("decline request: %w", err)
	}

	appt.Status = model.AppointmentStatusDeclined

	s.logger.Info("Request declined", zap.Int64("appointment_id", recordID))
	return appt, nil
}

// UnlockSlots открывает подтверждённые админом слоты. Сетка меняется
// в любом случае; ошибка журнала слоты не откатывает, но возвращается
// вызывающему: без записи в журнале разблокировка не переживёт
// перезапуск, и владельца надо предупредить.
func (s *BookingService) UnlockSlots(ctx context.Context, adminID int64, date time.Time, times []schedule.TimeOfDay) error {
	for _, t := range times {
		s.store.Unlock(date, t)
	}
	metrics.AddSlotsUnlocked(len(times))

	batchID := uuid.New()
	if err := s.unlockRepo.RecordBatch(ctx, batchID, adminID, date, times); err != nil {
		metrics.IncStorageError()
		s.logger.Warn("Unlock audit failed, slots are unlocked anyway",
			zap.String("batch_id", batchID.String()),
			zap.String("date", date.Format("2006-01-02")),
			zap.Error(err))
		return fmt.Errorf("record unlock batch: %w", err)
	}

	s.logger.Info("Slots unlocked",
		zap.String("batch_id", batchID.String()),
		zap.String("date", date.Format("2006-01-02")),
		zap.Int("count", len(times)))

	return nil
}

// RestoreSchedule восстанавливает сетку после перезапуска: сначала
// журнал разблокировок открывает слоты, затем будущие записи со
// статусом booked закрывают свои. Порядок важен: запись сильнее
// разблокировки.
func (s *BookingService) RestoreSchedule(ctx context.Context) error {
	unlocks, err := s.unlockRepo.ListFuture(ctx)
	if err != nil {
		return fmt.Errorf("restore schedule: %w", err)
	}
	for _, ref := range unlocks {
		s.store.Unlock(ref.Date, ref.Time)
	}

	appts, err := s.apptRepo.ListFromToday(ctx)
	if err != nil {
		return fmt.Errorf("restore schedule: %w", err)
	}

	relocked := 0
	for _, appt := range appts {
		if appt.Status != model.AppointmentStatusBooked || appt.Date == nil || appt.TimeOfDay == "" {
			continue
		}
		t, err := schedule.ParseTimeOfDay(appt.TimeOfDay)
		if err != nil {
			s.logger.Warn("Skipping appointment with unreadable time",
				zap.Int64("appointment_id", appt.ID),
				zap.String("time", appt.TimeOfDay))
			continue
		}
		s.store.Lock(*appt.Date, t)
		relocked++
	}

	s.logger.Info("Schedule restored",
		zap.Int("unlocked", len(unlocks)),
		zap.Int("relocked", relocked))

	return nil
}

// GetRequest возвращает заявку по id, nil если её нет.
func (s *BookingService) GetRequest(ctx context.Context, recordID int64) (*model.Appointment, error) {
	return s.apptRepo.GetByID(ctx, recordID)
}

// AttachNotification сохраняет id сообщения-уведомления владельца.
func (s *BookingService) AttachNotification(ctx context.Context, recordID int64, messageID int) error {
	return s.apptRepo.AttachMessageID(ctx, recordID, messageID)
}

// ListFromToday отдаёт записи с сегодняшнего дня для отчёта владельцу.
func (s *BookingService) ListFromToday(ctx context.Context) ([]*model.Appointment, error) {
	return s.apptRepo.ListFromToday(ctx)
}

// ListAll отдаёт все записи для выгрузки.
func (s *BookingService) ListAll(ctx context.Context) ([]*model.Appointment, error) {
	return s.apptRepo.ListAll(ctx)
}
