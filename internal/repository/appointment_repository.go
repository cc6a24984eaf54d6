package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mvolkova/studio-bot/internal/model"
)

type AppointmentRepository struct {
	pool *pgxpool.Pool
}

func NewAppointmentRepository(pool *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

// Upsert создаёт запись или обновляет существующую незакрытую запись
// того же пользователя на ту же дату. Инвариант "не больше одной
// неотклонённой записи на (пользователь, дата)" обеспечивается здесь,
// частичным уникальным индексом, а не на стороне вызывающих.
// Заявки без даты (запрос по телефону) под индекс не попадают.
func (r *AppointmentRepository) Upsert(ctx context.Context, appt *model.Appointment) error {
	query := `
		INSERT INTO appointments (user_id, username, first_name, last_name, phone_number,
			appointment_date, appointment_time, requested_at, comments, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id, appointment_date) WHERE status <> 'declined' AND user_id <> 0
		DO UPDATE SET
			appointment_time = EXCLUDED.appointment_time,
			comments         = EXCLUDED.comments,
			status           = EXCLUDED.status,
			phone_number     = EXCLUDED.phone_number,
			requested_at     = EXCLUDED.requested_at
		RETURNING id
	`

	err := r.pool.QueryRow(
		ctx, query,
		appt.UserID,
		appt.Username,
		appt.FirstName,
		appt.LastName,
		appt.PhoneNumber,
		appt.Date,
		appt.TimeOfDay,
		appt.RequestedAt,
		appt.Comments,
		appt.Status,
	).Scan(&appt.ID)

	if err != nil {
		return fmt.Errorf("upsert appointment: %w", err)
	}

	return nil
}

// Update переносит или закрывает существующую запись.
func (r *AppointmentRepository) Update(ctx context.Context, id int64, date *time.Time, timeOfDay string, status model.AppointmentStatus, comment string) error {
	query := `
		UPDATE appointments
		SET appointment_date = $1, appointment_time = $2, status = $3, comments = $4
		WHERE id = $5
	`

	result, err := r.pool.Exec(ctx, query, date, timeOfDay, status, comment, id)
	if err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("appointment not found")
	}

	return nil
}

// GetByID получает запись по ID. (nil, nil) если записи нет.
func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (*model.Appointment, error) {
	query := `
		SELECT id, user_id, username, first_name, last_name, phone_number,
			appointment_date, appointment_time, requested_at, comments, status, notify_message_id
		FROM appointments
		WHERE id = $1
	`

	var appt model.Appointment
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&appt.ID,
		&appt.UserID,
		&appt.Username,
		&appt.FirstName,
		&appt.LastName,
		&appt.PhoneNumber,
		&appt.Date,
		&appt.TimeOfDay,
		&appt.RequestedAt,
		&appt.Comments,
		&appt.Status,
		&appt.NotifyMessageID,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get appointment by id: %w", err)
	}

	return &appt, nil
}

// AttachMessageID сохраняет id уведомления в чате владельца,
// чтобы позже отредактировать его по решению.
func (r *AppointmentRepository) AttachMessageID(ctx context.Context, id int64, messageID int) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE appointments SET notify_message_id = $1 WHERE id = $2`, messageID, id)
	if err != nil {
		return fmt.Errorf("attach message id: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("appointment not found")
	}

	return nil
}

// ListFromToday возвращает неотклонённые записи с сегодняшнего дня.
func (r *AppointmentRepository) ListFromToday(ctx context.Context) ([]*model.Appointment, error) {
	query := `
		SELECT id, user_id, username, first_name, last_name, phone_number,
			appointment_date, appointment_time, requested_at, comments, status, notify_message_id
		FROM appointments
		WHERE appointment_date >= CURRENT_DATE AND status <> 'declined'
		ORDER BY appointment_date, appointment_time
	`

	return r.list(ctx, query)
}

// ListAll возвращает все записи для выгрузки, новые сверху.
func (r *AppointmentRepository) ListAll(ctx context.Context) ([]*model.Appointment, error) {
	query := `
		SELECT id, user_id, username, first_name, last_name, phone_number,
			appointment_date, appointment_time, requested_at, comments, status, notify_message_id
		FROM appointments
		ORDER BY requested_at DESC
	`

	return r.list(ctx, query)
}

func (r *AppointmentRepository) list(ctx context.Context, query string, args ...interface{}) ([]*model.Appointment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	var appts []*model.Appointment
	for rows.Next() {
		var appt model.Appointment
		err := rows.Scan(
			&appt.ID,
			&appt.UserID,
			&appt.Username,
			&appt.FirstName,
			&appt.LastName,
			&appt.PhoneNumber,
			&appt.Date,
			&appt.TimeOfDay,
			&appt.RequestedAt,
			&appt.Comments,
			&appt.Status,
			&appt.NotifyMessageID,
		)
		if err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		appts = append(appts, &appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate appointments: %w", err)
	}

	return appts, nil
}
