package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mvolkova/studio-bot/internal/schedule"
)

// UnlockRepository журналирует подтверждённые разблокировки слотов.
// Сама сетка живёт в памяти; журнал нужен владельцу как след действий.
type UnlockRepository struct {
	pool *pgxpool.Pool
}

func NewUnlockRepository(pool *pgxpool.Pool) *UnlockRepository {
	return &UnlockRepository{pool: pool}
}

// RecordBatch пишет одну партию разблокировки под общим batch id.
// Партия фиксируется в одной транзакции.
func (r *UnlockRepository) RecordBatch(ctx context.Context, batchID uuid.UUID, adminID int64, date time.Time, times []schedule.TimeOfDay) error {
	if len(times) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO slot_unlocks (batch_id, admin_id, slot_date, slot_time)
		VALUES ($1, $2, $3, $4)
	`

	for _, t := range times {
		if _, err := tx.Exec(ctx, query, batchID, adminID, date, t.String()); err != nil {
			return fmt.Errorf("record unlock %s %s: %w", date.Format("2006-01-02"), t, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// SlotRef одна разблокированная ячейка из журнала.
type SlotRef struct {
	Date time.Time
	Time schedule.TimeOfDay
}

// ListFuture возвращает разблокировки с сегодняшнего дня. По ним сетка
// восстанавливается после перезапуска.
func (r *UnlockRepository) ListFuture(ctx context.Context) ([]SlotRef, error) {
	query := `
		SELECT slot_date, slot_time
		FROM slot_unlocks
		WHERE slot_date >= CURRENT_DATE
		ORDER BY slot_date, slot_time
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list future unlocks: %w", err)
	}
	defer rows.Close()

	var refs []SlotRef
	for rows.Next() {
		var (
			date    time.Time
			rawTime string
		)
		if err := rows.Scan(&date, &rawTime); err != nil {
			return nil, fmt.Errorf("scan unlock row: %w", err)
		}

		t, err := schedule.ParseTimeOfDay(rawTime)
		if err != nil {
			return nil, fmt.Errorf("unlock row %s: %w", date.Format("2006-01-02"), err)
		}

		refs = append(refs, SlotRef{Date: date, Time: t})
	}

	return refs, rows.Err()
}
