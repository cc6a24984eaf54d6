package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mvolkova/studio-bot/internal/model"
)

type VisitRepository struct {
	pool *pgxpool.Pool
}

func NewVisitRepository(pool *pgxpool.Pool) *VisitRepository {
	return &VisitRepository{pool: pool}
}

// Track отмечает действие пользователя: первая запись создаётся,
// повторные наращивают счётчик и двигают last_seen.
func (r *VisitRepository) Track(ctx context.Context, userID int64, username, firstName, lastName, action string) error {
	query := `
		INSERT INTO visits (user_id, username, first_name, last_name, first_seen, last_seen, visit_count, last_action)
		VALUES ($1, $2, $3, $4, NOW(), NOW(), 1, $5)
		ON CONFLICT (user_id)
		DO UPDATE SET
			username    = EXCLUDED.username,
			first_name  = EXCLUDED.first_name,
			last_name   = EXCLUDED.last_name,
			last_seen   = NOW(),
			visit_count = visits.visit_count + 1,
			last_action = EXCLUDED.last_action
	`

	_, err := r.pool.Exec(ctx, query, userID, username, firstName, lastName, action)
	if err != nil {
		return fmt.Errorf("track visit: %w", err)
	}

	return nil
}

// Stats считает агрегаты для меню статистики владельца.
// Неактивен тот, кто не заходил дольше inactiveAfter.
func (r *VisitRepository) Stats(ctx context.Context, inactiveAfter time.Duration) (*model.VisitStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE visit_count > 1),
			COUNT(*) FILTER (WHERE last_seen < NOW() - $1::interval)
		FROM visits
	`

	interval := fmt.Sprintf("%d seconds", int(inactiveAfter.Seconds()))

	var stats model.VisitStats
	err := r.pool.QueryRow(ctx, query, interval).Scan(
		&stats.UniqueUsers,
		&stats.RepeatVisitors,
		&stats.InactiveUsers,
	)
	if err != nil {
		return nil, fmt.Errorf("visit stats: %w", err)
	}

	return &stats, nil
}

// ListRecent возвращает последних посетителей, новые сверху.
func (r *VisitRepository) ListRecent(ctx context.Context, limit int) ([]*model.Visit, error) {
	query := `
		SELECT user_id, username, first_name, last_name, first_seen, last_seen, visit_count, last_action
		FROM visits
		ORDER BY last_seen DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	defer rows.Close()

	var visits []*model.Visit
	for rows.Next() {
		var v model.Visit
		err := rows.Scan(
			&v.UserID,
			&v.Username,
			&v.FirstName,
			&v.LastName,
			&v.FirstSeen,
			&v.LastSeen,
			&v.VisitCount,
			&v.LastAction,
		)
		if err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		visits = append(visits, &v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate visits: %w", err)
	}

	return visits, nil
}
