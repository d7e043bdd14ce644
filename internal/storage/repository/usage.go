package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/chef-ai/internal/models"
)

// GetUsage возвращает запись учёта пользователя за дату или nil, если её ещё нет.
func (s *Storage) GetUsage(ctx context.Context, userID, date string) (*models.UsageRecord, error) {
	const op = "storage.GetUsage"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, date, query_count
			  FROM usage_tracking
			  WHERE user_id = $1 AND date = $2::date`
	var (
		rec models.UsageRecord
		day sql.NullTime
	)
	err := s.DB.QueryRowContext(ctx, query, userID, date).Scan(&rec.ID, &rec.UserID, &day, &rec.QueryCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, models.ErrDataStore, err)
	}
	rec.Date = date
	if day.Valid {
		rec.Date = models.UsageDate(day.Time)
	}
	return &rec, nil
}

// IncrementUsage атомарно учитывает один запрос пользователя за дату и возвращает новый счётчик.
//
// Отсутствующая строка создаётся со значением 1, существующая увеличивается на 1 в одном
// выражении, поэтому параллельные вызовы не теряют инкременты.
func (s *Storage) IncrementUsage(ctx context.Context, userID, date string) (int, error) {
	const op = "storage.IncrementUsage"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO usage_tracking (id, user_id, date, query_count)
			  VALUES ($1, $2, $3::date, 1)
			  ON CONFLICT (user_id, date) DO UPDATE SET
			      query_count = usage_tracking.query_count + 1,
			      updated_at = NOW()
			  RETURNING query_count`
	var count int
	if err := s.DB.QueryRowContext(ctx, query, uuid.NewString(), userID, date).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w: %w", op, models.ErrDataStore, err)
	}
	return count, nil
}
