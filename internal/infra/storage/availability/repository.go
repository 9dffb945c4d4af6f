package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/domain"
	"github.com/contatodubela-dotcom/cleverya-booking/pkg/dbmetrics"
	"github.com/contatodubela-dotcom/cleverya-booking/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"business_id",
	"day_of_week",
	"start_time",
	"end_time",
	"is_active",
	"updated_at",
}

// Repository репозиторий недельного расписания бизнеса
// Для пары (business_id, day_of_week) хранится не более одного окна
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListByBusiness получает все окна бизнеса, упорядоченные по дню недели
func (r *Repository) ListByBusiness(ctx context.Context, businessID int64) ([]*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("availability_windows").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("day_of_week ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]*domain.AvailabilityWindow, 0, 7)
	for rows.Next() {
		w, err := scanWindow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByBusiness - scan window: %w", ErrScanRow, err)
		}
		windows = append(windows, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - rows iteration: %w", ErrScanRow, err)
	}

	return windows, nil
}

// GetByDay получает окно бизнеса на день недели
func (r *Repository) GetByDay(ctx context.Context, businessID int64, dayOfWeek int) (*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("availability_windows").
		Where(squirrel.Eq{"business_id": businessID, "day_of_week": dayOfWeek}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDay - build select query: %w", ErrBuildQuery, err)
	}

	w, err := scanWindow(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWindowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDay - scan window: %w", ErrScanRow, err)
	}

	return w, nil
}

// Upsert создает или заменяет окно на день недели
func (r *Repository) Upsert(ctx context.Context, w *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_windows").
		Columns("business_id", "day_of_week", "start_time", "end_time", "is_active").
		Values(w.BusinessID, w.DayOfWeek, w.StartTime, w.EndTime, w.IsActive).
		Suffix("ON CONFLICT (business_id, day_of_week) DO UPDATE SET " +
			"start_time = EXCLUDED.start_time, end_time = EXCLUDED.end_time, " +
			"is_active = EXCLUDED.is_active, updated_at = NOW() RETURNING id, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %w", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&w.ID, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %w", ErrExecQuery, err)
	}
	w.UpdatedAt = updatedAt.Time

	return w, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWindow(row rowScanner) (*domain.AvailabilityWindow, error) {
	var w domain.AvailabilityWindow
	var updatedAt sql.NullTime

	if err := row.Scan(&w.ID, &w.BusinessID, &w.DayOfWeek, &w.StartTime, &w.EndTime, &w.IsActive, &updatedAt); err != nil {
		return nil, err
	}
	w.UpdatedAt = updatedAt.Time

	return &w, nil
}
