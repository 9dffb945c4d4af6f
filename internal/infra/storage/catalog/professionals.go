package catalog

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

var professionalColumns = []string{
	"id",
	"business_id",
	"name",
	"capacity",
	"is_active",
	"created_at",
	"updated_at",
}

// CreateProfessional создает мастера
func (r *Repository) CreateProfessional(ctx context.Context, p *domain.Professional) (*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("professionals").
		Columns("business_id", "name", "capacity", "is_active").
		Values(p.BusinessID, p.Name, p.Capacity, p.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateProfessional - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateProfessional - execute insert: %w", ErrExecQuery, err)
	}
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return p, nil
}

// GetProfessional получает мастера бизнеса по ID (в том числе неактивного)
func (r *Repository) GetProfessional(ctx context.Context, businessID, id int64) (*domain.Professional, error) {
	return r.getProfessional(ctx, businessID, id, false)
}

// GetProfessionalForUpdate получает мастера с блокировкой строки до конца транзакции
// Вне транзакции работает как GetProfessional
func (r *Repository) GetProfessionalForUpdate(ctx context.Context, businessID, id int64) (*domain.Professional, error) {
	return r.getProfessional(ctx, businessID, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getProfessional(ctx context.Context, businessID, id int64, forUpdate bool) (*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(professionalColumns...).
		From("professionals").
		Where(squirrel.Eq{"id": id, "business_id": businessID})
	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetProfessional - build select query: %w", ErrBuildQuery, err)
	}

	p, err := scanProfessional(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfessionalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetProfessional - scan professional: %w", ErrScanRow, err)
	}

	return p, nil
}

// ListProfessionals получает мастеров бизнеса по имени
func (r *Repository) ListProfessionals(ctx context.Context, businessID int64, activeOnly bool) ([]*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(professionalColumns...).
		From("professionals").
		Where(squirrel.Eq{"business_id": businessID})
	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.OrderBy("name ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListProfessionals - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListProfessionals - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Professional, 0)
	for rows.Next() {
		p, err := scanProfessional(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListProfessionals - scan professional: %w", ErrScanRow, err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListProfessionals - rows iteration: %w", ErrScanRow, err)
	}

	return result, nil
}

// UpdateProfessional обновляет имя, вместимость и активность мастера
func (r *Repository) UpdateProfessional(ctx context.Context, p *domain.Professional) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("professionals").
		Set("name", p.Name).
		Set("capacity", p.Capacity).
		Set("is_active", p.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": p.ID, "business_id": p.BusinessID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateProfessional - build update query: %w", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, query, args, ErrProfessionalNotFound, "UpdateProfessional")
}

// DeactivateProfessional мягко удаляет мастера; записи в истории сохраняются
func (r *Repository) DeactivateProfessional(ctx context.Context, businessID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("professionals").
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "business_id": businessID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeactivateProfessional - build update query: %w", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, query, args, ErrProfessionalNotFound, "DeactivateProfessional")
}

func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, query string, args []interface{}, notFound error, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %w", ErrExecQuery, op, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - rows affected: %w", ErrExecQuery, op, err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}

func scanProfessional(row rowScanner) (*domain.Professional, error) {
	var p domain.Professional
	var createdAt, updatedAt sql.NullTime

	if err := row.Scan(&p.ID, &p.BusinessID, &p.Name, &p.Capacity, &p.IsActive, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}
