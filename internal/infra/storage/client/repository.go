package client

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

// Repository репозиторий клиентов и списка заблокированных клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// FindOrCreate находит клиента бизнеса по телефону или создает нового
// Идемпотентен: параллельные вызовы с одним телефоном возвращают одну и ту же запись
// Имя существующего клиента обновляется на последнее введенное
func (r *Repository) FindOrCreate(ctx context.Context, businessID int64, name, phone string) (*domain.Client, bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("clients").
		Columns("business_id", "name", "phone").
		Values(businessID, name, phone).
		Suffix("ON CONFLICT (business_id, phone) DO UPDATE SET name = EXCLUDED.name RETURNING id, created_at, (xmax = 0) AS inserted").
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("%w: FindOrCreate - build upsert query: %w", ErrBuildQuery, err)
	}

	c := &domain.Client{BusinessID: businessID, Name: name, Phone: phone}
	var createdAt sql.NullTime
	var inserted bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &createdAt, &inserted); err != nil {
		return nil, false, fmt.Errorf("%w: FindOrCreate - execute upsert: %w", ErrExecQuery, err)
	}
	c.CreatedAt = createdAt.Time

	return c, inserted, nil
}

// GetByID получает клиента бизнеса по ID
func (r *Repository) GetByID(ctx context.Context, businessID, id int64) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "business_id", "name", "phone", "created_at").
		From("clients").
		Where(squirrel.Eq{"id": id, "business_id": businessID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	var c domain.Client
	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.BusinessID, &c.Name, &c.Phone, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan client: %w", ErrScanRow, err)
	}
	c.CreatedAt = createdAt.Time

	return &c, nil
}
