package tenant

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/contatodubela-dotcom/cleverya-booking/pkg/dbmetrics"
	"github.com/contatodubela-dotcom/cleverya-booking/pkg/psqlbuilder"
)

var (
	// ErrBusinessNotFound возвращается, когда пользователь не связан с бизнесом
	ErrBusinessNotFound = errors.New("tenant.repository: business not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("tenant.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("tenant.repository: failed to scan row")
)

// Repository читает связи пользователь -> бизнес
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// BusinessByMember возвращает бизнес, в котором пользователь состоит участником
func (r *Repository) BusinessByMember(ctx context.Context, userID string) (int64, error) {
	query, args, err := psqlbuilder.Select("business_id").
		From("business_members").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: BusinessByMember - build select query: %w", ErrBuildQuery, err)
	}
	return r.scanID(ctx, query, args, "BusinessByMember")
}

// BusinessByOwner возвращает бизнес, владельцем которого является пользователь
func (r *Repository) BusinessByOwner(ctx context.Context, userID string) (int64, error) {
	query, args, err := psqlbuilder.Select("id").
		From("businesses").
		Where(squirrel.Eq{"owner_id": userID}).
		OrderBy("id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: BusinessByOwner - build select query: %w", ErrBuildQuery, err)
	}
	return r.scanID(ctx, query, args, "BusinessByOwner")
}

func (r *Repository) scanID(ctx context.Context, query string, args []interface{}, op string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var id int64
	err := executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrBusinessNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %s - scan id: %w", ErrScanRow, op, err)
	}
	return id, nil
}
