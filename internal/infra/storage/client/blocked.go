package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/domain"
	"github.com/contatodubela-dotcom/cleverya-booking/pkg/dbmetrics"
	"github.com/contatodubela-dotcom/cleverya-booking/pkg/psqlbuilder"
)

// IsBlocked проверяет, заблокирован ли клиент в бизнесе
func (r *Repository) IsBlocked(ctx context.Context, businessID, clientID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("blocked_clients").
		Where(squirrel.Eq{"business_id": businessID, "client_id": clientID}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: IsBlocked - build select query: %w", ErrBuildQuery, err)
	}

	var blocked bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&blocked); err != nil {
		return false, fmt.Errorf("%w: IsBlocked - scan row: %w", ErrScanRow, err)
	}

	return blocked, nil
}

// Block добавляет клиента в список заблокированных (или обновляет причину и счетчик)
func (r *Repository) Block(ctx context.Context, b *domain.BlockedClient) (*domain.BlockedClient, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_clients").
		Columns("business_id", "client_id", "no_show_count", "reason").
		Values(b.BusinessID, b.ClientID, b.NoShowCount, b.Reason).
		Suffix("ON CONFLICT (business_id, client_id) DO UPDATE SET no_show_count = EXCLUDED.no_show_count, reason = EXCLUDED.reason RETURNING blocked_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Block - build upsert query: %w", ErrBuildQuery, err)
	}

	var blockedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&blockedAt); err != nil {
		return nil, fmt.Errorf("%w: Block - execute upsert: %w", ErrExecQuery, err)
	}
	b.BlockedAt = blockedAt.Time

	return b, nil
}

// Unblock удаляет клиента из списка заблокированных; отсутствие записи не ошибка
func (r *Repository) Unblock(ctx context.Context, businessID, clientID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_clients").
		Where(squirrel.Eq{"business_id": businessID, "client_id": clientID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Unblock - build delete query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Unblock - execute delete: %w", ErrExecQuery, err)
	}

	return nil
}

// ListBlocked получает заблокированных клиентов бизнеса, начиная с последних
func (r *Repository) ListBlocked(ctx context.Context, businessID int64) ([]*domain.BlockedClient, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("business_id", "client_id", "no_show_count", "reason", "blocked_at").
		From("blocked_clients").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("blocked_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlocked - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlocked - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.BlockedClient, 0)
	for rows.Next() {
		var b domain.BlockedClient
		var reason sql.NullString
		var blockedAt sql.NullTime
		if err := rows.Scan(&b.BusinessID, &b.ClientID, &b.NoShowCount, &reason, &blockedAt); err != nil {
			return nil, fmt.Errorf("%w: ListBlocked - scan row: %w", ErrScanRow, err)
		}
		b.Reason = reason.String
		b.BlockedAt = blockedAt.Time
		result = append(result, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBlocked - rows iteration: %w", ErrScanRow, err)
	}

	return result, nil
}
