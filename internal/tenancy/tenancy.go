package tenancy

import (
	"context"
	"errors"
	"fmt"

	tenantRepo "github.com/contatodubela-dotcom/cleverya-booking/internal/infra/storage/tenant"
)

var (
	// ErrTenantNotFound возвращается, когда пользователь не связан ни с одним бизнесом
	ErrTenantNotFound = errors.New("tenancy: tenant not found")

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("tenancy: internal error")
)

// Lookup источник связей пользователь -> бизнес
type Lookup interface {
	BusinessByMember(ctx context.Context, userID string) (int64, error)
	BusinessByOwner(ctx context.Context, userID string) (int64, error)
}

// Resolver определяет бизнес пользователя: сначала по участию, затем по владению
type Resolver struct {
	lookup Lookup
}

// NewResolver создает резолвер
func NewResolver(lookup Lookup) *Resolver {
	return &Resolver{lookup: lookup}
}

// ResolveTenant возвращает ID бизнеса пользователя или ErrTenantNotFound
func (r *Resolver) ResolveTenant(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, ErrTenantNotFound
	}

	id, err := r.lookup.BusinessByMember(ctx, userID)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, tenantRepo.ErrBusinessNotFound) {
		return 0, fmt.Errorf("%w: membership lookup: %w", ErrInternal, err)
	}

	id, err = r.lookup.BusinessByOwner(ctx, userID)
	if err == nil {
		return id, nil
	}
	if errors.Is(err, tenantRepo.ErrBusinessNotFound) {
		return 0, ErrTenantNotFound
	}
	return 0, fmt.Errorf("%w: ownership lookup: %w", ErrInternal, err)
}

type (
	userKey     struct{}
	businessKey struct{}
)

// WithUserID кладет ID аутентифицированного пользователя в контекст
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userKey{}, userID)
}

// UserIDFromContext извлекает ID пользователя из контекста
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userKey{}).(string)
	return id, ok && id != ""
}

// WithBusinessID кладет ID бизнеса текущего пользователя в контекст
func WithBusinessID(ctx context.Context, businessID int64) context.Context {
	return context.WithValue(ctx, businessKey{}, businessID)
}

// BusinessIDFromContext извлекает ID бизнеса из контекста
func BusinessIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(businessKey{}).(int64)
	return id, ok && id > 0
}
