package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/api/handlers"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/tenancy"
)

const (
	msgUnauthorized   = "пользователь не аутентифицирован"
	msgTenantNotFound = "пользователь не привязан к бизнесу"
)

// TenantResolver определяет бизнес пользователя
type TenantResolver interface {
	ResolveTenant(ctx context.Context, userID string) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Tenant кладет ID бизнеса аутентифицированного пользователя в контекст
// Должен стоять после Auth
func Tenant(resolver TenantResolver, log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := tenancy.UserIDFromContext(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}

			businessID, err := resolver.ResolveTenant(r.Context(), userID)
			if err != nil {
				if errors.Is(err, tenancy.ErrTenantNotFound) {
					log.Warn("Tenant: user=%s has no business", userID)
					handlers.RespondForbidden(w, msgTenantNotFound)
					return
				}
				log.Error("Tenant: failed to resolve business for user=%s: %v", userID, err)
				handlers.RespondInternalError(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(tenancy.WithBusinessID(r.Context(), businessID)))
		})
	}
}
