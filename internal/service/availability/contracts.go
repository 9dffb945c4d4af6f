package availability

import (
	"context"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/domain"
)

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	ListByBusiness(ctx context.Context, businessID int64) ([]*domain.AvailabilityWindow, error)
	Upsert(ctx context.Context, w *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
