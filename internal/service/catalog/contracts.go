package catalog

import (
	"context"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/domain"
)

// CatalogRepository интерфейс репозитория мастеров и услуг
type CatalogRepository interface {
	CreateProfessional(ctx context.Context, p *domain.Professional) (*domain.Professional, error)
	GetProfessionalForUpdate(ctx context.Context, businessID, id int64) (*domain.Professional, error)
	ListProfessionals(ctx context.Context, businessID int64, activeOnly bool) ([]*domain.Professional, error)
	UpdateProfessional(ctx context.Context, p *domain.Professional) error
	DeactivateProfessional(ctx context.Context, businessID, id int64) error

	CreateService(ctx context.Context, s *domain.Service) (*domain.Service, error)
	ListServices(ctx context.Context, businessID int64, activeOnly bool) ([]*domain.Service, error)
	DeactivateService(ctx context.Context, businessID, id int64) error
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
