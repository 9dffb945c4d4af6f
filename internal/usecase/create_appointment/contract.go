package create_appointment

import (
	"context"
	"time"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/domain"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/integrations/notifier"
)

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	FindOrCreate(ctx context.Context, businessID int64, name, phone string) (*domain.Client, bool, error)
	IsBlocked(ctx context.Context, businessID, clientID int64) (bool, error)
}

// CatalogRepository интерфейс репозитория каталога (услуги и мастера)
type CatalogRepository interface {
	GetService(ctx context.Context, businessID, id int64) (*domain.Service, error)
	GetProfessionalForUpdate(ctx context.Context, businessID, id int64) (*domain.Professional, error)
}

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	GetByDay(ctx context.Context, businessID int64, dayOfWeek int) (*domain.AvailabilityWindow, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	CountOccupancy(ctx context.Context, professionalID int64, date time.Time) (domain.Occupancy, error)
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier интерфейс отправки событий в сервис уведомлений
type Notifier interface {
	Notify(ctx context.Context, event notifier.Event)
}

// Metrics интерфейс метрик попыток бронирования
type Metrics interface {
	ObserveAdmission(outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
