package appointments

import (
	"context"
	"time"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/domain"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/integrations/notifier"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, businessID, id int64) (*domain.Appointment, error)
	ListWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatusIfCurrent(ctx context.Context, businessID, id int64, from, to domain.AppointmentStatus) error
	CountNoShows(ctx context.Context, businessID, clientID int64) (int, error)
	CancelStalePendingPayment(ctx context.Context, createdBefore time.Time) ([]int64, error)
	CountOccupancy(ctx context.Context, professionalID int64, date time.Time) (domain.Occupancy, error)
}

// ProfessionalRepository интерфейс для блокировки мастера при перепроверке вместимости
type ProfessionalRepository interface {
	GetProfessionalForUpdate(ctx context.Context, businessID, id int64) (*domain.Professional, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier интерфейс отправки событий в сервис уведомлений
type Notifier interface {
	Notify(ctx context.Context, event notifier.Event)
}

// Metrics интерфейс метрик смены статусов
type Metrics interface {
	ObserveTransition(from, to string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
