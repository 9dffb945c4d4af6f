package clients

import (
	"context"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/domain"
)

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	GetByID(ctx context.Context, businessID, id int64) (*domain.Client, error)
	IsBlocked(ctx context.Context, businessID, clientID int64) (bool, error)
	Block(ctx context.Context, b *domain.BlockedClient) (*domain.BlockedClient, error)
	Unblock(ctx context.Context, businessID, clientID int64) error
	ListBlocked(ctx context.Context, businessID int64) ([]*domain.BlockedClient, error)
}

// NoShowCounter считает неявки клиента
type NoShowCounter interface {
	CountNoShows(ctx context.Context, businessID, clientID int64) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
