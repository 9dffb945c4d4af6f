package list_blocked_clients

import (
	"context"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/service/clients/models"
)

type ClientService interface {
	ListBlocked(ctx context.Context, businessID int64) (*models.BlockedClientListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
