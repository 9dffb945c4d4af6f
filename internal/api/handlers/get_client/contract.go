package get_client

import (
	"context"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/service/clients/models"
)

type ClientService interface {
	GetSummary(ctx context.Context, businessID, clientID int64) (*models.ClientSummaryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
