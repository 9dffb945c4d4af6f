package block_client

import (
	"context"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/service/clients/models"
)

type ClientService interface {
	Block(ctx context.Context, businessID, clientID int64, req *models.BlockClientRequest) (*models.BlockedClientResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
