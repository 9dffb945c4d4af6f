package create_professional

import (
	"context"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/service/catalog/models"
)

type CatalogService interface {
	CreateProfessional(ctx context.Context, businessID int64, req *models.CreateProfessionalRequest) (*models.ProfessionalResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
