package update_professional

import (
	"context"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/service/catalog/models"
)

type CatalogService interface {
	UpdateProfessional(ctx context.Context, businessID, id int64, req *models.UpdateProfessionalRequest) (*models.ProfessionalResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
