package get_catalog

import (
	"context"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/service/catalog/models"
)

type CatalogService interface {
	GetCatalog(ctx context.Context, businessID int64, activeOnly bool) (*models.CatalogResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
