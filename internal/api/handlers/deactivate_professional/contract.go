package deactivate_professional

import "context"

type CatalogService interface {
	DeactivateProfessional(ctx context.Context, businessID, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
