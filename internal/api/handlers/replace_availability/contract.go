package replace_availability

import (
	"context"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/service/availability/models"
)

type AvailabilityService interface {
	ReplaceWeek(ctx context.Context, businessID int64, req *models.ReplaceWeekRequest) (*models.WeekResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
