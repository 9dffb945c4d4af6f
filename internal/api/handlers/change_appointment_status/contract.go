package change_appointment_status

import (
	"context"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/service/appointments/models"
)

type AppointmentService interface {
	ChangeStatus(ctx context.Context, businessID, appointmentID int64, req *models.ChangeStatusRequest) (*models.ChangeStatusResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
