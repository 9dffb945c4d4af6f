package get_appointment

import (
	"context"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/service/appointments/models"
)

type AppointmentService interface {
	GetAppointment(ctx context.Context, businessID, appointmentID int64) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
