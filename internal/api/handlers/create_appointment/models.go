package create_appointment

import (
	"time"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/domain"
	createAppointment "github.com/contatodubela-dotcom/cleverya-booking/internal/usecase/create_appointment"
	"github.com/contatodubela-dotcom/cleverya-booking/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ServiceID      int64  `json:"serviceId"`
	ProfessionalID int64  `json:"professionalId"`
	Date           string `json:"date"` // "2025-10-15"
	Time           string `json:"time"` // "10:00"
	ClientName     string `json:"clientName"`
	ClientPhone    string `json:"clientPhone"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID             int64  `json:"id"`
	BusinessID     int64  `json:"businessId"`
	ClientID       int64  `json:"clientId"`
	ProfessionalID int64  `json:"professionalId"`
	ServiceID      int64  `json:"serviceId"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	Status         string `json:"status"`
	State          string `json:"state"`
	CreatedAt      string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(businessID int64) (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, errInvalidDate
	}

	startTime, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, errInvalidTime
	}

	return &createAppointment.Request{
		BusinessID:     businessID,
		ServiceID:      r.ServiceID,
		ProfessionalID: r.ProfessionalID,
		Date:           date,
		Time:           startTime,
		ClientName:     r.ClientName,
		ClientPhone:    r.ClientPhone,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *createAppointment.Response) AppointmentResponse {
	return AppointmentResponse{
		ID:             resp.ID,
		BusinessID:     resp.BusinessID,
		ClientID:       resp.ClientID,
		ProfessionalID: resp.ProfessionalID,
		ServiceID:      resp.ServiceID,
		Date:           resp.Date.Format(domain.DateFormat),
		Time:           resp.Time.String(),
		Status:         resp.Status,
		State:          resp.State,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
	}
}
