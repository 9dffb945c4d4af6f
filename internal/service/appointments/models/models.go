package models

import (
	"time"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/domain"
)

// Request модели

// ListAppointmentsRequest запрос на получение записей бизнеса
type ListAppointmentsRequest struct {
	BusinessID     int64      `json:"businessId"`
	ProfessionalID *int64     `json:"professionalId,omitempty"`
	ClientID       *int64     `json:"clientId,omitempty"`
	From           *time.Time `json:"from,omitempty"`   // Начало периода включительно
	To             *time.Time `json:"to,omitempty"`     // Конец периода включительно
	Status         *string    `json:"status,omitempty"` // pending_payment возвращается только по явному запросу
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListAppointmentsRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		BusinessID:     r.BusinessID,
		ProfessionalID: r.ProfessionalID,
		ClientID:       r.ClientID,
		StartDate:      r.From,
		EndDate:        r.To,
	}

	if r.Status != nil {
		status, ok := domain.ParseAppointmentStatus(*r.Status)
		if !ok {
			return filter, ErrInvalidStatus
		}
		filter.Status = &status
	}

	return filter, nil
}

// ChangeStatusRequest запрос на смену статуса записи
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID             int64     `json:"id"`
	BusinessID     int64     `json:"businessId"`
	ClientID       int64     `json:"clientId"`
	ProfessionalID int64     `json:"professionalId"`
	ServiceID      int64     `json:"serviceId"`
	Date           string    `json:"date"` // "2024-06-03"
	Time           string    `json:"time"` // "09:00"
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// ChangeStatusResponse результат смены статуса
type ChangeStatusResponse struct {
	Appointment    AppointmentResponse `json:"appointment"`
	Changed        bool                `json:"changed"`               // false, если статус уже был таким
	NoShowCount    *int                `json:"noShowCount,omitempty"` // только для no_show
	BlockSuggested bool                `json:"blockSuggested"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:             a.ID,
		BusinessID:     a.BusinessID,
		ClientID:       a.ClientID,
		ProfessionalID: a.ProfessionalID,
		ServiceID:      a.ServiceID,
		Date:           a.Date.Format(domain.DateFormat),
		Time:           a.Time.String(),
		Status:         string(a.Status),
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, a := range appointments {
		if dto := FromDomainAppointment(a); dto != nil {
			resp.Appointments = append(resp.Appointments, *dto)
		}
	}

	return resp
}
