package list_appointments

import (
	"net/url"
	"strconv"
	"time"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/domain"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/service/appointments/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// date задает один день и имеет приоритет над from/to
func ToServiceRequest(businessID int64, query url.Values) (*models.ListAppointmentsRequest, error) {
	req := &models.ListAppointmentsRequest{
		BusinessID: businessID,
	}

	var err error
	if req.ProfessionalID, err = parseOptionalID(query.Get("professionalId")); err != nil {
		return nil, err
	}
	if req.ClientID, err = parseOptionalID(query.Get("clientId")); err != nil {
		return nil, err
	}
	if req.From, err = parseOptionalDate(query.Get("from")); err != nil {
		return nil, err
	}
	if req.To, err = parseOptionalDate(query.Get("to")); err != nil {
		return nil, err
	}

	if dateStr := query.Get("date"); dateStr != "" {
		date, err := parseOptionalDate(dateStr)
		if err != nil {
			return nil, err
		}
		req.From, req.To = date, date
	}

	if statusStr := query.Get("status"); statusStr != "" {
		req.Status = &statusStr
	}

	return req, nil
}

func parseOptionalID(s string) (*int64, error) {
	if s == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	date, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		return nil, err
	}
	return &date, nil
}
