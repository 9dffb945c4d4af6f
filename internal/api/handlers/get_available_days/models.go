package get_available_days

import (
	"github.com/contatodubela-dotcom/cleverya-booking/internal/domain"
	getAvailableDays "github.com/contatodubela-dotcom/cleverya-booking/internal/usecase/get_available_days"
)

// AvailableDaysResponse HTTP response model
type AvailableDaysResponse struct {
	BusinessID     int64    `json:"businessId"`
	ProfessionalID int64    `json:"professionalId"`
	From           string   `json:"from"`
	Days           []string `json:"days"` // YYYY-MM-DD
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableDays.Response) *AvailableDaysResponse {
	days := make([]string, len(resp.Days))
	for i, day := range resp.Days {
		days[i] = day.Format(domain.DateFormat)
	}

	return &AvailableDaysResponse{
		BusinessID:     resp.BusinessID,
		ProfessionalID: resp.ProfessionalID,
		From:           resp.From.Format(domain.DateFormat),
		Days:           days,
	}
}
