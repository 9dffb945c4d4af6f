package get_available_days

import (
	"fmt"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	if req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professionalID must be positive", ErrInvalidInput)
	}

	if req.Days != nil && (*req.Days < 1 || *req.Days > domain.MaxCandidateWindowDays) {
		return fmt.Errorf("%w: days must be between 1 and %d", ErrInvalidInput, domain.MaxCandidateWindowDays)
	}

	return nil
}
