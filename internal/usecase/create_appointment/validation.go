package create_appointment

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/domain"
)

// validateRequest валидирует входные данные запроса и нормализует контактные данные
func validateRequest(req *Request) error {
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessID must be positive", ErrValidation)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID is required", ErrValidation)
	}

	if req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professionalID is required", ErrValidation)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}

	if req.Time.IsZero() {
		return fmt.Errorf("%w: time is required", ErrValidation)
	}

	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time format: %w", ErrValidation, err)
	}

	req.ClientName = strings.TrimSpace(req.ClientName)
	if req.ClientName == "" {
		return fmt.Errorf("%w: client name is required", ErrValidation)
	}
	if utf8.RuneCountInString(req.ClientName) > domain.MaxNameLength {
		return fmt.Errorf("%w: client name is too long", ErrValidation)
	}

	req.ClientPhone = domain.NormalizePhone(req.ClientPhone)
	if n := len(req.ClientPhone); n < domain.MinPhoneDigits || n > domain.MaxPhoneDigits {
		return fmt.Errorf("%w: phone must contain %d-%d digits", ErrValidation, domain.MinPhoneDigits, domain.MaxPhoneDigits)
	}

	return nil
}
