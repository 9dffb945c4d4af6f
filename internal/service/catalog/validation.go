package catalog

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/domain"
)

// maxPrice верхняя граница NUMERIC(10,2)
const maxPrice = 99999999.99

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxNameLength {
		return "", fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	return name, nil
}

func validateCapacity(capacity int) error {
	if capacity < domain.MinProfessionalCapacity || capacity > domain.MaxProfessionalCapacity {
		return fmt.Errorf("%w: capacity must be between %d and %d",
			ErrInvalidInput, domain.MinProfessionalCapacity, domain.MaxProfessionalCapacity)
	}
	return nil
}

func validateDuration(minutes int) error {
	if minutes < domain.MinServiceDurationMinutes || minutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}
	return nil
}

// normalizePrice проверяет цену и округляет до копеек
func normalizePrice(price float64) (float64, error) {
	if math.IsNaN(price) || price < 0 || price > maxPrice {
		return 0, fmt.Errorf("%w: price must be between 0 and %.2f", ErrInvalidInput, maxPrice)
	}
	return math.Round(price*100) / 100, nil
}
