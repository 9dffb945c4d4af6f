package models

import "github.com/contatodubela-dotcom/cleverya-booking/internal/domain"

// Request модели

// CreateProfessionalRequest запрос на создание мастера
type CreateProfessionalRequest struct {
	Name     string `json:"name"`
	Capacity *int   `json:"capacity,omitempty"` // По умолчанию 1
}

// UpdateProfessionalRequest запрос на изменение мастера (только переданные поля)
type UpdateProfessionalRequest struct {
	Name     *string `json:"name,omitempty"`
	Capacity *int    `json:"capacity,omitempty"`
}

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	Category        string  `json:"category"`
	RequiresDeposit bool    `json:"requiresDeposit"`
}

// Response модели

// ProfessionalResponse данные мастера
type ProfessionalResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	IsActive bool   `json:"isActive"`
}

// ServiceResponse данные услуги
type ServiceResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	Category        string  `json:"category"`
	RequiresDeposit bool    `json:"requiresDeposit"`
	IsActive        bool    `json:"isActive"`
}

// CatalogResponse каталог бизнеса
type CatalogResponse struct {
	BusinessID    int64                  `json:"businessId"`
	Professionals []ProfessionalResponse `json:"professionals"`
	Services      []ServiceResponse      `json:"services"`
}

// Методы конвертации

// FromDomainProfessional конвертирует domain модель в DTO
func FromDomainProfessional(p *domain.Professional) ProfessionalResponse {
	return ProfessionalResponse{
		ID:       p.ID,
		Name:     p.Name,
		Capacity: p.Capacity,
		IsActive: p.IsActive,
	}
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) ServiceResponse {
	return ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
		Category:        s.Category,
		RequiresDeposit: s.RequiresDeposit,
		IsActive:        s.IsActive,
	}
}
