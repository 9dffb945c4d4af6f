package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/domain"
	catalogRepo "github.com/contatodubela-dotcom/cleverya-booking/internal/infra/storage/catalog"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/service/catalog/models"
)

// Service сервис каталога: мастера и услуги бизнеса
type Service struct {
	catalogRepo CatalogRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(catalogRepo CatalogRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetCatalog получает мастеров и услуги бизнеса
// Публичный каталог содержит только активные позиции, владелец видит все
func (s *Service) GetCatalog(ctx context.Context, businessID int64, activeOnly bool) (*models.CatalogResponse, error) {
	s.logger.Info("GetCatalog: business=%d, activeOnly=%t", businessID, activeOnly)

	professionals, err := s.catalogRepo.ListProfessionals(ctx, businessID, activeOnly)
	if err != nil {
		s.logger.Error("GetCatalog: failed to list professionals for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: GetCatalog - list professionals: %w", ErrInternal, err)
	}

	services, err := s.catalogRepo.ListServices(ctx, businessID, activeOnly)
	if err != nil {
		s.logger.Error("GetCatalog: failed to list services for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: GetCatalog - list services: %w", ErrInternal, err)
	}

	resp := &models.CatalogResponse{
		BusinessID:    businessID,
		Professionals: make([]models.ProfessionalResponse, 0, len(professionals)),
		Services:      make([]models.ServiceResponse, 0, len(services)),
	}
	for _, p := range professionals {
		resp.Professionals = append(resp.Professionals, models.FromDomainProfessional(p))
	}
	for _, svc := range services {
		resp.Services = append(resp.Services, models.FromDomainService(svc))
	}

	return resp, nil
}

// CreateProfessional создает мастера; вместимость по умолчанию 1
func (s *Service) CreateProfessional(ctx context.Context, businessID int64, req *models.CreateProfessionalRequest) (*models.ProfessionalResponse, error) {
	s.logger.Info("CreateProfessional: business=%d, name=%s", businessID, req.Name)

	name, err := validateName(req.Name)
	if err != nil {
		s.logger.Warn("CreateProfessional: validation failed: %v", err)
		return nil, err
	}

	capacity := domain.DefaultProfessionalCapacity
	if req.Capacity != nil {
		capacity = *req.Capacity
	}
	if err := validateCapacity(capacity); err != nil {
		s.logger.Warn("CreateProfessional: validation failed: %v", err)
		return nil, err
	}

	created, err := s.catalogRepo.CreateProfessional(ctx, &domain.Professional{
		BusinessID: businessID,
		Name:       name,
		Capacity:   capacity,
		IsActive:   true,
	})
	if err != nil {
		s.logger.Error("CreateProfessional: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateProfessional - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("CreateProfessional: successfully created professional id=%d", created.ID)
	resp := models.FromDomainProfessional(created)
	return &resp, nil
}

// UpdateProfessional меняет имя и/или вместимость мастера
// Строка мастера блокируется, поэтому изменение не пересекается с записью клиента к этому мастеру
func (s *Service) UpdateProfessional(ctx context.Context, businessID, id int64, req *models.UpdateProfessionalRequest) (*models.ProfessionalResponse, error) {
	s.logger.Info("UpdateProfessional: professional id=%d, business=%d", id, businessID)

	if req.Name == nil && req.Capacity == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	var name string
	if req.Name != nil {
		var err error
		if name, err = validateName(*req.Name); err != nil {
			s.logger.Warn("UpdateProfessional: validation failed: %v", err)
			return nil, err
		}
	}
	if req.Capacity != nil {
		if err := validateCapacity(*req.Capacity); err != nil {
			s.logger.Warn("UpdateProfessional: validation failed: %v", err)
			return nil, err
		}
	}

	var updated *domain.Professional
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		professional, err := s.catalogRepo.GetProfessionalForUpdate(txCtx, businessID, id)
		if err != nil {
			return err
		}

		if req.Name != nil {
			professional.Name = name
		}
		if req.Capacity != nil {
			professional.Capacity = *req.Capacity
		}

		if err := s.catalogRepo.UpdateProfessional(txCtx, professional); err != nil {
			return err
		}
		updated = professional
		return nil
	})
	if err != nil {
		if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
			s.logger.Warn("UpdateProfessional: professional id=%d not found in business=%d", id, businessID)
			return nil, ErrProfessionalNotFound
		}
		s.logger.Error("UpdateProfessional: repository error for professional id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateProfessional - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("UpdateProfessional: successfully updated professional id=%d", id)
	resp := models.FromDomainProfessional(updated)
	return &resp, nil
}

// DeactivateProfessional мягко удаляет мастера
func (s *Service) DeactivateProfessional(ctx context.Context, businessID, id int64) error {
	s.logger.Info("DeactivateProfessional: professional id=%d, business=%d", id, businessID)

	if err := s.catalogRepo.DeactivateProfessional(ctx, businessID, id); err != nil {
		if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
			s.logger.Warn("DeactivateProfessional: professional id=%d not found in business=%d", id, businessID)
			return ErrProfessionalNotFound
		}
		s.logger.Error("DeactivateProfessional: repository error for professional id=%d: %v", id, err)
		return fmt.Errorf("%w: DeactivateProfessional - repository error: %w", ErrInternal, err)
	}

	return nil
}

// CreateService создает услугу
func (s *Service) CreateService(ctx context.Context, businessID int64, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("CreateService: business=%d, name=%s", businessID, req.Name)

	name, err := validateName(req.Name)
	if err != nil {
		s.logger.Warn("CreateService: validation failed: %v", err)
		return nil, err
	}
	if err := validateDuration(req.DurationMinutes); err != nil {
		s.logger.Warn("CreateService: validation failed: %v", err)
		return nil, err
	}
	price, err := normalizePrice(req.Price)
	if err != nil {
		s.logger.Warn("CreateService: validation failed: %v", err)
		return nil, err
	}

	created, err := s.catalogRepo.CreateService(ctx, &domain.Service{
		BusinessID:      businessID,
		Name:            name,
		DurationMinutes: req.DurationMinutes,
		Price:           price,
		Category:        strings.TrimSpace(req.Category),
		RequiresDeposit: req.RequiresDeposit,
		IsActive:        true,
	})
	if err != nil {
		s.logger.Error("CreateService: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateService - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("CreateService: successfully created service id=%d", created.ID)
	resp := models.FromDomainService(created)
	return &resp, nil
}

// DeactivateService мягко удаляет услугу
func (s *Service) DeactivateService(ctx context.Context, businessID, id int64) error {
	s.logger.Info("DeactivateService: service id=%d, business=%d", id, businessID)

	if err := s.catalogRepo.DeactivateService(ctx, businessID, id); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("DeactivateService: service id=%d not found in business=%d", id, businessID)
			return ErrServiceNotFound
		}
		s.logger.Error("DeactivateService: repository error for service id=%d: %v", id, err)
		return fmt.Errorf("%w: DeactivateService - repository error: %w", ErrInternal, err)
	}

	return nil
}
