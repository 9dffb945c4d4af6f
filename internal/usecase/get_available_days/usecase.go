package get_available_days

import (
	"context"
	"errors"
	"fmt"

	catalogRepo "github.com/contatodubela-dotcom/cleverya-booking/internal/infra/storage/catalog"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/scheduling"
)

// UseCase use case для получения дней, в которые открыта запись к мастеру
type UseCase struct {
	catalogRepo      CatalogRepository
	availabilityRepo AvailabilityRepository
	settings         scheduling.Settings
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	availabilityRepo AvailabilityRepository,
	settings scheduling.Settings,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo:      catalogRepo,
		availabilityRepo: availabilityRepo,
		settings:         settings.WithDefaults(),
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения дней
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableDays: business=%d, professional=%d", req.BusinessID, req.ProfessionalID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableDays: validation failed: %v", err)
		return nil, err
	}

	days := uc.settings.WindowDays
	if req.Days != nil {
		days = *req.Days
	}

	// 2. Мастер должен существовать и быть активным
	professional, err := uc.catalogRepo.GetProfessional(ctx, req.BusinessID, req.ProfessionalID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
			uc.logger.Warn("GetAvailableDays: professional id=%d not found", req.ProfessionalID)
			return nil, ErrProfessionalNotFound
		}
		uc.logger.Error("GetAvailableDays: failed to get professional id=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get professional: %w", ErrInternal, err)
	}
	if !professional.IsActive {
		uc.logger.Warn("GetAvailableDays: professional id=%d is inactive", req.ProfessionalID)
		return nil, ErrProfessionalNotFound
	}

	// 3. Получаем недельное расписание бизнеса
	windows, err := uc.availabilityRepo.ListByBusiness(ctx, req.BusinessID)
	if err != nil {
		uc.logger.Error("GetAvailableDays: failed to list windows: %v", err)
		return nil, fmt.Errorf("%w: failed to list windows: %w", ErrInternal, err)
	}

	// 4. Оставляем дни с активным окном
	today := scheduling.DateOnly(uc.settings.Now(uc.timeProvider.Now()))
	candidates := scheduling.CandidateDays(days, today, windows)

	uc.logger.Info("GetAvailableDays: %d of %d days are open", len(candidates), days)

	return &Response{
		BusinessID:     req.BusinessID,
		ProfessionalID: req.ProfessionalID,
		From:           today,
		Days:           candidates,
	}, nil
}
