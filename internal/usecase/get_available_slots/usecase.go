package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/domain"
	availabilityRepo "github.com/contatodubela-dotcom/cleverya-booking/internal/infra/storage/availability"
	catalogRepo "github.com/contatodubela-dotcom/cleverya-booking/internal/infra/storage/catalog"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/scheduling"
	"github.com/contatodubela-dotcom/cleverya-booking/pkg/tracing"
)

// UseCase use case для получения доступных слотов мастера на дату
type UseCase struct {
	catalogRepo      CatalogRepository
	availabilityRepo AvailabilityRepository
	appointmentRepo  AppointmentRepository
	settings         scheduling.Settings
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	availabilityRepo AvailabilityRepository,
	appointmentRepo AppointmentRepository,
	settings scheduling.Settings,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo:      catalogRepo,
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
		settings:         settings.WithDefaults(),
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	ctx, span := tracing.Tracer().Start(ctx, "GetAvailableSlots")
	defer span.End()

	uc.logger.Info("GetAvailableSlots: business=%d, professional=%d, date=%s",
		req.BusinessID, req.ProfessionalID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Приводим дату и текущее время к часовому поясу бизнеса
	now := uc.settings.Now(uc.timeProvider.Now())
	date := uc.settings.LocalDate(req.Date)

	if uc.settings.BeyondHorizon(date, now) {
		uc.logger.Warn("GetAvailableSlots: date %s is beyond booking horizon", date.Format(domain.DateFormat))
		return nil, ErrDateTooFarInFuture
	}

	// 3. Получаем мастера
	professional, err := uc.catalogRepo.GetProfessional(ctx, req.BusinessID, req.ProfessionalID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
			uc.logger.Warn("GetAvailableSlots: professional id=%d not found", req.ProfessionalID)
			return nil, ErrProfessionalNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get professional id=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get professional: %w", ErrInternal, err)
	}
	if !professional.IsActive {
		uc.logger.Warn("GetAvailableSlots: professional id=%d is inactive", req.ProfessionalID)
		return nil, ErrProfessionalNotFound
	}

	// 4. Длительность слота: длительность услуги, если она указана, иначе шаг сетки
	duration := uc.settings.GranularityMinutes
	if req.ServiceID != nil {
		service, err := uc.catalogRepo.GetService(ctx, req.BusinessID, *req.ServiceID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				uc.logger.Warn("GetAvailableSlots: service id=%d not found", *req.ServiceID)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
		}
		if !service.IsActive {
			uc.logger.Warn("GetAvailableSlots: service id=%d is inactive", *req.ServiceID)
			return nil, ErrServiceNotFound
		}
		duration = service.DurationMinutes
	}

	response := &Response{
		Date:           date,
		BusinessID:     req.BusinessID,
		ProfessionalID: req.ProfessionalID,
		ServiceID:      req.ServiceID,
		Slots:          []Slot{},
	}

	// 5. Прошедшая дата: пустой список
	if scheduling.IsDateInPast(date, now) {
		uc.logger.Info("GetAvailableSlots: date %s is in the past", date.Format(domain.DateFormat))
		return response, nil
	}

	// 6. Получаем окно доступности на день недели
	window, err := uc.availabilityRepo.GetByDay(ctx, req.BusinessID, int(date.Weekday()))
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrWindowNotFound) {
			uc.logger.Info("GetAvailableSlots: no window for %s", date.Weekday())
			return response, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get window: %v", err)
		return nil, fmt.Errorf("%w: failed to get window: %w", ErrInternal, err)
	}
	if !window.IsActive {
		uc.logger.Info("GetAvailableSlots: business is closed on %s", date.Weekday())
		return response, nil
	}

	// 7. Считаем занятость слотов
	occupancy, err := uc.appointmentRepo.CountOccupancy(ctx, professional.ID, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to count occupancy: %v", err)
		return nil, fmt.Errorf("%w: failed to count occupancy: %w", ErrInternal, err)
	}

	// 8. Оставляем слоты со свободными местами
	for _, slot := range scheduling.AvailableSlotDetails(professional, date, window, occupancy, uc.settings.GranularityMinutes, now) {
		response.Slots = append(response.Slots, Slot{
			StartTime:       slot.StartTime,
			DurationMinutes: duration,
			AvailableSpots:  slot.AvailableSpots,
			TotalSpots:      slot.TotalSpots,
		})
	}

	uc.logger.Info("GetAvailableSlots: found %d available slots", len(response.Slots))

	return response, nil
}
