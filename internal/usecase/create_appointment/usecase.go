package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/domain"
	availabilityRepo "github.com/contatodubela-dotcom/cleverya-booking/internal/infra/storage/availability"
	catalogRepo "github.com/contatodubela-dotcom/cleverya-booking/internal/infra/storage/catalog"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/integrations/notifier"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/scheduling"
	"github.com/contatodubela-dotcom/cleverya-booking/pkg/tracing"
	"github.com/contatodubela-dotcom/cleverya-booking/pkg/txmanager"
)

// Исходы попытки бронирования для метрик
const (
	outcomeAdmitted        = "admitted"
	outcomeValidation      = "validation_failed"
	outcomeNotFound        = "not_found"
	outcomeTooFar          = "too_far"
	outcomeBlocked         = "client_blocked"
	outcomeSlotUnavailable = "slot_unavailable"
	outcomeSerialization   = "serialization_conflict"
	outcomeStorageFailure  = "storage_failure"
)

// UseCase use case для допуска записи (booking admission)
type UseCase struct {
	clientRepo       ClientRepository
	catalogRepo      CatalogRepository
	availabilityRepo AvailabilityRepository
	appointmentRepo  AppointmentRepository
	txManager        TransactionManager
	notifier         Notifier
	metrics          Metrics
	settings         scheduling.Settings
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	clientRepo ClientRepository,
	catalogRepo CatalogRepository,
	availabilityRepo AvailabilityRepository,
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	settings scheduling.Settings,
	logger Logger,
) *UseCase {
	return &UseCase{
		clientRepo:       clientRepo,
		catalogRepo:      catalogRepo,
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
		txManager:        txManager,
		notifier:         notifier,
		metrics:          metrics,
		settings:         settings.WithDefaults(),
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет попытку записи
// Проверка вместимости и вставка выполняются в одной транзакции READ COMMITTED под блокировкой строки мастера:
// подсчет занятости после блокировки видит все зафиксированные записи к этому мастеру
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	ctx, span := tracing.Tracer().Start(ctx, "CreateAppointment")
	defer span.End()

	uc.logger.Info("CreateAppointment: business=%d, service=%d, professional=%d, date=%s, time=%s",
		req.BusinessID, req.ServiceID, req.ProfessionalID, req.Date.Format(domain.DateFormat), req.Time)

	resp, outcome, err := uc.admit(ctx, req)
	uc.metrics.ObserveAdmission(outcome)
	span.SetAttributes(attribute.String("admission.outcome", outcome))
	if err != nil {
		span.SetStatus(codes.Error, outcome)
		return nil, err
	}
	return resp, nil
}

func (uc *UseCase) admit(ctx context.Context, req *Request) (*Response, string, error) {
	// 1. Валидация входных данных до обращения к хранилищу
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, outcomeValidation, err
	}

	// 2. Приводим дату и текущее время к часовому поясу бизнеса
	now := uc.settings.Now(uc.timeProvider.Now())
	date := uc.settings.LocalDate(req.Date)

	if uc.settings.BeyondHorizon(date, now) {
		uc.logger.Warn("CreateAppointment: date %s is beyond booking horizon", date.Format(domain.DateFormat))
		return nil, outcomeTooFar, ErrDateTooFarInFuture
	}

	var (
		result        *domain.Appointment
		clientCreated bool
	)

	// 3. Все проверки и вставка в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Услуга должна существовать и быть активной
		service, err := uc.catalogRepo.GetService(txCtx, req.BusinessID, req.ServiceID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
				return ErrServiceNotFound
			}
			uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
			return fmt.Errorf("%w: failed to get service: %w", ErrStorageFailure, err)
		}
		if !service.IsActive {
			uc.logger.Warn("CreateAppointment: service id=%d is inactive", req.ServiceID)
			return ErrServiceNotFound
		}

		// 3.2. Находим или создаем клиента по телефону
		client, created, err := uc.clientRepo.FindOrCreate(txCtx, req.BusinessID, req.ClientName, req.ClientPhone)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to resolve client: %v", err)
			return fmt.Errorf("%w: failed to resolve client: %w", ErrStorageFailure, err)
		}
		clientCreated = created

		// 3.3. Заблокированный клиент не может записаться
		blocked, err := uc.clientRepo.IsBlocked(txCtx, req.BusinessID, client.ID)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to check block for client id=%d: %v", client.ID, err)
			return fmt.Errorf("%w: failed to check block: %w", ErrStorageFailure, err)
		}
		if blocked {
			uc.logger.Warn("CreateAppointment: client id=%d is blocked in business id=%d", client.ID, req.BusinessID)
			return ErrClientBlocked
		}

		// 3.4. Блокируем строку мастера: записи к одному мастеру выполняются последовательно
		professional, err := uc.catalogRepo.GetProfessionalForUpdate(txCtx, req.BusinessID, req.ProfessionalID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
				uc.logger.Warn("CreateAppointment: professional id=%d not found", req.ProfessionalID)
				return ErrProfessionalNotFound
			}
			uc.logger.Error("CreateAppointment: failed to lock professional id=%d: %v", req.ProfessionalID, err)
			return fmt.Errorf("%w: failed to lock professional: %w", ErrStorageFailure, err)
		}
		if !professional.IsActive {
			uc.logger.Warn("CreateAppointment: professional id=%d is inactive", req.ProfessionalID)
			return ErrProfessionalNotFound
		}

		// 3.5. Слот должен совпадать с сеткой активного окна и не быть в прошлом
		window, err := uc.availabilityRepo.GetByDay(txCtx, req.BusinessID, int(date.Weekday()))
		if err != nil && !errors.Is(err, availabilityRepo.ErrWindowNotFound) {
			uc.logger.Error("CreateAppointment: failed to get window: %v", err)
			return fmt.Errorf("%w: failed to get window: %w", ErrStorageFailure, err)
		}
		if !scheduling.IsOnGrid(window, uc.settings.GranularityMinutes, req.Time) {
			uc.logger.Warn("CreateAppointment: time %s is outside of schedule on %s",
				req.Time, date.Format(domain.DateFormat))
			return ErrSlotUnavailable
		}
		if scheduling.IsPast(date, req.Time, now) {
			uc.logger.Warn("CreateAppointment: slot %s %s is in the past", date.Format(domain.DateFormat), req.Time)
			return ErrSlotUnavailable
		}

		// 3.6. Пересчитываем занятость после блокировки мастера
		occupancy, err := uc.appointmentRepo.CountOccupancy(txCtx, professional.ID, date)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to count occupancy: %v", err)
			return fmt.Errorf("%w: failed to count occupancy: %w", ErrStorageFailure, err)
		}

		occupied := occupancy.At(req.Time)
		if !scheduling.HasCapacity(professional, occupied) {
			uc.logger.Warn("CreateAppointment: slot not available, %d/%d spots taken", occupied, professional.Capacity)
			return ErrSlotUnavailable
		}

		uc.logger.Info("CreateAppointment: slot available, %d/%d spots taken", occupied, professional.Capacity)

		// 3.7. Создаем запись
		result, err = uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			BusinessID:     req.BusinessID,
			ClientID:       client.ID,
			ProfessionalID: professional.ID,
			ServiceID:      service.ID,
			Date:           date,
			Time:           req.Time,
			Status:         service.InitialStatus(),
		})
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrStorageFailure, err)
		}

		return nil
	})
	if err != nil {
		return nil, classify(err), uc.mapTxError(err)
	}

	uc.logger.Info("CreateAppointment: appointment id=%d created, client=%d (new=%t), status=%s",
		result.ID, result.ClientID, clientCreated, result.Status)

	// 4. Уведомление после фиксации транзакции, ошибки не влияют на результат
	uc.notifier.Notify(ctx, notifier.Event{
		EventType:      notifier.EventAppointmentCreated,
		AppointmentID:  result.ID,
		BusinessID:     result.BusinessID,
		ClientID:       result.ClientID,
		ProfessionalID: result.ProfessionalID,
		ServiceID:      result.ServiceID,
		Date:           result.Date.Format(domain.DateFormat),
		Time:           result.Time.String(),
		Status:         string(result.Status),
	})

	return &Response{
		ID:             result.ID,
		BusinessID:     result.BusinessID,
		ClientID:       result.ClientID,
		ProfessionalID: result.ProfessionalID,
		ServiceID:      result.ServiceID,
		Date:           result.Date,
		Time:           result.Time,
		Status:         string(result.Status),
		State:          StateAdmitted,
		ClientCreated:  clientCreated,
		CreatedAt:      result.CreatedAt,
	}, outcomeAdmitted, nil
}

// mapTxError оставляет ошибки use case как есть, ошибки транзакции превращает в ErrStorageFailure
func (uc *UseCase) mapTxError(err error) error {
	switch {
	case txmanager.IsSerializationFailure(err):
		uc.logger.Warn("CreateAppointment: concurrent admission conflict: %v", err)
		if errors.Is(err, ErrStorageFailure) {
			return err
		}
		return fmt.Errorf("%w: concurrent admission, retry: %w", ErrStorageFailure, err)
	case errors.Is(err, ErrServiceNotFound),
		errors.Is(err, ErrProfessionalNotFound),
		errors.Is(err, ErrClientBlocked),
		errors.Is(err, ErrSlotUnavailable),
		errors.Is(err, ErrStorageFailure):
		return err
	default:
		uc.logger.Error("CreateAppointment: transaction failed: %v", err)
		return fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
}

func classify(err error) string {
	switch {
	case txmanager.IsSerializationFailure(err):
		return outcomeSerialization
	case errors.Is(err, ErrServiceNotFound), errors.Is(err, ErrProfessionalNotFound):
		return outcomeNotFound
	case errors.Is(err, ErrClientBlocked):
		return outcomeBlocked
	case errors.Is(err, ErrSlotUnavailable):
		return outcomeSlotUnavailable
	default:
		return outcomeStorageFailure
	}
}
