package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/domain"
	appointmentRepo "github.com/contatodubela-dotcom/cleverya-booking/internal/infra/storage/appointment"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/integrations/notifier"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/scheduling"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/service/appointments/models"
)

// Service сервис жизненного цикла записей
type Service struct {
	appointmentRepo  AppointmentRepository
	professionalRepo ProfessionalRepository
	txManager        TransactionManager
	notifier         Notifier
	metrics          Metrics
	noShowThreshold  int
	now              func() time.Time
	logger           Logger
}

// NewService создает новый экземпляр сервиса записей
// noShowThreshold: число неявок, после которого владельцу предлагается заблокировать клиента
func NewService(
	appointmentRepo AppointmentRepository,
	professionalRepo ProfessionalRepository,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	noShowThreshold int,
	logger Logger,
) *Service {
	if noShowThreshold <= 0 {
		noShowThreshold = domain.DefaultNoShowBlockThreshold
	}
	return &Service{
		appointmentRepo:  appointmentRepo,
		professionalRepo: professionalRepo,
		txManager:        txManager,
		notifier:         notifier,
		metrics:          metrics,
		noShowThreshold:  noShowThreshold,
		now:              time.Now,
		logger:           logger,
	}
}

// ListAppointments получает записи бизнеса для панели владельца
// Сортировка по дате и времени; pending_payment возвращается только по явному фильтру
func (s *Service) ListAppointments(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListAppointments: fetching appointments for business=%d, status=%v", req.BusinessID, req.Status)

	if req.From != nil && req.To != nil && req.To.Before(*req.From) {
		s.logger.Warn("ListAppointments: invalid period for business=%d", req.BusinessID)
		return nil, ErrInvalidTimeRange
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListAppointments: invalid filter for business=%d: %v", req.BusinessID, err)
		return nil, ErrInvalidStatus
	}

	appointments, err := s.appointmentRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListAppointments: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: ListAppointments - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ListAppointments: successfully fetched %d appointments for business=%d", len(appointments), req.BusinessID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetAppointment получает запись бизнеса по ID
func (s *Service) GetAppointment(ctx context.Context, businessID, appointmentID int64) (*models.AppointmentResponse, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, businessID, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetAppointment: appointment id=%d not found in business=%d", appointmentID, businessID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetAppointment: repository error for appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: GetAppointment - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainAppointment(appointment), nil
}

// ChangeStatus переводит запись в новый статус
// Повторная установка текущего статуса ничего не меняет и не считается ошибкой
func (s *Service) ChangeStatus(ctx context.Context, businessID, appointmentID int64, req *models.ChangeStatusRequest) (*models.ChangeStatusResponse, error) {
	s.logger.Info("ChangeStatus: appointment id=%d, business=%d, status=%s", appointmentID, businessID, req.Status)

	// 1. Валидируем статус
	newStatus, ok := domain.ParseAppointmentStatus(req.Status)
	if !ok {
		s.logger.Warn("ChangeStatus: invalid status=%s for appointment id=%d", req.Status, appointmentID)
		return nil, ErrInvalidStatus
	}

	// 2. Получаем запись в рамках бизнеса
	appointment, err := s.appointmentRepo.GetByID(ctx, businessID, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("ChangeStatus: appointment id=%d not found in business=%d", appointmentID, businessID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("ChangeStatus: repository error for appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: ChangeStatus - repository error: %w", ErrInternal, err)
	}

	// 3. Тот же статус, ничего не делаем
	if appointment.Status == newStatus {
		s.logger.Info("ChangeStatus: appointment id=%d already has status=%s", appointmentID, newStatus)
		return &models.ChangeStatusResponse{Appointment: *models.FromDomainAppointment(appointment)}, nil
	}

	// 4. Проверяем допустимость перехода
	previous := appointment.Status
	if !domain.CanTransition(previous, newStatus) {
		s.logger.Warn("ChangeStatus: transition %s -> %s is not allowed for appointment id=%d",
			previous, newStatus, appointmentID)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, previous, newStatus)
	}

	// 5. Условное обновление: статус не должен был измениться с момента чтения
	// Запись, которая начинает занимать слот (оплаченная предоплата), проходит проверку вместимости
	// под блокировкой мастера, как при бронировании
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if !previous.OccupiesSlot() && newStatus.OccupiesSlot() {
			if err := s.ensureCapacity(txCtx, appointment); err != nil {
				return err
			}
		}
		return s.appointmentRepo.UpdateStatusIfCurrent(txCtx, businessID, appointmentID, previous, newStatus)
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotUnavailable):
			s.logger.Warn("ChangeStatus: slot %s %s is full for appointment id=%d",
				appointment.Date.Format(domain.DateFormat), appointment.Time, appointmentID)
			return nil, ErrSlotUnavailable
		case errors.Is(err, ErrInternal):
			s.logger.Error("ChangeStatus: capacity check failed for appointment id=%d: %v", appointmentID, err)
			return nil, err
		case errors.Is(err, appointmentRepo.ErrStatusConflict):
			s.logger.Warn("ChangeStatus: appointment id=%d status changed concurrently", appointmentID)
			return nil, ErrStatusConflict
		case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
			return nil, ErrAppointmentNotFound
		default:
			s.logger.Error("ChangeStatus: repository error for appointment id=%d: %v", appointmentID, err)
			return nil, fmt.Errorf("%w: ChangeStatus - repository error: %w", ErrInternal, err)
		}
	}

	appointment.Status = newStatus
	appointment.UpdatedAt = s.now()
	s.metrics.ObserveTransition(string(previous), string(newStatus))

	// 6. Уведомление отправляется в фоне и не влияет на результат
	s.notifier.Notify(ctx, notifier.Event{
		EventType:      notifier.EventAppointmentStatusChanged,
		AppointmentID:  appointment.ID,
		BusinessID:     appointment.BusinessID,
		ClientID:       appointment.ClientID,
		ProfessionalID: appointment.ProfessionalID,
		ServiceID:      appointment.ServiceID,
		Date:           appointment.Date.Format(domain.DateFormat),
		Time:           appointment.Time.String(),
		Status:         string(newStatus),
		PreviousStatus: string(previous),
	})

	resp := &models.ChangeStatusResponse{
		Appointment: *models.FromDomainAppointment(appointment),
		Changed:     true,
	}

	// 7. При неявке считаем неявки клиента и предлагаем блокировку
	if newStatus == domain.StatusNoShow {
		count, err := s.appointmentRepo.CountNoShows(ctx, businessID, appointment.ClientID)
		if err != nil {
			// Статус уже изменен, поэтому ошибка подсчета только логируется
			s.logger.Error("ChangeStatus: failed to count no-shows for client id=%d: %v", appointment.ClientID, err)
		} else {
			resp.NoShowCount = &count
			resp.BlockSuggested = domain.ShouldSuggestBlock(count, s.noShowThreshold)
		}
	}

	s.logger.Info("ChangeStatus: appointment id=%d moved %s -> %s", appointmentID, previous, newStatus)
	return resp, nil
}

// ensureCapacity блокирует мастера и проверяет, что в слоте записи есть свободное место
func (s *Service) ensureCapacity(ctx context.Context, appointment *domain.Appointment) error {
	professional, err := s.professionalRepo.GetProfessionalForUpdate(ctx, appointment.BusinessID, appointment.ProfessionalID)
	if err != nil {
		return fmt.Errorf("%w: ensureCapacity - lock professional: %w", ErrInternal, err)
	}

	occupancy, err := s.appointmentRepo.CountOccupancy(ctx, appointment.ProfessionalID, appointment.Date)
	if err != nil {
		return fmt.Errorf("%w: ensureCapacity - count occupancy: %w", ErrInternal, err)
	}

	if !scheduling.HasCapacity(professional, occupancy.At(appointment.Time)) {
		return ErrSlotUnavailable
	}
	return nil
}

// ExpireStalePendingPayment отменяет записи, ожидающие предоплату дольше ttl
// Повторный запуск безопасен: уже отмененные записи не затрагиваются
func (s *Service) ExpireStalePendingPayment(ctx context.Context, ttl time.Duration) (int, error) {
	if ttl <= 0 {
		return 0, fmt.Errorf("%w: ttl must be positive", ErrInvalidInput)
	}

	createdBefore := s.now().Add(-ttl)
	s.logger.Info("ExpireStalePendingPayment: cancelling pending_payment created before %s", createdBefore.Format(time.RFC3339))

	ids, err := s.appointmentRepo.CancelStalePendingPayment(ctx, createdBefore)
	if err != nil {
		s.logger.Error("ExpireStalePendingPayment: repository error: %v", err)
		return 0, fmt.Errorf("%w: ExpireStalePendingPayment - repository error: %w", ErrInternal, err)
	}

	for _, id := range ids {
		s.metrics.ObserveTransition(string(domain.StatusPendingPayment), string(domain.StatusCancelled))
		s.notifier.Notify(ctx, notifier.Event{
			EventType:      notifier.EventAppointmentExpired,
			AppointmentID:  id,
			Status:         string(domain.StatusCancelled),
			PreviousStatus: string(domain.StatusPendingPayment),
		})
	}

	s.logger.Info("ExpireStalePendingPayment: cancelled %d appointments", len(ids))
	return len(ids), nil
}
