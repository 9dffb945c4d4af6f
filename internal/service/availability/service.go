package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/domain"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/service/availability/models"
)

// Service сервис недельного расписания бизнеса
type Service struct {
	availabilityRepo AvailabilityRepository
	txManager        TransactionManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(availabilityRepo AvailabilityRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// GetWeek получает расписание бизнеса на неделю
// Публичный метод - доступен всем
func (s *Service) GetWeek(ctx context.Context, businessID int64) (*models.WeekResponse, error) {
	s.logger.Info("GetWeek: business=%d", businessID)

	windows, err := s.availabilityRepo.ListByBusiness(ctx, businessID)
	if err != nil {
		s.logger.Error("GetWeek: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: GetWeek - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainCalendar(businessID, domain.NewWeeklyCalendar(windows)), nil
}

// ReplaceWeek заменяет расписание на все 7 дней в одной транзакции
// Все окна валидируются до записи; отсутствующие дни сохраняются неактивными
func (s *Service) ReplaceWeek(ctx context.Context, businessID int64, req *models.ReplaceWeekRequest) (*models.WeekResponse, error) {
	s.logger.Info("ReplaceWeek: business=%d, windows=%d", businessID, len(req.Windows))

	// 1. Валидируем окна и проверяем, что дни не повторяются
	calendar := make(domain.WeeklyCalendar, 7)
	for _, item := range req.Windows {
		w := item.ToDomainWindow(businessID)
		if err := w.Validate(); err != nil {
			s.logger.Warn("ReplaceWeek: invalid window for day=%d: %v", item.DayOfWeek, err)
			return nil, fmt.Errorf("%w: day %d: %w", ErrInvalidInput, item.DayOfWeek, err)
		}
		if _, dup := calendar[w.Weekday()]; dup {
			s.logger.Warn("ReplaceWeek: duplicate day=%d", item.DayOfWeek)
			return nil, fmt.Errorf("%w: day %d specified twice", ErrInvalidInput, item.DayOfWeek)
		}
		if !w.IsActive {
			// Время закрытого дня не хранится
			w.StartTime, w.EndTime = "", ""
		}
		calendar[w.Weekday()] = w
	}

	// 2. Дополняем неделю закрытыми днями
	for day := time.Sunday; day <= time.Saturday; day++ {
		if _, ok := calendar[day]; !ok {
			calendar[day] = &domain.AvailabilityWindow{BusinessID: businessID, DayOfWeek: int(day)}
		}
	}

	// 3. Сохраняем все дни в одной транзакции
	saved := make(domain.WeeklyCalendar, 7)
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		for day := time.Sunday; day <= time.Saturday; day++ {
			w, err := s.availabilityRepo.Upsert(txCtx, calendar[day])
			if err != nil {
				return err
			}
			saved[day] = w
		}
		return nil
	})
	if err != nil {
		s.logger.Error("ReplaceWeek: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: ReplaceWeek - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ReplaceWeek: successfully replaced week for business=%d", businessID)
	return models.FromDomainCalendar(businessID, saved), nil
}
