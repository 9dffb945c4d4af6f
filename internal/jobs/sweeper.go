package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// StaleAppointmentExpirer отменяет неоплаченные записи старше ttl
type StaleAppointmentExpirer interface {
	ExpireStalePendingPayment(ctx context.Context, ttl time.Duration) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// PendingPaymentSweeper по расписанию отменяет записи, предоплата по которым так и не поступила
// Записи в pending_payment слот не занимают
type PendingPaymentSweeper struct {
	expirer StaleAppointmentExpirer
	ttl     time.Duration
	timeout time.Duration
	cron    *cron.Cron
	logger  Logger
}

// NewPendingPaymentSweeper создает задачу; schedule задается стандартным cron выражением
func NewPendingPaymentSweeper(expirer StaleAppointmentExpirer, schedule string, ttl time.Duration, logger Logger) (*PendingPaymentSweeper, error) {
	s := &PendingPaymentSweeper{
		expirer: expirer,
		ttl:     ttl,
		timeout: time.Minute,
		cron:    cron.New(),
		logger:  logger,
	}

	// Пропускаем запуск, если предыдущий еще не завершился
	job := cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).Then(cron.FuncJob(s.run))
	if _, err := s.cron.AddJob(schedule, job); err != nil {
		return nil, fmt.Errorf("jobs: invalid sweep schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Start запускает планировщик в фоне
func (s *PendingPaymentSweeper) Start() {
	s.cron.Start()
	s.logger.Info("PendingPaymentSweeper: started (ttl=%s)", s.ttl)
}

// Stop останавливает планировщик и ждет завершения текущего запуска
func (s *PendingPaymentSweeper) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("PendingPaymentSweeper: stopped")
}

// RunOnce выполняет один проход синхронно
func (s *PendingPaymentSweeper) RunOnce(ctx context.Context) (int, error) {
	return s.expirer.ExpireStalePendingPayment(ctx, s.ttl)
}

func (s *PendingPaymentSweeper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	n, err := s.RunOnce(ctx)
	if err != nil {
		s.logger.Error("PendingPaymentSweeper: sweep failed: %v", err)
		return
	}
	if n > 0 {
		s.logger.Info("PendingPaymentSweeper: cancelled %d stale pending_payment appointments", n)
	}
}
