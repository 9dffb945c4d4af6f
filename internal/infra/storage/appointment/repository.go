package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/domain"
	"github.com/contatodubela-dotcom/cleverya-booking/pkg/dbmetrics"
	"github.com/contatodubela-dotcom/cleverya-booking/pkg/psqlbuilder"
	"github.com/contatodubela-dotcom/cleverya-booking/pkg/types"
)

var columns = []string{
	"id",
	"business_id",
	"client_id",
	"professional_id",
	"service_id",
	"appointment_date",
	"appointment_time",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"business_id",
			"client_id",
			"professional_id",
			"service_id",
			"appointment_date",
			"appointment_time",
			"status",
		).
		Values(
			appointment.BusinessID,
			appointment.ClientID,
			appointment.ProfessionalID,
			appointment.ServiceID,
			appointment.Date,
			appointment.Time,
			appointment.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&appointment.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	return appointment, nil
}

// GetByID получает запись по ID в рамках бизнеса
func (r *Repository) GetByID(ctx context.Context, businessID, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("appointments").
		Where(squirrel.Eq{"id": id, "business_id": businessID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	appointment, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %w", ErrScanRow, err)
	}

	return appointment, nil
}

// ListWithFilter получает записи бизнеса, отсортированные по дате и времени
// Без явного статуса pending_payment не возвращается
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("appointments").
		Where(squirrel.Eq{"business_id": filter.BusinessID})

	if filter.ProfessionalID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"professional_id": *filter.ProfessionalID})
	}
	if filter.ClientID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"client_id": *filter.ClientID})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"appointment_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"appointment_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": domain.StatusStrings(domain.DashboardStatuses)})
	}

	query, args, err := selectBuilder.OrderBy("appointment_date ASC", "appointment_time ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListWithFilter - scan appointment: %w", ErrScanRow, err)
		}
		appointments = append(appointments, appointment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - rows iteration: %w", ErrScanRow, err)
	}

	return appointments, nil
}

// CountOccupancy считает записи pending/confirmed мастера на дату, сгруппированные по времени
// Каждый вызов читает свежие данные из БД
func (r *Repository) CountOccupancy(ctx context.Context, professionalID int64, date time.Time) (domain.Occupancy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("appointment_time", "COUNT(*)").
		From("appointments").
		Where(squirrel.Eq{
			"professional_id":  professionalID,
			"appointment_date": date,
			"status":           domain.StatusStrings(domain.OccupyingStatuses),
		}).
		GroupBy("appointment_time").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountOccupancy - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountOccupancy - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	occupancy := make(domain.Occupancy)
	for rows.Next() {
		var slot types.TimeString
		var count int
		if err := rows.Scan(&slot, &count); err != nil {
			return nil, fmt.Errorf("%w: CountOccupancy - scan row: %w", ErrScanRow, err)
		}
		occupancy[slot] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountOccupancy - rows iteration: %w", ErrScanRow, err)
	}

	return occupancy, nil
}

// UpdateStatusIfCurrent меняет статус, только если текущий статус равен from
// Возвращает ErrStatusConflict, если запись за это время изменилась
func (r *Repository) UpdateStatusIfCurrent(ctx context.Context, businessID, id int64, from, to domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", string(to)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "business_id": businessID, "status": string(from)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusIfCurrent - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusIfCurrent - execute update: %w", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusIfCurrent - rows affected: %w", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrStatusConflict
	}

	return nil
}

// CountNoShows считает неявки клиента в бизнесе
func (r *Repository) CountNoShows(ctx context.Context, businessID, clientID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("appointments").
		Where(squirrel.Eq{
			"business_id": businessID,
			"client_id":   clientID,
			"status":      string(domain.StatusNoShow),
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountNoShows - build select query: %w", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountNoShows - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// CancelStalePendingPayment отменяет записи pending_payment, созданные раньше createdBefore
// Возвращает ID отмененных записей; повторный вызов безопасен
func (r *Repository) CancelStalePendingPayment(ctx context.Context, createdBefore time.Time) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", string(domain.StatusCancelled)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": string(domain.StatusPendingPayment)}).
		Where(squirrel.Lt{"created_at": createdBefore}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CancelStalePendingPayment - build update query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CancelStalePendingPayment - execute update: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: CancelStalePendingPayment - scan id: %w", ErrScanRow, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CancelStalePendingPayment - rows iteration: %w", ErrScanRow, err)
	}

	return ids, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var a domain.Appointment
	var status string
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&a.ID,
		&a.BusinessID,
		&a.ClientID,
		&a.ProfessionalID,
		&a.ServiceID,
		&a.Date,
		&a.Time,
		&status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.Status = domain.AppointmentStatus(status)
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}
