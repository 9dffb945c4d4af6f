package availability

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/domain"
	"github.com/contatodubela-dotcom/cleverya-booking/pkg/types"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db), mock
}

func TestRepository_ListByBusiness(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`FROM availability_windows WHERE business_id = \$1 ORDER BY day_of_week ASC`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(1, 1, 1, "09:00:00", "18:00:00", true, nil).
			AddRow(2, 1, 2, "09:00:00", "12:00:00", false, nil))

	windows, err := repo.ListByBusiness(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, windows, 2)
	assert.Equal(t, types.TimeString("09:00"), windows[0].StartTime)
	assert.Equal(t, types.TimeString("18:00"), windows[0].EndTime)
	assert.False(t, windows[1].IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByDay(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newMock(t)

		mock.ExpectQuery(`FROM availability_windows WHERE business_id = \$1 AND day_of_week = \$2`).
			WithArgs(int64(1), 1).
			WillReturnRows(sqlmock.NewRows(columns).AddRow(1, 1, 1, "09:00:00", "10:00:00", true, nil))

		w, err := repo.GetByDay(context.Background(), 1, 1)
		require.NoError(t, err)
		assert.Equal(t, time.Monday, w.Weekday())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newMock(t)

		mock.ExpectQuery(`FROM availability_windows`).WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByDay(context.Background(), 1, 0)
		assert.ErrorIs(t, err, ErrWindowNotFound)
	})
}

func TestRepository_Upsert(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO availability_windows .+ ON CONFLICT \(business_id, day_of_week\) DO UPDATE`).
		WithArgs(int64(1), 3, "08:00", "17:00", true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "updated_at"}).AddRow(9, now))

	w, err := repo.Upsert(context.Background(), &domain.AvailabilityWindow{
		BusinessID: 1, DayOfWeek: 3, StartTime: "08:00", EndTime: "17:00", IsActive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), w.ID)
	assert.Equal(t, now, w.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
