package get_available_days

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/domain"
	catalogRepo "github.com/contatodubela-dotcom/cleverya-booking/internal/infra/storage/catalog"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/scheduling"
	"github.com/contatodubela-dotcom/cleverya-booking/pkg/logger"
	"github.com/contatodubela-dotcom/cleverya-booking/pkg/ptr"
)

var monday = time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

type mockCatalog struct{ mock.Mock }

func (m *mockCatalog) GetProfessional(ctx context.Context, businessID, id int64) (*domain.Professional, error) {
	args := m.Called(ctx, businessID, id)
	p, _ := args.Get(0).(*domain.Professional)
	return p, args.Error(1)
}

type mockAvailability struct{ mock.Mock }

func (m *mockAvailability) ListByBusiness(ctx context.Context, businessID int64) ([]*domain.AvailabilityWindow, error) {
	args := m.Called(ctx, businessID)
	w, _ := args.Get(0).([]*domain.AvailabilityWindow)
	return w, args.Error(1)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func newUseCase(catalog *mockCatalog, availability *mockAvailability) *UseCase {
	uc := NewUseCase(catalog, availability, scheduling.DefaultSettings(), logger.Nop())
	uc.timeProvider = fixedClock{now: monday.Add(15 * time.Hour)}
	return uc
}

func TestExecute_OnlyOpenWeekdays(t *testing.T) {
	catalog := &mockCatalog{}
	availability := &mockAvailability{}
	catalog.On("GetProfessional", mock.Anything, int64(1), int64(20)).
		Return(&domain.Professional{ID: 20, Capacity: 1, IsActive: true}, nil)
	availability.On("ListByBusiness", mock.Anything, int64(1)).Return([]*domain.AvailabilityWindow{
		{DayOfWeek: int(time.Monday), StartTime: "09:00", EndTime: "18:00", IsActive: true},
		{DayOfWeek: int(time.Wednesday), StartTime: "09:00", EndTime: "18:00", IsActive: true},
		{DayOfWeek: int(time.Friday), IsActive: false},
	}, nil)

	resp, err := newUseCase(catalog, availability).Execute(context.Background(), &Request{BusinessID: 1, ProfessionalID: 20})
	require.NoError(t, err)

	assert.Equal(t, monday, resp.From)
	assert.Equal(t, []time.Time{
		monday,
		monday.AddDate(0, 0, 2),
		monday.AddDate(0, 0, 7),
		monday.AddDate(0, 0, 9),
	}, resp.Days)
}

func TestExecute_CustomWindowLength(t *testing.T) {
	catalog := &mockCatalog{}
	availability := &mockAvailability{}
	catalog.On("GetProfessional", mock.Anything, int64(1), int64(20)).
		Return(&domain.Professional{ID: 20, Capacity: 1, IsActive: true}, nil)
	availability.On("ListByBusiness", mock.Anything, int64(1)).Return([]*domain.AvailabilityWindow{
		{DayOfWeek: int(time.Tuesday), StartTime: "09:00", EndTime: "18:00", IsActive: true},
	}, nil)

	resp, err := newUseCase(catalog, availability).Execute(context.Background(), &Request{BusinessID: 1, ProfessionalID: 20, Days: ptr.Ptr(1)})
	require.NoError(t, err)
	assert.Empty(t, resp.Days)
}

func TestExecute_Errors(t *testing.T) {
	t.Run("days out of range", func(t *testing.T) {
		_, err := newUseCase(&mockCatalog{}, &mockAvailability{}).
			Execute(context.Background(), &Request{BusinessID: 1, ProfessionalID: 20, Days: ptr.Ptr(91)})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("professional not found", func(t *testing.T) {
		catalog := &mockCatalog{}
		catalog.On("GetProfessional", mock.Anything, int64(1), int64(20)).Return(nil, catalogRepo.ErrProfessionalNotFound)
		_, err := newUseCase(catalog, &mockAvailability{}).
			Execute(context.Background(), &Request{BusinessID: 1, ProfessionalID: 20})
		assert.ErrorIs(t, err, ErrProfessionalNotFound)
	})

	t.Run("storage failure", func(t *testing.T) {
		catalog := &mockCatalog{}
		availability := &mockAvailability{}
		catalog.On("GetProfessional", mock.Anything, int64(1), int64(20)).
			Return(&domain.Professional{ID: 20, Capacity: 1, IsActive: true}, nil)
		availability.On("ListByBusiness", mock.Anything, int64(1)).Return(nil, errors.New("db down"))
		_, err := newUseCase(catalog, availability).
			Execute(context.Background(), &Request{BusinessID: 1, ProfessionalID: 20})
		assert.ErrorIs(t, err, ErrInternal)
	})
}
