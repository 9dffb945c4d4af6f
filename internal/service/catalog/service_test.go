package catalog

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/domain"
	catalogRepo "github.com/contatodubela-dotcom/cleverya-booking/internal/infra/storage/catalog"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/service/catalog/models"
	"github.com/contatodubela-dotcom/cleverya-booking/pkg/logger"
	"github.com/contatodubela-dotcom/cleverya-booking/pkg/ptr"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) CreateProfessional(ctx context.Context, p *domain.Professional) (*domain.Professional, error) {
	args := m.Called(ctx, p)
	res, _ := args.Get(0).(*domain.Professional)
	return res, args.Error(1)
}

func (m *mockRepo) GetProfessionalForUpdate(ctx context.Context, businessID, id int64) (*domain.Professional, error) {
	args := m.Called(ctx, businessID, id)
	res, _ := args.Get(0).(*domain.Professional)
	return res, args.Error(1)
}

func (m *mockRepo) ListProfessionals(ctx context.Context, businessID int64, activeOnly bool) ([]*domain.Professional, error) {
	args := m.Called(ctx, businessID, activeOnly)
	res, _ := args.Get(0).([]*domain.Professional)
	return res, args.Error(1)
}

func (m *mockRepo) UpdateProfessional(ctx context.Context, p *domain.Professional) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockRepo) DeactivateProfessional(ctx context.Context, businessID, id int64) error {
	return m.Called(ctx, businessID, id).Error(0)
}

func (m *mockRepo) CreateService(ctx context.Context, s *domain.Service) (*domain.Service, error) {
	args := m.Called(ctx, s)
	res, _ := args.Get(0).(*domain.Service)
	return res, args.Error(1)
}

func (m *mockRepo) ListServices(ctx context.Context, businessID int64, activeOnly bool) ([]*domain.Service, error) {
	args := m.Called(ctx, businessID, activeOnly)
	res, _ := args.Get(0).([]*domain.Service)
	return res, args.Error(1)
}

func (m *mockRepo) DeactivateService(ctx context.Context, businessID, id int64) error {
	return m.Called(ctx, businessID, id).Error(0)
}

type inlineTx struct{ calls int }

func (tx *inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++
	return fn(ctx)
}

func newService(repo *mockRepo) (*Service, *inlineTx) {
	tx := &inlineTx{}
	return NewService(repo, tx, logger.Nop()), tx
}

func TestCreateProfessional_DefaultCapacity(t *testing.T) {
	repo := &mockRepo{}
	repo.On("CreateProfessional", mock.Anything, mock.MatchedBy(func(p *domain.Professional) bool {
		return p.BusinessID == 1 && p.Name == "Ana" && p.Capacity == 1 && p.IsActive
	})).Return(&domain.Professional{ID: 20, BusinessID: 1, Name: "Ana", Capacity: 1, IsActive: true}, nil)
	s, _ := newService(repo)

	resp, err := s.CreateProfessional(context.Background(), 1, &models.CreateProfessionalRequest{Name: " Ana "})
	require.NoError(t, err)
	assert.Equal(t, models.ProfessionalResponse{ID: 20, Name: "Ana", Capacity: 1, IsActive: true}, *resp)
}

func TestCreateProfessional_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  models.CreateProfessionalRequest
	}{
		{name: "blank name", req: models.CreateProfessionalRequest{Name: " "}},
		{name: "zero capacity", req: models.CreateProfessionalRequest{Name: "Ana", Capacity: ptr.Ptr(0)}},
		{name: "capacity above limit", req: models.CreateProfessionalRequest{Name: "Ana", Capacity: ptr.Ptr(101)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepo{}
			s, _ := newService(repo)
			_, err := s.CreateProfessional(context.Background(), 1, &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			repo.AssertNotCalled(t, "CreateProfessional", mock.Anything, mock.Anything)
		})
	}
}

func TestUpdateProfessional(t *testing.T) {
	repo := &mockRepo{}
	repo.On("GetProfessionalForUpdate", mock.Anything, int64(1), int64(20)).
		Return(&domain.Professional{ID: 20, BusinessID: 1, Name: "Ana", Capacity: 1, IsActive: true}, nil)
	repo.On("UpdateProfessional", mock.Anything, mock.MatchedBy(func(p *domain.Professional) bool {
		return p.Name == "Ana" && p.Capacity == 3
	})).Return(nil)
	s, tx := newService(repo)

	resp, err := s.UpdateProfessional(context.Background(), 1, 20, &models.UpdateProfessionalRequest{Capacity: ptr.Ptr(3)})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Capacity)
	assert.Equal(t, 1, tx.calls)
	repo.AssertExpectations(t)
}

func TestUpdateProfessional_Errors(t *testing.T) {
	t.Run("empty patch", func(t *testing.T) {
		s, tx := newService(&mockRepo{})
		_, err := s.UpdateProfessional(context.Background(), 1, 20, &models.UpdateProfessionalRequest{})
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Zero(t, tx.calls)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &mockRepo{}
		repo.On("GetProfessionalForUpdate", mock.Anything, int64(2), int64(20)).Return(nil, catalogRepo.ErrProfessionalNotFound)
		s, _ := newService(repo)
		_, err := s.UpdateProfessional(context.Background(), 2, 20, &models.UpdateProfessionalRequest{Name: ptr.Ptr("Bia")})
		assert.ErrorIs(t, err, ErrProfessionalNotFound)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := &mockRepo{}
		repo.On("GetProfessionalForUpdate", mock.Anything, int64(1), int64(20)).
			Return(&domain.Professional{ID: 20, BusinessID: 1, Name: "Ana", Capacity: 1}, nil)
		repo.On("UpdateProfessional", mock.Anything, mock.Anything).Return(errors.New("db down"))
		s, _ := newService(repo)
		_, err := s.UpdateProfessional(context.Background(), 1, 20, &models.UpdateProfessionalRequest{Name: ptr.Ptr("Bia")})
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestCreateService(t *testing.T) {
	repo := &mockRepo{}
	repo.On("CreateService", mock.Anything, mock.MatchedBy(func(s *domain.Service) bool {
		return s.Name == "Corte" && s.DurationMinutes == 30 && s.Price == 49.9 && s.RequiresDeposit && s.IsActive
	})).Return(&domain.Service{ID: 10, Name: "Corte", DurationMinutes: 30, Price: 49.9, RequiresDeposit: true, IsActive: true}, nil)
	s, _ := newService(repo)

	resp, err := s.CreateService(context.Background(), 1, &models.CreateServiceRequest{
		Name:            "Corte",
		DurationMinutes: 30,
		Price:           49.899,
		RequiresDeposit: true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.ID)
	repo.AssertExpectations(t)
}

func TestCreateService_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  models.CreateServiceRequest
	}{
		{name: "short duration", req: models.CreateServiceRequest{Name: "Corte", DurationMinutes: 4}},
		{name: "long duration", req: models.CreateServiceRequest{Name: "Corte", DurationMinutes: 481}},
		{name: "negative price", req: models.CreateServiceRequest{Name: "Corte", DurationMinutes: 30, Price: -1}},
		{name: "NaN price", req: models.CreateServiceRequest{Name: "Corte", DurationMinutes: 30, Price: math.NaN()}},
		{name: "price overflow", req: models.CreateServiceRequest{Name: "Corte", DurationMinutes: 30, Price: 1e9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newService(&mockRepo{})
			_, err := s.CreateService(context.Background(), 1, &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestDeactivate(t *testing.T) {
	repo := &mockRepo{}
	repo.On("DeactivateProfessional", mock.Anything, int64(1), int64(20)).Return(nil)
	repo.On("DeactivateProfessional", mock.Anything, int64(1), int64(21)).Return(catalogRepo.ErrProfessionalNotFound)
	repo.On("DeactivateService", mock.Anything, int64(1), int64(10)).Return(nil)
	repo.On("DeactivateService", mock.Anything, int64(1), int64(11)).Return(catalogRepo.ErrServiceNotFound)
	s, _ := newService(repo)

	assert.NoError(t, s.DeactivateProfessional(context.Background(), 1, 20))
	assert.ErrorIs(t, s.DeactivateProfessional(context.Background(), 1, 21), ErrProfessionalNotFound)
	assert.NoError(t, s.DeactivateService(context.Background(), 1, 10))
	assert.ErrorIs(t, s.DeactivateService(context.Background(), 1, 11), ErrServiceNotFound)
}

func TestGetCatalog(t *testing.T) {
	repo := &mockRepo{}
	repo.On("ListProfessionals", mock.Anything, int64(1), true).
		Return([]*domain.Professional{{ID: 20, Name: "Ana", Capacity: 2, IsActive: true}}, nil)
	repo.On("ListServices", mock.Anything, int64(1), true).Return([]*domain.Service{}, nil)
	s, _ := newService(repo)

	resp, err := s.GetCatalog(context.Background(), 1, true)
	require.NoError(t, err)
	assert.Len(t, resp.Professionals, 1)
	assert.NotNil(t, resp.Services)
	assert.Empty(t, resp.Services)
}
