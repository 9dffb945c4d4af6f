package create_service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/service/catalog"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/service/catalog/models"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/tenancy"
	"github.com/contatodubela-dotcom/cleverya-booking/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) CreateService(ctx context.Context, businessID int64, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	args := m.Called(ctx, businessID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServiceResponse), args.Error(1)
}

func ownerRequest(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/services", strings.NewReader(body))
	return r.WithContext(tenancy.WithBusinessID(r.Context(), 2))
}

func TestHandle(t *testing.T) {
	svc := new(mockService)
	h := NewHandler(svc, logger.Nop())
	svc.On("CreateService", mock.Anything, int64(2), mock.MatchedBy(func(req *models.CreateServiceRequest) bool {
		return req.Name == "Corte" && req.DurationMinutes == 45 && req.RequiresDeposit
	})).Return(&models.ServiceResponse{ID: 4, Name: "Corte", DurationMinutes: 45, Price: 50, RequiresDeposit: true, IsActive: true}, nil)

	w := httptest.NewRecorder()
	h.Handle(w, ownerRequest(`{"name":"Corte","durationMinutes":45,"price":50,"category":"hair","requiresDeposit":true}`))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"requiresDeposit":true`)
	svc.AssertExpectations(t)
}

func TestHandle_InvalidData(t *testing.T) {
	svc := new(mockService)
	h := NewHandler(svc, logger.Nop())
	svc.On("CreateService", mock.Anything, int64(2), mock.Anything).
		Return(nil, fmt.Errorf("%w: duration must be positive", catalog.ErrInvalidInput))

	w := httptest.NewRecorder()
	h.Handle(w, ownerRequest(`{"name":"Corte","durationMinutes":0}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
