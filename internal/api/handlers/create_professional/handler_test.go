package create_professional

import (
	"context"
	"errors"
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

func (m *mockService) CreateProfessional(ctx context.Context, businessID int64, req *models.CreateProfessionalRequest) (*models.ProfessionalResponse, error) {
	args := m.Called(ctx, businessID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProfessionalResponse), args.Error(1)
}

func ownerRequest(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/professionals", strings.NewReader(body))
	return r.WithContext(tenancy.WithBusinessID(r.Context(), 2))
}

func TestHandle(t *testing.T) {
	svc := new(mockService)
	h := NewHandler(svc, logger.Nop())
	svc.On("CreateProfessional", mock.Anything, int64(2), mock.MatchedBy(func(req *models.CreateProfessionalRequest) bool {
		return req.Name == "Bia" && req.Capacity != nil && *req.Capacity == 2
	})).Return(&models.ProfessionalResponse{ID: 8, Name: "Bia", Capacity: 2, IsActive: true}, nil)

	w := httptest.NewRecorder()
	h.Handle(w, ownerRequest(`{"name":"Bia","capacity":2}`))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":8`)
	svc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	svc := new(mockService)
	h := NewHandler(svc, logger.Nop())
	svc.On("CreateProfessional", mock.Anything, int64(2), mock.Anything).
		Return(nil, fmt.Errorf("%w: capacity must be at least 1", catalog.ErrInvalidInput)).Once()
	svc.On("CreateProfessional", mock.Anything, int64(2), mock.Anything).
		Return(nil, errors.New("db down")).Once()

	w := httptest.NewRecorder()
	h.Handle(w, ownerRequest(`{"name":"Bia","capacity":0}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	h.Handle(w, ownerRequest(`{"name":"Bia"}`))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = httptest.NewRecorder()
	h.Handle(w, ownerRequest(`[]`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Bia"}`)))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
