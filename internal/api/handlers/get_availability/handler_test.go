package get_availability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/service/availability/models"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/tenancy"
	"github.com/contatodubela-dotcom/cleverya-booking/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) GetWeek(ctx context.Context, businessID int64) (*models.WeekResponse, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WeekResponse), args.Error(1)
}

func TestHandle(t *testing.T) {
	svc := new(mockService)
	h := NewHandler(svc, logger.Nop())
	svc.On("GetWeek", mock.Anything, int64(4)).Return(&models.WeekResponse{BusinessID: 4}, nil)

	r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"businessId": "4"})
	w := httptest.NewRecorder()
	h.Handle(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"businessId":4`)

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r = r.WithContext(tenancy.WithBusinessID(r.Context(), 4))
	w = httptest.NewRecorder()
	h.HandleOwner(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandle_Errors(t *testing.T) {
	svc := new(mockService)
	h := NewHandler(svc, logger.Nop())
	svc.On("GetWeek", mock.Anything, int64(4)).Return(nil, errors.New("db down"))

	r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"businessId": "0"})
	w := httptest.NewRecorder()
	h.Handle(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	r = mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"businessId": "4"})
	w = httptest.NewRecorder()
	h.Handle(w, r)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
