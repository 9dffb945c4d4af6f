package deactivate_service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/service/catalog"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/tenancy"
	"github.com/contatodubela-dotcom/cleverya-booking/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) DeactivateService(ctx context.Context, businessID, id int64) error {
	return m.Called(ctx, businessID, id).Error(0)
}

func ownerRequest(id string) *http.Request {
	r := httptest.NewRequest(http.MethodDelete, "/api/v1/services/"+id, nil)
	r = mux.SetURLVars(r, map[string]string{"serviceId": id})
	return r.WithContext(tenancy.WithBusinessID(r.Context(), 2))
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"deactivated", nil, http.StatusNoContent},
		{"not found", catalog.ErrServiceNotFound, http.StatusNotFound},
		{"internal", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			h := NewHandler(svc, logger.Nop())
			svc.On("DeactivateService", mock.Anything, int64(2), int64(5)).Return(tt.err)

			w := httptest.NewRecorder()
			h.Handle(w, ownerRequest("5"))

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestHandle_InvalidID(t *testing.T) {
	svc := new(mockService)
	h := NewHandler(svc, logger.Nop())

	w := httptest.NewRecorder()
	h.Handle(w, ownerRequest("abc"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "DeactivateService", mock.Anything, mock.Anything, mock.Anything)
}
