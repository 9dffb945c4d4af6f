package list_blocked_clients

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/service/clients/models"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/tenancy"
	"github.com/contatodubela-dotcom/cleverya-booking/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) ListBlocked(ctx context.Context, businessID int64) (*models.BlockedClientListResponse, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BlockedClientListResponse), args.Error(1)
}

func ownerRequest() *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/clients/blocked", nil)
	return r.WithContext(tenancy.WithBusinessID(r.Context(), 1))
}

func TestHandle(t *testing.T) {
	svc := new(mockService)
	h := NewHandler(svc, logger.Nop())
	svc.On("ListBlocked", mock.Anything, int64(1)).Return(&models.BlockedClientListResponse{
		Clients: []models.BlockedClientResponse{{ClientID: 12, NoShowCount: 3}},
	}, nil).Once()
	svc.On("ListBlocked", mock.Anything, int64(1)).Return(nil, errors.New("db down")).Once()

	w := httptest.NewRecorder()
	h.Handle(w, ownerRequest())
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"clientId":12`)

	w = httptest.NewRecorder()
	h.Handle(w, ownerRequest())
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/clients/blocked", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
