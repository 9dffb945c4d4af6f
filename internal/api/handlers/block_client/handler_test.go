package block_client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/service/clients"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/service/clients/models"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/tenancy"
	"github.com/contatodubela-dotcom/cleverya-booking/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Block(ctx context.Context, businessID, clientID int64, req *models.BlockClientRequest) (*models.BlockedClientResponse, error) {
	args := m.Called(ctx, businessID, clientID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BlockedClientResponse), args.Error(1)
}

func ownerRequest(id, body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/clients/"+id+"/block", strings.NewReader(body))
	r = mux.SetURLVars(r, map[string]string{"clientId": id})
	return r.WithContext(tenancy.WithBusinessID(r.Context(), 1))
}

func TestHandle_WithReason(t *testing.T) {
	svc := new(mockService)
	h := NewHandler(svc, logger.Nop())
	svc.On("Block", mock.Anything, int64(1), int64(12), &models.BlockClientRequest{Reason: "3 faltas"}).
		Return(&models.BlockedClientResponse{ClientID: 12, NoShowCount: 3, Reason: "3 faltas", BlockedAt: time.Now()}, nil)

	w := httptest.NewRecorder()
	h.Handle(w, ownerRequest("12", `{"reason":"3 faltas"}`))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"noShowCount":3`)
	svc.AssertExpectations(t)
}

func TestHandle_EmptyBody(t *testing.T) {
	svc := new(mockService)
	h := NewHandler(svc, logger.Nop())
	svc.On("Block", mock.Anything, int64(1), int64(12), &models.BlockClientRequest{}).
		Return(&models.BlockedClientResponse{ClientID: 12}, nil)

	w := httptest.NewRecorder()
	h.Handle(w, ownerRequest("12", ""))

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", clients.ErrClientNotFound, http.StatusNotFound},
		{"reason too long", clients.ErrInvalidInput, http.StatusBadRequest},
		{"internal", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			h := NewHandler(svc, logger.Nop())
			svc.On("Block", mock.Anything, int64(1), int64(12), mock.Anything).Return(nil, tt.err)

			w := httptest.NewRecorder()
			h.Handle(w, ownerRequest("12", `{"reason":"x"}`))

			assert.Equal(t, tt.status, w.Code)
		})
	}

	svc := new(mockService)
	h := NewHandler(svc, logger.Nop())
	w := httptest.NewRecorder()
	h.Handle(w, ownerRequest("12", `{"reason":`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Block", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
