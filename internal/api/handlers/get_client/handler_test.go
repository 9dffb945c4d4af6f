package get_client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/service/clients"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/service/clients/models"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/tenancy"
	"github.com/contatodubela-dotcom/cleverya-booking/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) GetSummary(ctx context.Context, businessID, clientID int64) (*models.ClientSummaryResponse, error) {
	args := m.Called(ctx, businessID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ClientSummaryResponse), args.Error(1)
}

func ownerRequest(id string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/clients/"+id, nil)
	r = mux.SetURLVars(r, map[string]string{"clientId": id})
	return r.WithContext(tenancy.WithBusinessID(r.Context(), 1))
}

func TestHandle(t *testing.T) {
	svc := new(mockService)
	h := NewHandler(svc, logger.Nop())
	svc.On("GetSummary", mock.Anything, int64(1), int64(12)).Return(&models.ClientSummaryResponse{
		Client:         models.ClientResponse{ID: 12, Name: "Ana", Phone: "5511999990000"},
		NoShowCount:    3,
		BlockSuggested: true,
	}, nil)

	w := httptest.NewRecorder()
	h.Handle(w, ownerRequest("12"))

	require.Equal(t, http.StatusOK, w.Code)
	var resp models.ClientSummaryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.NoShowCount)
	assert.True(t, resp.BlockSuggested)
	assert.False(t, resp.Blocked)
}

func TestHandle_Errors(t *testing.T) {
	svc := new(mockService)
	h := NewHandler(svc, logger.Nop())
	svc.On("GetSummary", mock.Anything, int64(1), int64(12)).Return(nil, clients.ErrClientNotFound).Once()
	svc.On("GetSummary", mock.Anything, int64(1), int64(12)).Return(nil, errors.New("db down")).Once()

	w := httptest.NewRecorder()
	h.Handle(w, ownerRequest("12"))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	h.Handle(w, ownerRequest("12"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = httptest.NewRecorder()
	h.Handle(w, ownerRequest("0"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
