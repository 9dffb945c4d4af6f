package get_available_days

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	getAvailableDays "github.com/contatodubela-dotcom/cleverya-booking/internal/usecase/get_available_days"
	"github.com/contatodubela-dotcom/cleverya-booking/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *getAvailableDays.Request) (*getAvailableDays.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*getAvailableDays.Response), args.Error(1)
}

func doRequest(h *Handler, query string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/businesses/1/professionals/2/available-days?"+query, nil)
	r = mux.SetURLVars(r, map[string]string{"businessId": "1", "professionalId": "2"})
	w := httptest.NewRecorder()
	h.Handle(w, r)
	return w
}

func TestHandle_Days(t *testing.T) {
	uc := new(mockUseCase)
	h := NewHandler(uc, logger.Nop())
	from := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *getAvailableDays.Request) bool {
		return req.BusinessID == 1 && req.ProfessionalID == 2 && req.Days != nil && *req.Days == 7
	})).Return(&getAvailableDays.Response{
		BusinessID:     1,
		ProfessionalID: 2,
		From:           from,
		Days:           []time.Time{from, from.AddDate(0, 0, 2)},
	}, nil)

	w := doRequest(h, "days=7")

	require.Equal(t, http.StatusOK, w.Code)
	var resp AvailableDaysResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"2025-06-02", "2025-06-04"}, resp.Days)
	uc.AssertExpectations(t)
}

func TestHandle_DefaultWindow(t *testing.T) {
	uc := new(mockUseCase)
	h := NewHandler(uc, logger.Nop())
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *getAvailableDays.Request) bool {
		return req.Days == nil
	})).Return(&getAvailableDays.Response{}, nil)

	w := doRequest(h, "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"days":[]`)
}

func TestHandle_Errors(t *testing.T) {
	uc := new(mockUseCase)
	h := NewHandler(uc, logger.Nop())
	w := doRequest(h, "days=abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)

	uc = new(mockUseCase)
	h = NewHandler(uc, logger.Nop())
	uc.On("Execute", mock.Anything, mock.Anything).Return(nil, getAvailableDays.ErrInvalidInput)
	assert.Equal(t, http.StatusBadRequest, doRequest(h, "days=500").Code)

	uc = new(mockUseCase)
	h = NewHandler(uc, logger.Nop())
	uc.On("Execute", mock.Anything, mock.Anything).Return(nil, getAvailableDays.ErrProfessionalNotFound)
	assert.Equal(t, http.StatusNotFound, doRequest(h, "").Code)

	uc = new(mockUseCase)
	h = NewHandler(uc, logger.Nop())
	uc.On("Execute", mock.Anything, mock.Anything).Return(nil, getAvailableDays.ErrInternal)
	assert.Equal(t, http.StatusInternalServerError, doRequest(h, "").Code)
}
