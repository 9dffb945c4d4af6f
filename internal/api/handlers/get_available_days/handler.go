package get_available_days

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/api/handlers"
	getAvailableDays "github.com/contatodubela-dotcom/cleverya-booking/internal/usecase/get_available_days"
)

const (
	msgInvalidBusinessID     = "некорректный ID бизнеса"
	msgInvalidProfessionalID = "некорректный ID мастера"
	msgInvalidDays           = "некорректное количество дней"
	msgProfessionalNotFound  = "мастер не найден"
)

type Handler struct {
	useCase GetAvailableDaysUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableDaysUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/professionals/{professionalId}/available-days
// Query params: days (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/professionals/{id}/available-days - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	professionalID, err := handlers.PathInt64(r, "professionalId")
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/professionals/{id}/available-days - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	req := &getAvailableDays.Request{
		BusinessID:     businessID,
		ProfessionalID: professionalID,
	}
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil {
			h.logger.Warn("GET /businesses/{id}/professionals/{id}/available-days - Invalid days: %q", daysStr)
			handlers.RespondBadRequest(w, msgInvalidDays)
			return
		}
		req.Days = &days
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableDays.ErrInvalidInput):
			h.logger.Warn("GET /businesses/{id}/professionals/{id}/available-days - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDays)

		case errors.Is(err, getAvailableDays.ErrProfessionalNotFound):
			h.logger.Warn("GET /businesses/{id}/professionals/{id}/available-days - Professional not found: business_id=%d, professional_id=%d",
				businessID, professionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		default:
			h.logger.Error("GET /businesses/{id}/professionals/{id}/available-days - Failed to get days: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/professionals/{id}/available-days - Days retrieved: business_id=%d, professional_id=%d, days_count=%d",
		businessID, professionalID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
