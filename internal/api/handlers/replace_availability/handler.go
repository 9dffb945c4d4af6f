package replace_availability

import (
	"errors"
	"net/http"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/api/handlers"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/service/availability"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/service/availability/models"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/tenancy"
)

const (
	msgNoBusiness         = "бизнес не определен"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSchedule    = "некорректное расписание: проверьте дни недели и время начала и окончания"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, ok := tenancy.BusinessIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("PUT /availability - Business is not resolved")
		handlers.RespondUnauthorized(w, msgNoBusiness)
		return
	}

	var req models.ReplaceWeekRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.ReplaceWeek(r.Context(), businessID, &req)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidInput) {
			h.logger.Warn("PUT /availability - Invalid schedule: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)
			return
		}
		h.logger.Error("PUT /availability - Failed to replace schedule: business_id=%d, error=%v", businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /availability - Schedule replaced: business_id=%d", businessID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
