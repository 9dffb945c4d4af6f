package get_availability

import (
	"net/http"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/api/handlers"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/tenancy"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgNoBusiness        = "бизнес не определен"
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

// Handle GET /api/v1/businesses/{businessId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/availability - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	h.respond(w, r, "GET /businesses/{id}/availability", businessID)
}

// HandleOwner GET /api/v1/availability
func (h *Handler) HandleOwner(w http.ResponseWriter, r *http.Request) {
	businessID, ok := tenancy.BusinessIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /availability - Business is not resolved")
		handlers.RespondUnauthorized(w, msgNoBusiness)
		return
	}

	h.respond(w, r, "GET /availability", businessID)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, route string, businessID int64) {
	result, err := h.service.GetWeek(r.Context(), businessID)
	if err != nil {
		h.logger.Error("%s - Failed to get availability: business_id=%d, error=%v", route, businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("%s - Availability retrieved: business_id=%d", route, businessID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
