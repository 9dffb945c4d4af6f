package list_blocked_clients

import (
	"net/http"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/api/handlers"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/tenancy"
)

const msgNoBusiness = "бизнес не определен"

type Handler struct {
	service ClientService
	logger  Logger
}

func NewHandler(service ClientService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/clients/blocked
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, ok := tenancy.BusinessIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /clients/blocked - Business is not resolved")
		handlers.RespondUnauthorized(w, msgNoBusiness)
		return
	}

	result, err := h.service.ListBlocked(r.Context(), businessID)
	if err != nil {
		h.logger.Error("GET /clients/blocked - Failed to list blocked clients: business_id=%d, error=%v", businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /clients/blocked - Blocked clients retrieved: business_id=%d, count=%d", businessID, len(result.Clients))
	handlers.RespondJSON(w, http.StatusOK, result)
}
