package unblock_client

import (
	"net/http"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/api/handlers"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/tenancy"
)

const (
	msgNoBusiness      = "бизнес не определен"
	msgInvalidClientID = "некорректный ID клиента"
)

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

// Handle DELETE /api/v1/clients/{clientId}/block
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, ok := tenancy.BusinessIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("DELETE /clients/{id}/block - Business is not resolved")
		handlers.RespondUnauthorized(w, msgNoBusiness)
		return
	}

	clientID, err := handlers.PathInt64(r, "clientId")
	if err != nil {
		h.logger.Warn("DELETE /clients/{id}/block - Invalid client ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	if err := h.service.Unblock(r.Context(), businessID, clientID); err != nil {
		h.logger.Error("DELETE /clients/{id}/block - Failed to unblock client: client_id=%d, error=%v", clientID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /clients/{id}/block - Client unblocked: business_id=%d, client_id=%d", businessID, clientID)
	handlers.RespondNoContent(w)
}
