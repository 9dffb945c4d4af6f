package block_client

import (
	"errors"
	"io"
	"net/http"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/api/handlers"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/service/clients"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/service/clients/models"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/tenancy"
)

const (
	msgNoBusiness         = "бизнес не определен"
	msgInvalidClientID    = "некорректный ID клиента"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidReason      = "причина блокировки слишком длинная"
	msgNotFound           = "клиент не найден"
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

// Handle POST /api/v1/clients/{clientId}/block
// Тело запроса опционально: {"reason": "..."}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, ok := tenancy.BusinessIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /clients/{id}/block - Business is not resolved")
		handlers.RespondUnauthorized(w, msgNoBusiness)
		return
	}

	clientID, err := handlers.PathInt64(r, "clientId")
	if err != nil {
		h.logger.Warn("POST /clients/{id}/block - Invalid client ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	var req models.BlockClientRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /clients/{id}/block - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Block(r.Context(), businessID, clientID, &req)
	if err != nil {
		switch {
		case errors.Is(err, clients.ErrClientNotFound):
			h.logger.Warn("POST /clients/{id}/block - Not found: business_id=%d, client_id=%d", businessID, clientID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, clients.ErrInvalidInput):
			h.logger.Warn("POST /clients/{id}/block - Invalid data: client_id=%d, error=%v", clientID, err)
			handlers.RespondBadRequest(w, msgInvalidReason)

		default:
			h.logger.Error("POST /clients/{id}/block - Failed to block client: client_id=%d, error=%v", clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /clients/{id}/block - Client blocked: business_id=%d, client_id=%d", businessID, clientID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
