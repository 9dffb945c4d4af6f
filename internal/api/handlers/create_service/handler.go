package create_service

import (
	"errors"
	"net/http"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/api/handlers"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/service/catalog"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/service/catalog/models"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/tenancy"
)

const (
	msgNoBusiness         = "бизнес не определен"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные услуги"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, ok := tenancy.BusinessIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /services - Business is not resolved")
		handlers.RespondUnauthorized(w, msgNoBusiness)
		return
	}

	var req models.CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateService(r.Context(), businessID, &req)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidInput) {
			h.logger.Warn("POST /services - Invalid data: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidData)
			return
		}
		h.logger.Error("POST /services - Failed to create service: business_id=%d, error=%v", businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /services - Service created: business_id=%d, service_id=%d", businessID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
