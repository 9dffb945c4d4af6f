package create_professional

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
	msgInvalidData        = "некорректные данные мастера: имя обязательно, вместимость не меньше 1"
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

// Handle POST /api/v1/professionals
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, ok := tenancy.BusinessIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /professionals - Business is not resolved")
		handlers.RespondUnauthorized(w, msgNoBusiness)
		return
	}

	var req models.CreateProfessionalRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /professionals - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateProfessional(r.Context(), businessID, &req)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidInput) {
			h.logger.Warn("POST /professionals - Invalid data: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidData)
			return
		}
		h.logger.Error("POST /professionals - Failed to create professional: business_id=%d, error=%v", businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /professionals - Professional created: business_id=%d, professional_id=%d", businessID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
