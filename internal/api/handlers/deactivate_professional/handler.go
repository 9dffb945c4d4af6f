package deactivate_professional

import (
	"errors"
	"net/http"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/api/handlers"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/service/catalog"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/tenancy"
)

const (
	msgNoBusiness = "бизнес не определен"
	msgInvalidID  = "некорректный ID мастера"
	msgNotFound   = "мастер не найден"
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

// Handle DELETE /api/v1/professionals/{professionalId}
// Мастер не удаляется, а скрывается из каталога; существующие записи клиентов сохраняются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, ok := tenancy.BusinessIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("DELETE /professionals/{id} - Business is not resolved")
		handlers.RespondUnauthorized(w, msgNoBusiness)
		return
	}

	id, err := handlers.PathInt64(r, "professionalId")
	if err != nil {
		h.logger.Warn("DELETE /professionals/{id} - Invalid ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.DeactivateProfessional(r.Context(), businessID, id); err != nil {
		if errors.Is(err, catalog.ErrProfessionalNotFound) {
			h.logger.Warn("DELETE /professionals/{id} - Not found: business_id=%d, id=%d", businessID, id)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("DELETE /professionals/{id} - Failed to deactivate: business_id=%d, id=%d, error=%v", businessID, id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /professionals/{id} - Deactivated: business_id=%d, id=%d", businessID, id)
	handlers.RespondNoContent(w)
}
