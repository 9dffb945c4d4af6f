package get_catalog

import (
	"errors"
	"net/http"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/api/handlers"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/service/catalog"
	"github.com/contatodubela-dotcom/cleverya-booking/internal/tenancy"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgNoBusiness        = "бизнес не определен"
	msgInvalidData       = "некорректные данные запроса"
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

// Handle GET /api/v1/businesses/{businessId}/catalog
// Публичный каталог: только активные мастера и услуги
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/catalog - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	h.respond(w, r, "GET /businesses/{id}/catalog", businessID, true)
}

// HandleOwner GET /api/v1/catalog
// Каталог владельца, включая неактивные записи
func (h *Handler) HandleOwner(w http.ResponseWriter, r *http.Request) {
	businessID, ok := tenancy.BusinessIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /catalog - Business is not resolved")
		handlers.RespondUnauthorized(w, msgNoBusiness)
		return
	}

	h.respond(w, r, "GET /catalog", businessID, false)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, route string, businessID int64, activeOnly bool) {
	result, err := h.service.GetCatalog(r.Context(), businessID, activeOnly)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidInput) {
			h.logger.Warn("%s - Invalid input: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidData)
			return
		}
		h.logger.Error("%s - Failed to get catalog: business_id=%d, error=%v", route, businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("%s - Catalog retrieved: business_id=%d, professionals=%d, services=%d",
		route, businessID, len(result.Professionals), len(result.Services))
	handlers.RespondJSON(w, http.StatusOK, result)
}
