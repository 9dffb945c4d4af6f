package create_appointment

import (
	"errors"
	"net/http"

	"github.com/contatodubela-dotcom/cleverya-booking/internal/api/handlers"
	createAppointment "github.com/contatodubela-dotcom/cleverya-booking/internal/usecase/create_appointment"
)

const (
	msgInvalidBusinessID    = "некорректный ID бизнеса"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime          = "некорректный формат времени, ожидается HH:MM"
	msgInvalidData          = "некорректные данные записи"
	msgServiceNotFound      = "услуга не найдена"
	msgProfessionalNotFound = "мастер не найден"
	msgDateTooFar           = "дата записи слишком далеко в будущем"
	msgClientBlocked        = "онлайн-запись недоступна, пожалуйста, свяжитесь с заведением напрямую"
	msgSlotUnavailable      = "выбранное время недоступно, выберите другой слот"
	msgTryAgain             = "не удалось создать запись, попробуйте еще раз"
)

var (
	errInvalidDate = errors.New("invalid date format")
	errInvalidTime = errors.New("invalid time format")
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/businesses/{businessId}/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/appointments - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /businesses/{id}/appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(businessID)
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/appointments - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrValidation):
			h.logger.Warn("POST /businesses/{id}/appointments - Invalid data: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /businesses/{id}/appointments - Service not found: business_id=%d, service_id=%d",
				businessID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrProfessionalNotFound):
			h.logger.Warn("POST /businesses/{id}/appointments - Professional not found: business_id=%d, professional_id=%d",
				businessID, req.ProfessionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, createAppointment.ErrDateTooFarInFuture):
			h.logger.Warn("POST /businesses/{id}/appointments - Date too far in future: business_id=%d, date=%s",
				businessID, req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createAppointment.ErrClientBlocked):
			h.logger.Warn("POST /businesses/{id}/appointments - Client blocked: business_id=%d", businessID)
			handlers.RespondForbidden(w, msgClientBlocked)

		case errors.Is(err, createAppointment.ErrSlotUnavailable):
			h.logger.Warn("POST /businesses/{id}/appointments - Slot unavailable: business_id=%d, professional_id=%d, date=%s, time=%s",
				businessID, req.ProfessionalID, req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, createAppointment.ErrStorageFailure):
			h.logger.Error("POST /businesses/{id}/appointments - Storage failure: business_id=%d, error=%v", businessID, err)
			handlers.RespondServiceUnavailable(w, msgTryAgain)

		default:
			h.logger.Error("POST /businesses/{id}/appointments - Failed to create appointment: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /businesses/{id}/appointments - Appointment created: appointment_id=%d, business_id=%d, status=%s",
		result.ID, businessID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
