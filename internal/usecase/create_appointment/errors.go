package create_appointment

import "errors"

var (
	// ErrValidation возвращается при некорректных входных данных (до обращения к БД)
	ErrValidation = errors.New("create_appointment: invalid input data")

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrProfessionalNotFound возвращается, когда мастер не найден или неактивен
	ErrProfessionalNotFound = errors.New("create_appointment: professional not found")

	// ErrDateTooFarInFuture возвращается, когда дата за пределами горизонта бронирования
	ErrDateTooFarInFuture = errors.New("create_appointment: date is too far in the future")

	// ErrClientBlocked возвращается, когда клиент заблокирован бизнесом
	ErrClientBlocked = errors.New("create_appointment: client is blocked")

	// ErrSlotUnavailable возвращается, когда слот вне расписания, в прошлом или заполнен
	ErrSlotUnavailable = errors.New("create_appointment: slot is not available")

	// ErrStorageFailure возвращается при ошибках хранилища, запрос можно отправить повторно
	ErrStorageFailure = errors.New("create_appointment: storage failure")
)
