package create_appointment

import (
	"time"

	"github.com/contatodubela-dotcom/cleverya-booking/pkg/types"
)

// StateAdmitted итоговое состояние успешной попытки бронирования
const StateAdmitted = "admitted"

// Request модель запроса на создание записи
type Request struct {
	BusinessID     int64            // ID бизнеса (из пути)
	ServiceID      int64            // ID услуги
	ProfessionalID int64            // ID мастера
	Date           time.Time        // Дата записи (без времени)
	Time           types.TimeString // Время начала слота (например, "10:00")
	ClientName     string           // Имя клиента
	ClientPhone    string           // Телефон клиента в любом формате
}

// Response модель ответа с созданной записью
type Response struct {
	ID             int64
	BusinessID     int64
	ClientID       int64
	ProfessionalID int64
	ServiceID      int64
	Date           time.Time
	Time           types.TimeString
	Status         string
	State          string // admitted
	ClientCreated  bool   // клиент создан этой попыткой
	CreatedAt      time.Time
}
