package get_available_days

import "time"

// Request модель запроса на получение дней с открытым расписанием
type Request struct {
	BusinessID     int64
	ProfessionalID int64
	Days           *int // Длина окна в днях (по умолчанию из конфигурации)
}

// Response модель ответа со списком дат
type Response struct {
	BusinessID     int64
	ProfessionalID int64
	From           time.Time
	Days           []time.Time // По возрастанию, только дни с активным окном
}
