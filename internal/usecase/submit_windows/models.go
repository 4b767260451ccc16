package submit_windows

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Request модель запроса на публикацию рабочих окон
// Одно окно (StartTime, EndTime) применяется к каждой выбранной дате
type Request struct {
	TechnicianID int64            // ID техника (из аутентификации)
	Dates        []time.Time      // Выбранные даты (без времени)
	StartTime    types.TimeString // Начало окна (например, "09:00")
	EndTime      types.TimeString // Конец окна (например, "12:00")
}

// Response модель ответа с результатом публикации
type Response struct {
	Created    []Slot      // Созданные слоты
	Duplicates []Slot      // Слоты, пропущенные из-за совпадения идентичности
	Skipped    []time.Time // Даты, отклонённые политикой выбора дат
}

// Slot модель слота в ответе usecase
type Slot struct {
	ID           int64
	TechnicianID int64
	Date         time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	Status       string
}

// fromDomainSlot конвертирует domain модель в модель ответа
func fromDomainSlot(s *domain.Slot) Slot {
	return Slot{
		ID:           s.ID,
		TechnicianID: s.TechnicianID,
		Date:         s.Date,
		StartTime:    s.StartTime,
		EndTime:      s.EndTime,
		Status:       string(s.Status),
	}
}
