package get_availability

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Request модель запроса на получение доступности техника
type Request struct {
	TechnicianID int64 // ID техника (из аутентификации)
}

// Response модель ответа: слоты техника, сгруппированные по датам
type Response struct {
	TechnicianID int64
	Days         []Day // Отсортированы по дате по возрастанию
}

// Day слоты одной даты с покомпонентными счётчиками
type Day struct {
	Date         time.Time
	Slots        []Slot // Отсортированы по времени начала по возрастанию
	OpenCount    int
	BookedCount  int
	BlockedCount int
}

// Slot модель слота в выдаче доступности
type Slot struct {
	ID             int64
	Date           time.Time
	StartTime      types.TimeString
	EndTime        types.TimeString
	Status         string
	AllowedActions []string // Действия, доступные технику в текущем статусе
}

// fromDomainSlot конвертирует domain модель в модель выдачи
func fromDomainSlot(s *domain.Slot) Slot {
	actions := domain.AllowedActions(s.Status)
	actionStrings := make([]string, len(actions))
	for i, a := range actions {
		actionStrings[i] = string(a)
	}

	return Slot{
		ID:             s.ID,
		Date:           s.Date,
		StartTime:      s.StartTime,
		EndTime:        s.EndTime,
		Status:         string(s.Status),
		AllowedActions: actionStrings,
	}
}
