package get_availability

import (
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	getAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
// Ключ карты - дата в формате DD-MM-YYYY
type AvailabilityResponse struct {
	TechnicianID int64                  `json:"technicianId"`
	Days         map[string]DayResponse `json:"days"`
}

// DayResponse слоты одной даты со счётчиками по статусам
type DayResponse struct {
	Slots        []SlotResponse `json:"slots"`
	OpenCount    int            `json:"openCount"`
	BookedCount  int            `json:"bookedCount"`
	BlockedCount int            `json:"blockedCount"`
}

// SlotResponse HTTP модель слота
type SlotResponse struct {
	ID             int64    `json:"id"`
	Date           string   `json:"date"`
	StartTime      string   `json:"startTime"`
	EndTime        string   `json:"endTime"`
	Status         string   `json:"status"`
	AllowedActions []string `json:"allowedActions"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	days := make(map[string]DayResponse, len(resp.Days))

	for _, day := range resp.Days {
		slots := make([]SlotResponse, len(day.Slots))
		for i, s := range day.Slots {
			slots[i] = SlotResponse{
				ID:             s.ID,
				Date:           s.Date.Format(domain.DateFormat),
				StartTime:      s.StartTime.String(),
				EndTime:        s.EndTime.String(),
				Status:         s.Status,
				AllowedActions: s.AllowedActions,
			}
		}

		days[day.Date.Format(domain.DateFormat)] = DayResponse{
			Slots:        slots,
			OpenCount:    day.OpenCount,
			BookedCount:  day.BookedCount,
			BlockedCount: day.BlockedCount,
		}
	}

	return &AvailabilityResponse{
		TechnicianID: resp.TechnicianID,
		Days:         days,
	}
}
