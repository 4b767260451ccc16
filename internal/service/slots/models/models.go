package models

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// SlotResponse ответ с данными слота
type SlotResponse struct {
	ID             int64    `json:"id"`
	TechnicianID   int64    `json:"technicianId"`
	Date           string   `json:"date"`      // "10-03-2026"
	StartTime      string   `json:"startTime"` // "09:00"
	EndTime        string   `json:"endTime"`   // "12:00"
	Status         string   `json:"status"`
	AllowedActions []string `json:"allowedActions"`
	BookedBy       *int64   `json:"bookedBy,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.Slot) *SlotResponse {
	if s == nil {
		return nil
	}

	actions := domain.AllowedActions(s.Status)
	actionStrings := make([]string, len(actions))
	for i, a := range actions {
		actionStrings[i] = string(a)
	}

	return &SlotResponse{
		ID:             s.ID,
		TechnicianID:   s.TechnicianID,
		Date:           s.Date.Format(domain.DateFormat),
		StartTime:      s.StartTime.String(),
		EndTime:        s.EndTime.String(),
		Status:         string(s.Status),
		AllowedActions: actionStrings,
		BookedBy:       s.BookedBy,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}
