package submit_windows

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	submitWindows "github.com/m04kA/SMC-AvailabilityService/internal/usecase/submit_windows"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// SubmitWindowsRequest HTTP request model
type SubmitWindowsRequest struct {
	Dates     []string `json:"dates"`     // ["10-03-2026", "11-03-2026"]
	StartTime string   `json:"startTime"` // "09:00"
	EndTime   string   `json:"endTime"`   // "12:00"
}

// SlotResponse HTTP модель слота
type SlotResponse struct {
	ID           int64  `json:"id"`
	TechnicianID int64  `json:"technicianId"`
	Date         string `json:"date"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	Status       string `json:"status"`
}

// SubmitWindowsResponse HTTP response model
// Дубликаты перечисляются поимённо, чтобы техник видел частичный успех
type SubmitWindowsResponse struct {
	Created      []SlotResponse `json:"created"`
	Duplicates   []SlotResponse `json:"duplicates"`
	SkippedDates []string       `json:"skippedDates,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Даты парсятся в формате DD-MM-YYYY, время в формате HH:MM
func (r *SubmitWindowsRequest) ToUseCaseRequest(technicianID int64) (*submitWindows.Request, error) {
	dates := make([]time.Time, 0, len(r.Dates))
	for _, raw := range r.Dates {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		dates = append(dates, date)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &submitWindows.Request{
		TechnicianID: technicianID,
		Dates:        dates,
		StartTime:    startTime,
		EndTime:      endTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *submitWindows.Response) *SubmitWindowsResponse {
	out := &SubmitWindowsResponse{
		Created:    make([]SlotResponse, len(resp.Created)),
		Duplicates: make([]SlotResponse, len(resp.Duplicates)),
	}

	for i, s := range resp.Created {
		out.Created[i] = fromUseCaseSlot(s)
	}
	for i, s := range resp.Duplicates {
		out.Duplicates[i] = fromUseCaseSlot(s)
	}

	if len(resp.Skipped) > 0 {
		out.SkippedDates = make([]string, len(resp.Skipped))
		for i, date := range resp.Skipped {
			out.SkippedDates[i] = date.Format(domain.DateFormat)
		}
	}

	return out
}

func fromUseCaseSlot(s submitWindows.Slot) SlotResponse {
	return SlotResponse{
		ID:           s.ID,
		TechnicianID: s.TechnicianID,
		Date:         s.Date.Format(domain.DateFormat),
		StartTime:    s.StartTime.String(),
		EndTime:      s.EndTime.String(),
		Status:       s.Status,
	}
}
