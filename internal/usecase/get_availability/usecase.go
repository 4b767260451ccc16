package get_availability

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// UseCase use case получения инвентаря слотов техника
// Read model: группирует слоты по датам, сортирует внутри даты
// и считает количество слотов в каждом статусе. Ничего не пишет.
type UseCase struct {
	slotRepo     SlotRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotRepo SlotRepository, logger Logger) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступности
// Прошедшие даты исключаются на уровне запроса к хранилищу -
// устаревшие слоты не удаляются, но и не показываются
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: technician=%d", req.TechnicianID)

	if req.TechnicianID <= 0 {
		return nil, fmt.Errorf("%w: technicianID must be positive", ErrInvalidInput)
	}

	// Календарный день в UTC: даты слотов хранятся без привязки к зоне сервера
	now := uc.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	slots, err := uc.slotRepo.ListByTechnician(ctx, req.TechnicianID, today)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list slots for technician=%d: %v", req.TechnicianID, err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	days := groupByDate(slots)

	uc.logger.Info("GetAvailability: technician=%d, %d slots across %d days",
		req.TechnicianID, len(slots), len(days))

	return &Response{
		TechnicianID: req.TechnicianID,
		Days:         days,
	}, nil
}

// groupByDate группирует слоты по календарной дате
// Внутри даты слоты сортируются по минутам с полуночи, а не по строковому
// представлению времени - строковая сортировка ломается на 12-часовых метках
func groupByDate(slots []*domain.Slot) []Day {
	byDate := make(map[string]*Day)
	order := make([]string, 0)

	for _, s := range slots {
		key := s.Date.Format(domain.DateFormat)

		day, ok := byDate[key]
		if !ok {
			day = &Day{
				Date:  s.Date,
				Slots: make([]Slot, 0, 4),
			}
			byDate[key] = day
			order = append(order, key)
		}

		day.Slots = append(day.Slots, fromDomainSlot(s))

		switch s.Status {
		case domain.StatusOpen:
			day.OpenCount++
		case domain.StatusBooked:
			day.BookedCount++
		case domain.StatusBlocked:
			day.BlockedCount++
		}
	}

	days := make([]Day, 0, len(order))
	for _, key := range order {
		day := byDate[key]
		sort.Slice(day.Slots, func(i, j int) bool {
			return day.Slots[i].StartTime.MinutesOfDay() < day.Slots[j].StartTime.MinutesOfDay()
		})
		days = append(days, *day)
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})

	return days
}
