package submit_windows

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// GeneratorConfig настройки генерации слотов из окна
type GeneratorConfig struct {
	// SplitWindows если true, окно нарезается на слоты фиксированной длительности
	// Иначе одно окно порождает ровно один слот
	SplitWindows bool

	// SlotDurationMinutes длительность слота при нарезке
	SlotDurationMinutes int
}

// Generator разворачивает валидированное окно (date, start, end)
// в один или несколько дискретных слотов со статусом open
type Generator struct {
	catalog *domain.TimeWindowCatalog
	cfg     GeneratorConfig
}

// NewGenerator создает генератор слотов с указанным каталогом границ окна
func NewGenerator(catalog *domain.TimeWindowCatalog, cfg GeneratorConfig) *Generator {
	return &Generator{
		catalog: catalog,
		cfg:     cfg,
	}
}

// Generate разворачивает окно в слоты на указанную дату
// Возвращает ErrInvalidWindow, если end <= start либо граница отсутствует в каталоге
func (g *Generator) Generate(technicianID int64, date time.Time, startTime, endTime types.TimeString) ([]*domain.Slot, error) {
	if err := g.validateWindow(startTime, endTime); err != nil {
		return nil, err
	}

	if !g.cfg.SplitWindows {
		// Одно окно - один слот
		return []*domain.Slot{newOpenSlot(technicianID, date, startTime, endTime)}, nil
	}

	return g.splitWindow(technicianID, date, startTime, endTime)
}

// splitWindow нарезает окно [start, end) на непрерывные слоты фиксированной
// длительности. Хвост короче полной длительности отбрасывается,
// частичный слот не создается.
func (g *Generator) splitWindow(technicianID int64, date time.Time, startTime, endTime types.TimeString) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)
	current := startTime

	for current.IsBefore(endTime) {
		slotEnd, err := current.AddMinutes(g.cfg.SlotDurationMinutes)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to compute slot end: %v", ErrInternal, err)
		}
		if slotEnd.IsAfter(endTime) {
			break
		}

		slots = append(slots, newOpenSlot(technicianID, date, current, slotEnd))
		current = slotEnd
	}

	return slots, nil
}

func (g *Generator) validateWindow(startTime, endTime types.TimeString) error {
	if !g.catalog.ContainsStart(startTime) {
		return fmt.Errorf("%w: start time %s is not in the catalog", ErrInvalidWindow, startTime)
	}
	if !g.catalog.ContainsEnd(endTime) {
		return fmt.Errorf("%w: end time %s is not in the catalog", ErrInvalidWindow, endTime)
	}
	if !startTime.IsBefore(endTime) {
		return fmt.Errorf("%w: end time %s must be after start time %s", ErrInvalidWindow, endTime, startTime)
	}
	return nil
}

func newOpenSlot(technicianID int64, date time.Time, startTime, endTime types.TimeString) *domain.Slot {
	return &domain.Slot{
		TechnicianID: technicianID,
		Date:         date,
		StartTime:    startTime,
		EndTime:      endTime,
		Status:       domain.StatusOpen,
	}
}
