package submit_windows

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TechnicianID <= 0 {
		return fmt.Errorf("%w: technicianID must be positive", ErrInvalidInput)
	}

	if len(req.Dates) == 0 {
		return fmt.Errorf("%w: at least one date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.EndTime.IsZero() {
		return fmt.Errorf("%w: endTime is required", ErrInvalidInput)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// dedupeDates схлопывает повторяющиеся даты, сохраняя порядок первого вхождения
func dedupeDates(dates []time.Time) []time.Time {
	distinct := make([]time.Time, 0, len(dates))
	seen := make(map[string]struct{}, len(dates))

	for _, date := range dates {
		key := date.Format(domain.DateFormat)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		distinct = append(distinct, date)
	}

	return distinct
}

// selectDates применяет политику выбора дат к набору без дубликатов
// Недопустимые даты не прерывают обработку - они пропускаются и возвращаются
// отдельным списком для ответа клиенту.
// Результат отсортирован по возрастанию: слоты создаются в порядке дата-затем-время.
func selectDates(dates []time.Time, policy domain.DateConstraintPolicy, now time.Time) (selected, skipped []time.Time) {
	selected = make([]time.Time, 0, len(dates))
	skipped = make([]time.Time, 0)

	for _, date := range dates {
		if !policy.IsSelectable(date, now) {
			skipped = append(skipped, date)
			continue
		}
		selected = append(selected, date)
	}

	sort.Slice(selected, func(i, j int) bool {
		return selected[i].Before(selected[j])
	})

	return selected, skipped
}
