package domain

import (
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// TimeWindowCatalog фиксированная лестница допустимых времен начала и окончания
// рабочего окна. Диапазон окончаний начинается не раньше последнего допустимого
// начала, поэтому любая пара (start, end) из каталога удовлетворяет start < end,
// но генератор всё равно проверяет сабмит на end <= start.
type TimeWindowCatalog struct {
	startOptions []types.TimeString
	endOptions   []types.TimeString
}

// NewTimeWindowCatalog строит каталог по границам и шагу в минутах
func NewTimeWindowCatalog(earliestStart, latestStart, earliestEnd, latestEnd types.TimeString, stepMinutes int) (*TimeWindowCatalog, error) {
	startOptions, err := buildLadder(earliestStart, latestStart, stepMinutes)
	if err != nil {
		return nil, fmt.Errorf("catalog: start options: %w", err)
	}

	endOptions, err := buildLadder(earliestEnd, latestEnd, stepMinutes)
	if err != nil {
		return nil, fmt.Errorf("catalog: end options: %w", err)
	}

	return &TimeWindowCatalog{
		startOptions: startOptions,
		endOptions:   endOptions,
	}, nil
}

// DefaultTimeWindowCatalog каталог с дефолтными границами (06:00-14:00 / 14:00-22:00, шаг час)
func DefaultTimeWindowCatalog() *TimeWindowCatalog {
	catalog, err := NewTimeWindowCatalog(
		types.TimeString(DefaultEarliestStart),
		types.TimeString(DefaultLatestStart),
		types.TimeString(DefaultEarliestEnd),
		types.TimeString(DefaultLatestEnd),
		DefaultStepMinutes,
	)
	if err != nil {
		// Дефолтные границы статичны и валидны
		panic(err)
	}
	return catalog
}

// StartTimeOptions returns the permissible window start times, ascending
func (c *TimeWindowCatalog) StartTimeOptions() []types.TimeString {
	options := make([]types.TimeString, len(c.startOptions))
	copy(options, c.startOptions)
	return options
}

// EndTimeOptions returns the permissible window end times, ascending
func (c *TimeWindowCatalog) EndTimeOptions() []types.TimeString {
	options := make([]types.TimeString, len(c.endOptions))
	copy(options, c.endOptions)
	return options
}

// ContainsStart проверяет, что время начала присутствует в каталоге
func (c *TimeWindowCatalog) ContainsStart(ts types.TimeString) bool {
	return contains(c.startOptions, ts)
}

// ContainsEnd проверяет, что время окончания присутствует в каталоге
func (c *TimeWindowCatalog) ContainsEnd(ts types.TimeString) bool {
	return contains(c.endOptions, ts)
}

func contains(options []types.TimeString, ts types.TimeString) bool {
	for _, opt := range options {
		if opt.Equal(ts) {
			return true
		}
	}
	return false
}

func buildLadder(from, to types.TimeString, stepMinutes int) ([]types.TimeString, error) {
	if err := from.Validate(); err != nil {
		return nil, err
	}
	if err := to.Validate(); err != nil {
		return nil, err
	}
	if to.IsBefore(from) {
		return nil, fmt.Errorf("upper bound %s is before lower bound %s", to, from)
	}

	ladder := make([]types.TimeString, 0)
	current := from

	for !current.IsAfter(to) {
		ladder = append(ladder, current)

		next, err := current.AddMinutes(stepMinutes)
		if err != nil {
			break
		}
		current = next
	}

	return ladder, nil
}
