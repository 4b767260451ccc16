package domain

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// SlotStatus represents the lifecycle status of a slot
type SlotStatus string

const (
	StatusOpen    SlotStatus = "open"
	StatusBooked  SlotStatus = "booked"
	StatusBlocked SlotStatus = "blocked"
)

// ValidStatuses список всех допустимых статусов слота
var ValidStatuses = []SlotStatus{
	StatusOpen,
	StatusBooked,
	StatusBlocked,
}

// SlotAction represents an action a technician may perform on a slot
type SlotAction string

const (
	ActionBlock   SlotAction = "block"
	ActionUnblock SlotAction = "unblock"
)

// Slot represents a single bookable unit of technician time
// Identity: (TechnicianID, Date, StartTime) - уникальна, EndTime производное
type Slot struct {
	ID           int64
	TechnicianID int64
	Date         time.Time // Календарный день без времени
	StartTime    types.TimeString
	EndTime      types.TimeString
	Status       SlotStatus

	// BookedBy ID клиента, занявшего слот (только для статуса booked)
	BookedBy *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanBeBlocked returns true if the technician may withdraw the slot from availability
func (s *Slot) CanBeBlocked() bool {
	return s.Status == StatusOpen
}

// CanBeUnblocked returns true if the slot can be returned to availability
func (s *Slot) CanBeUnblocked() bool {
	return s.Status == StatusBlocked
}

// CanBeBooked returns true if a customer reservation may occupy the slot
func (s *Slot) CanBeBooked() bool {
	return s.Status == StatusOpen
}

// CanBeCancelled returns true if a customer reservation may be released
func (s *Slot) CanBeCancelled() bool {
	return s.Status == StatusBooked
}

// IsPast returns true if the slot's date is before today
// Прошедшие слоты не удаляются, но исключаются из выдачи доступности.
// Сравниваются календарные компоненты: дата слота хранится в UTC,
// а текущее время может прийти в зоне сервера
func (s *Slot) IsPast(today time.Time) bool {
	sy, sm, sd := s.Date.Date()
	ty, tm, td := today.Date()
	slotDay := time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)
	todayDay := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return slotDay.Before(todayDay)
}

// AllowedActions returns the technician actions permitted for the given status
// Вычисляется заново на каждый запрос, никогда не кешируется,
// чтобы клиент не показывал устаревшие кнопки действий
func AllowedActions(status SlotStatus) []SlotAction {
	switch status {
	case StatusOpen:
		return []SlotAction{ActionBlock}
	case StatusBlocked:
		return []SlotAction{ActionUnblock}
	default:
		// Занятый слот не управляется техником напрямую
		return []SlotAction{}
	}
}

// ToSlotStatus конвертирует строку в SlotStatus с валидацией
func ToSlotStatus(status string) (SlotStatus, bool) {
	s := SlotStatus(status)
	for _, valid := range ValidStatuses {
		if s == valid {
			return s, true
		}
	}
	return "", false
}
