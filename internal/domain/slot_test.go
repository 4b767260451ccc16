package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlot_TransitionGuards(t *testing.T) {
	open := &Slot{Status: StatusOpen}
	booked := &Slot{Status: StatusBooked}
	blocked := &Slot{Status: StatusBlocked}

	// open: можно заблокировать и забронировать
	assert.True(t, open.CanBeBlocked())
	assert.True(t, open.CanBeBooked())
	assert.False(t, open.CanBeUnblocked())
	assert.False(t, open.CanBeCancelled())

	// booked: только отмена бронирования
	assert.False(t, booked.CanBeBlocked())
	assert.False(t, booked.CanBeBooked())
	assert.False(t, booked.CanBeUnblocked())
	assert.True(t, booked.CanBeCancelled())

	// blocked: только разблокировка
	assert.False(t, blocked.CanBeBlocked())
	assert.False(t, blocked.CanBeBooked())
	assert.True(t, blocked.CanBeUnblocked())
	assert.False(t, blocked.CanBeCancelled())
}

func TestAllowedActions(t *testing.T) {
	assert.Equal(t, []SlotAction{ActionBlock}, AllowedActions(StatusOpen))
	assert.Equal(t, []SlotAction{ActionUnblock}, AllowedActions(StatusBlocked))
	// Занятый слот не управляется техником: список пустой, но не nil
	assert.NotNil(t, AllowedActions(StatusBooked))
	assert.Empty(t, AllowedActions(StatusBooked))
}

func TestSlot_IsPast(t *testing.T) {
	today := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	yesterday := &Slot{Date: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)}
	assert.True(t, yesterday.IsPast(today))

	// Сегодняшний слот не считается прошедшим
	sameDay := &Slot{Date: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)}
	assert.False(t, sameDay.IsPast(today))

	tomorrow := &Slot{Date: time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)}
	assert.False(t, tomorrow.IsPast(today))
}

func TestSlot_IsPast_CrossTimezone(t *testing.T) {
	// Дата слота в UTC, текущее время в зоне сервера:
	// сравнение идет по календарным дням, смещение зоны не влияет
	utcMinus5 := time.FixedZone("UTC-5", -5*60*60)

	sameDay := &Slot{Date: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)}
	assert.False(t, sameDay.IsPast(time.Date(2026, 3, 10, 23, 0, 0, 0, utcMinus5)))

	yesterday := &Slot{Date: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)}
	assert.True(t, yesterday.IsPast(time.Date(2026, 3, 10, 1, 0, 0, 0, utcMinus5)))
}

func TestToSlotStatus(t *testing.T) {
	s, ok := ToSlotStatus("open")
	assert.True(t, ok)
	assert.Equal(t, StatusOpen, s)

	s, ok = ToSlotStatus("booked")
	assert.True(t, ok)
	assert.Equal(t, StatusBooked, s)

	_, ok = ToSlotStatus("deleted")
	assert.False(t, ok)

	_, ok = ToSlotStatus("")
	assert.False(t, ok)
}
