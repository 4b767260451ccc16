package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateConstraintPolicy_IsSelectable(t *testing.T) {
	policy := NewDateConstraintPolicy(time.Sunday)

	// Вторник 10-03-2026
	today := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{
			name: "yesterday is not selectable",
			date: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "today is not selectable",
			date: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "tomorrow is the earliest selectable date",
			date: time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "excluded weekday is not selectable",
			date: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), // воскресенье
			want: false,
		},
		{
			name: "far future weekday is selectable",
			date: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), // понедельник
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.IsSelectable(tt.date, today))
		})
	}
}

func TestDateConstraintPolicy_CrossTimezone(t *testing.T) {
	policy := NewDateConstraintPolicy(time.Sunday)

	// Даты запроса парсятся в UTC, текущее время приходит в зоне сервера.
	// Завтрашняя дата должна проходить независимо от смещения зоны
	utcMinus5 := time.FixedZone("UTC-5", -5*60*60)
	utcPlus13 := time.FixedZone("UTC+13", 13*60*60)

	tomorrow := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

	assert.True(t, policy.IsSelectable(tomorrow, time.Date(2026, 3, 10, 12, 0, 0, 0, utcMinus5)))
	assert.True(t, policy.IsSelectable(tomorrow, time.Date(2026, 3, 10, 12, 0, 0, 0, utcPlus13)))

	// И наоборот: сегодняшний календарный день сервера отклоняется
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.False(t, policy.IsSelectable(today, time.Date(2026, 3, 10, 23, 0, 0, 0, utcMinus5)))
}

func TestDateConstraintPolicy_IgnoresTimeOfDay(t *testing.T) {
	policy := NewDateConstraintPolicy(time.Sunday)

	// Время внутри дня не влияет на выбор даты
	today := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)
	tomorrowMorning := time.Date(2026, 3, 11, 0, 1, 0, 0, time.UTC)

	assert.True(t, policy.IsSelectable(tomorrowMorning, today))
}

func TestIsSameDay(t *testing.T) {
	d1 := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 3, 10, 22, 0, 0, 0, time.UTC)
	d3 := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

	assert.True(t, IsSameDay(d1, d2))
	assert.False(t, IsSameDay(d1, d3))
}
