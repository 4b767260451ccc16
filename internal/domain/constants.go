package domain

import "time"

// Default schedule configuration values
const (
	DefaultMaxDates            = 7
	DefaultExcludedWeekday     = time.Sunday
	DefaultStepMinutes         = 60
	DefaultSlotDurationMinutes = 60
)

// Default time window catalog bounds
const (
	DefaultEarliestStart = "06:00"
	DefaultLatestStart   = "14:00"
	DefaultEarliestEnd   = "14:00"
	DefaultLatestEnd     = "22:00"
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "02-01-2006" // DD-MM-YYYY
)
