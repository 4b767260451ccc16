package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// timeLayout формат времени HH:MM (24-часовой)
const timeLayout = "15:04"

var (
	// ErrInvalidTimeFormat возвращается при некорректном формате строки времени
	ErrInvalidTimeFormat = errors.New("invalid time string format")

	// ErrTimeOutOfRange возвращается, когда результат операции выходит за пределы суток
	ErrTimeOutOfRange = errors.New("time is out of day range")
)

// TimeString тип для работы со временем в формате "HH:MM" (24-часовой формат)
// Используется для хранения времени слотов без привязки к дате
type TimeString string

// NewTimeString создает TimeString из time.Time (отбрасывает дату и секунды)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	// Нормализуем (например, "6:30" -> "06:30")
	return TimeString(t.Format(timeLayout)), nil
}

// Validate проверяет, что строка соответствует формату HH:MM
func (ts TimeString) Validate() error {
	if _, err := time.Parse(timeLayout, string(ts)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(ts))
	}
	return nil
}

// IsZero возвращает true, если значение не задано
func (ts TimeString) IsZero() bool {
	return ts == ""
}

// String возвращает строковое представление времени
func (ts TimeString) String() string {
	return string(ts)
}

// MinutesOfDay возвращает количество минут с полуночи
// Используется как ключ сортировки вместо строкового представления.
// Значения создаются только через валидирующие конструкторы и Scan,
// поэтому некорректная строка здесь - нарушение инварианта, а не ошибка ввода
func (ts TimeString) MinutesOfDay() int {
	// "24:00" допускается как верхняя граница интервала
	if ts == "24:00" {
		return 24 * 60
	}
	t, err := time.Parse(timeLayout, string(ts))
	if err != nil {
		panic(fmt.Sprintf("types: malformed TimeString %q", string(ts)))
	}
	return t.Hour()*60 + t.Minute()
}

// AddMinutes возвращает время, сдвинутое на указанное количество минут
// Возвращает ошибку, если результат выходит за пределы суток
func (ts TimeString) AddMinutes(minutes int) (TimeString, error) {
	t, err := time.Parse(timeLayout, string(ts))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(ts))
	}

	total := t.Hour()*60 + t.Minute() + minutes
	if total < 0 || total > 24*60 {
		return "", ErrTimeOutOfRange
	}

	// 24:00 используется только как верхняя граница интервала
	if total == 24*60 {
		return TimeString("24:00"), nil
	}

	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// IsBefore возвращает true, если ts строго раньше other
func (ts TimeString) IsBefore(other TimeString) bool {
	return ts.MinutesOfDay() < other.MinutesOfDay()
}

// IsAfter возвращает true, если ts строго позже other
func (ts TimeString) IsAfter(other TimeString) bool {
	return ts.MinutesOfDay() > other.MinutesOfDay()
}

// Equal возвращает true, если времена совпадают
func (ts TimeString) Equal(other TimeString) bool {
	return ts.MinutesOfDay() == other.MinutesOfDay()
}

// Value реализует driver.Valuer для записи в БД (колонка TIME)
func (ts TimeString) Value() (driver.Value, error) {
	if err := ts.Validate(); err != nil {
		return nil, err
	}
	return string(ts), nil
}

// Scan реализует sql.Scanner для чтения из БД
// lib/pq возвращает TIME как строку "HH:MM:SS", отбрасываем секунды
func (ts *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*ts = ""
		return nil
	case time.Time:
		*ts = NewTimeString(v)
		return nil
	case []byte:
		return ts.scanString(string(v))
	case string:
		return ts.scanString(v)
	default:
		return fmt.Errorf("%w: unsupported source type %T", ErrInvalidTimeFormat, src)
	}
}

func (ts *TimeString) scanString(s string) error {
	if len(s) >= 5 {
		s = s[:5]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}
