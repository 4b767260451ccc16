package domain

import "time"

// DateConstraintPolicy определяет, какие календарные даты техник может выбрать
// для публикации рабочих окон
type DateConstraintPolicy struct {
	// ExcludedWeekday постоянный нерабочий день недели
	ExcludedWeekday time.Weekday
}

// NewDateConstraintPolicy создает политику с указанным нерабочим днём недели
func NewDateConstraintPolicy(excluded time.Weekday) DateConstraintPolicy {
	return DateConstraintPolicy{ExcludedWeekday: excluded}
}

// IsSelectable returns true if the date may be selected for a working window
// Правила в порядке применения:
// 1. Сегодня и прошедшие даты недоступны - самая ранняя дата это завтра
// 2. Нерабочий день недели недоступен
// Верхней границы по календарю нет - размер выборки ограничивает вызывающий код
func (p DateConstraintPolicy) IsSelectable(date, today time.Time) bool {
	dateOnly := truncateToDay(date)
	tomorrow := truncateToDay(today).AddDate(0, 0, 1)

	if dateOnly.Before(tomorrow) {
		return false
	}

	if dateOnly.Weekday() == p.ExcludedWeekday {
		return false
	}

	return true
}

// truncateToDay обнуляет время и приводит дату к UTC
// Даты запроса парсятся в UTC, а текущее время приходит в зоне сервера:
// сравнивать нужно календарные компоненты, а не моменты в разных зонах
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsSameDay проверяет, что две даты относятся к одному и тому же дню
func IsSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
