// Package schedule раскладывает задачи по сетке недели: разбор дат, миграция
// старых записей, окно из семи дней, вычисление полос и рядов.
package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Полдень: при отображении в любом поясе в пределах ±12ч день не сдвигается.
const noonHour = 12

var (
	ErrEmptyDate     = errors.New("дата не задана")
	ErrInvalidDate   = errors.New("неверный формат даты")
	ErrInvertedRange = errors.New("дата окончания раньше даты начала")
)

var dateTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseTaskDate разбирает дату задачи. Голая дата без времени трактуется как
// полдень в loc, строка со временем используется как есть.
func ParseTaskDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrEmptyDate
	}
	if loc == nil {
		loc = time.Local
	}

	if !strings.Contains(s, "T") {
		d, err := time.ParseInLocation(DateLayout, s, loc)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
		}
		return time.Date(d.Year(), d.Month(), d.Day(), noonHour, 0, 0, 0, loc), nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// DatePart отрезает время у строки вида 2024-03-10T08:00:00Z.
func DatePart(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		return s[:i]
	}
	return s
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Day приводит момент к полудню того же календарного дня.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, noonHour, 0, 0, 0, t.Location())
}

func AddDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+n, noonHour, 0, 0, 0, t.Location())
}

// DaysBetween возвращает число календарных дней от a до b (отрицательное, если b раньше).
// Считается по гражданским датам, поэтому переход на летнее время не влияет.
func DaysBetween(a, b time.Time) int {
	ya, ma, da := a.Date()
	yb, mb, db := b.Date()
	ua := time.Date(ya, ma, da, 0, 0, 0, 0, time.UTC)
	ub := time.Date(yb, mb, db, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

func SameDay(a, b time.Time) bool {
	return DaysBetween(a, b) == 0
}
