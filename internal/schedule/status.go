package schedule

import (
	"time"

	"goodVibes/internal/models"
)

// IsOverdue: задача не выполнена и её последний день уже прошёл.
func IsOverdue(todo models.Todo, now time.Time) bool {
	if todo.IsCompleted {
		return false
	}
	todo, _ = MigrateLegacy(todo)
	if !todo.HasRange() {
		return false
	}
	end, err := ParseTaskDate(todo.EndDate, now.Location())
	if err != nil {
		return false
	}
	return DaysBetween(end, now) > 0
}

// CoversDay сообщает, попадает ли день в диапазон задачи.
func CoversDay(todo models.Todo, day time.Time) bool {
	todo, _ = MigrateLegacy(todo)
	if !todo.HasRange() {
		return false
	}
	start, err := ParseTaskDate(todo.StartDate, day.Location())
	if err != nil {
		return false
	}
	end, err := ParseTaskDate(todo.EndDate, day.Location())
	if err != nil {
		return false
	}
	return DaysBetween(start, day) >= 0 && DaysBetween(day, end) >= 0
}

// ValidateRange проверяет, что конец диапазона не раньше начала.
// Пустые границы не проверяются.
func ValidateRange(start, end string, loc *time.Location) error {
	if start == "" || end == "" {
		if start != "" {
			_, err := ParseTaskDate(start, loc)
			return err
		}
		if end != "" {
			_, err := ParseTaskDate(end, loc)
			return err
		}
		return nil
	}
	s, err := ParseTaskDate(start, loc)
	if err != nil {
		return err
	}
	e, err := ParseTaskDate(end, loc)
	if err != nil {
		return err
	}
	if DaysBetween(s, e) < 0 {
		return ErrInvertedRange
	}
	return nil
}
