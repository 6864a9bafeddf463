package models

import (
	"time"

	"github.com/google/uuid"
)

// TodoOption - частичное обновление задачи. Применяются только явно переданные поля.
type TodoOption func(*Todo)

func WithTitle(title string) TodoOption {
	return func(t *Todo) {
		t.Title = title
	}
}

func WithDescription(description string) TodoOption {
	return func(t *Todo) {
		t.Description = description
	}
}

func WithStartDate(date string) TodoOption {
	return func(t *Todo) {
		t.StartDate = date
	}
}

func WithEndDate(date string) TodoOption {
	return func(t *Todo) {
		t.EndDate = date
	}
}

// WithDates заменяет обе границы сразу и сбрасывает устаревший due_date.
func WithDates(start, end string) TodoOption {
	return func(t *Todo) {
		t.StartDate = start
		t.EndDate = end
		t.DueDate = ""
	}
}

func WithCalendar(id uuid.UUID) TodoOption {
	return func(t *Todo) {
		t.CalendarID = id
	}
}

func WithProject(id *uuid.UUID) TodoOption {
	return func(t *Todo) {
		t.ProjectID = id
	}
}

func WithPriority(p Priority) TodoOption {
	return func(t *Todo) {
		t.Priority = p
	}
}

func WithEstimatedTime(minutes *int) TodoOption {
	return func(t *Todo) {
		t.EstimatedTime = minutes
	}
}

// WithCompleted выставляет completed_at только при переходе false -> true
// и очищает его при снятии отметки.
func WithCompleted(done bool, now time.Time) TodoOption {
	return func(t *Todo) {
		if done && !t.IsCompleted {
			completedAt := now
			t.CompletedAt = &completedAt
		}
		if !done {
			t.CompletedAt = nil
		}
		t.IsCompleted = done
	}
}

func (t *Todo) Apply(options ...TodoOption) {
	for _, opt := range options {
		if opt != nil {
			opt(t)
		}
	}
}
