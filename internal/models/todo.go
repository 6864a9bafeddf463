package models

import (
	"time"

	"github.com/google/uuid"
)

type Todo struct {
	ID               uuid.UUID         `json:"id" db:"id"`
	UserID           string            `json:"user_id" db:"user_id"`
	Title            string            `json:"title" db:"title"`
	Description      string            `json:"description" db:"description"`
	StartDate        string            `json:"start_date" db:"start_date"`
	EndDate          string            `json:"end_date" db:"end_date"`
	DueDate          string            `json:"due_date,omitempty" db:"due_date"`
	CalendarID       uuid.UUID         `json:"calendar_id" db:"calendar_id"`
	ProjectID        *uuid.UUID        `json:"project_id,omitempty" db:"project_id"`
	Priority         Priority          `json:"priority" db:"priority"`
	EstimatedTime    *int              `json:"estimated_time,omitempty" db:"estimated_time"`
	IsCompleted      bool              `json:"is_completed" db:"is_completed"`
	CompletedAt      *time.Time        `json:"completed_at,omitempty" db:"completed_at"`
	CreatedAt        time.Time         `json:"created_at" db:"created_at"`
	IsRecurring      bool              `json:"is_recurring" db:"is_recurring"`
	RecurringPattern RecurrencePattern `json:"recurring_pattern,omitempty" db:"recurring_pattern"`
	RecurringCount   *int              `json:"recurring_count,omitempty" db:"recurring_count"`
	Version          int               `json:"version" db:"version"`
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
	PriorityNone   Priority = "none"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow, PriorityNone:
		return true
	}
	return false
}

type RecurrencePattern string

const (
	RecurDaily   RecurrencePattern = "daily"
	RecurWeekly  RecurrencePattern = "weekly"
	RecurMonthly RecurrencePattern = "monthly"
)

func (p RecurrencePattern) Valid() bool {
	switch p {
	case RecurDaily, RecurWeekly, RecurMonthly:
		return true
	}
	return false
}

// HasRange сообщает, есть ли у задачи обе границы диапазона.
func (t *Todo) HasRange() bool {
	return t.StartDate != "" && t.EndDate != ""
}

// IsLegacy - старая запись с единственным due_date вместо диапазона.
func (t *Todo) IsLegacy() bool {
	return t.DueDate != "" && t.StartDate == "" && t.EndDate == ""
}
