package dto

import (
	"strings"
	"time"

	"goodVibes/internal/models"
	"goodVibes/internal/service"

	"github.com/google/uuid"
)

// CreateTodoRequest - тело POST /api/todos. При is_recurring создаётся серия.
type CreateTodoRequest struct {
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	StartDate        string     `json:"start_date"`
	EndDate          string     `json:"end_date"`
	CalendarID       *uuid.UUID `json:"calendar_id,omitempty"`
	ProjectID        *uuid.UUID `json:"project_id,omitempty"`
	Priority         string     `json:"priority"`
	EstimatedTime    *int       `json:"estimated_time,omitempty"`
	IsCompleted      bool       `json:"is_completed"`
	IsRecurring      bool       `json:"is_recurring"`
	RecurringPattern string     `json:"recurring_pattern,omitempty"`
	RecurringCount   *int       `json:"recurring_count,omitempty"`
}

func (r CreateTodoRequest) Input() service.TodoInput {
	return service.TodoInput{
		Title:         r.Title,
		Description:   r.Description,
		StartDate:     strings.TrimSpace(r.StartDate),
		EndDate:       strings.TrimSpace(r.EndDate),
		CalendarID:    r.CalendarID,
		ProjectID:     r.ProjectID,
		Priority:      models.Priority(r.Priority),
		EstimatedTime: r.EstimatedTime,
		IsCompleted:   r.IsCompleted,
	}
}

// Recurrence возвращает nil, если серия не запрошена.
func (r CreateTodoRequest) Recurrence() *service.Recurrence {
	if !r.IsRecurring {
		return nil
	}
	rec := service.Recurrence{Pattern: models.RecurrencePattern(r.RecurringPattern)}
	if r.RecurringCount != nil {
		rec.Count = *r.RecurringCount
	}
	return &rec
}

// UpdateTodoRequest - частичное обновление, отсутствующие поля не меняются.
type UpdateTodoRequest struct {
	Title         *string    `json:"title,omitempty"`
	Description   *string    `json:"description,omitempty"`
	StartDate     *string    `json:"start_date,omitempty"`
	EndDate       *string    `json:"end_date,omitempty"`
	CalendarID    *uuid.UUID `json:"calendar_id,omitempty"`
	ProjectID     *uuid.UUID `json:"project_id,omitempty"`
	Priority      *string    `json:"priority,omitempty"`
	EstimatedTime *int       `json:"estimated_time,omitempty"`
	IsCompleted   *bool      `json:"is_completed,omitempty"`
}

func (r UpdateTodoRequest) Empty() bool {
	return r.Title == nil && r.Description == nil && r.StartDate == nil && r.EndDate == nil &&
		r.CalendarID == nil && r.ProjectID == nil && r.Priority == nil &&
		r.EstimatedTime == nil && r.IsCompleted == nil
}

// Options собирает изменения. completed строит опцию отметки выполнения
// со временем сервера.
func (r UpdateTodoRequest) Options(completed func(done bool) models.TodoOption) []models.TodoOption {
	var opts []models.TodoOption
	if r.Title != nil {
		opts = append(opts, models.WithTitle(*r.Title))
	}
	if r.Description != nil {
		opts = append(opts, models.WithDescription(*r.Description))
	}
	switch {
	case r.StartDate != nil && r.EndDate != nil:
		opts = append(opts, models.WithDates(strings.TrimSpace(*r.StartDate), strings.TrimSpace(*r.EndDate)))
	case r.StartDate != nil:
		opts = append(opts, models.WithStartDate(strings.TrimSpace(*r.StartDate)))
	case r.EndDate != nil:
		opts = append(opts, models.WithEndDate(strings.TrimSpace(*r.EndDate)))
	}
	if r.CalendarID != nil {
		opts = append(opts, models.WithCalendar(*r.CalendarID))
	}
	if r.ProjectID != nil {
		opts = append(opts, models.WithProject(r.ProjectID))
	}
	if r.Priority != nil {
		opts = append(opts, models.WithPriority(models.Priority(*r.Priority)))
	}
	if r.EstimatedTime != nil {
		opts = append(opts, models.WithEstimatedTime(r.EstimatedTime))
	}
	if r.IsCompleted != nil {
		opts = append(opts, completed(*r.IsCompleted))
	}
	return opts
}

type TodoResponse struct {
	ID               uuid.UUID  `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	StartDate        string     `json:"start_date"`
	EndDate          string     `json:"end_date"`
	DueDate          string     `json:"due_date,omitempty"`
	CalendarID       uuid.UUID  `json:"calendar_id"`
	ProjectID        *uuid.UUID `json:"project_id,omitempty"`
	Priority         string     `json:"priority"`
	EstimatedTime    *int       `json:"estimated_time,omitempty"`
	IsCompleted      bool       `json:"is_completed"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	IsRecurring      bool       `json:"is_recurring"`
	RecurringPattern string     `json:"recurring_pattern,omitempty"`
	RecurringCount   *int       `json:"recurring_count,omitempty"`
	Version          int        `json:"version"`
}

func FromTodo(t *models.Todo) TodoResponse {
	return TodoResponse{
		ID:               t.ID,
		Title:            t.Title,
		Description:      t.Description,
		StartDate:        t.StartDate,
		EndDate:          t.EndDate,
		DueDate:          t.DueDate,
		CalendarID:       t.CalendarID,
		ProjectID:        t.ProjectID,
		Priority:         string(t.Priority),
		EstimatedTime:    t.EstimatedTime,
		IsCompleted:      t.IsCompleted,
		CompletedAt:      t.CompletedAt,
		CreatedAt:        t.CreatedAt,
		IsRecurring:      t.IsRecurring,
		RecurringPattern: string(t.RecurringPattern),
		RecurringCount:   t.RecurringCount,
		Version:          t.Version,
	}
}

func FromTodoList(todos []*models.Todo) []TodoResponse {
	result := make([]TodoResponse, len(todos))
	for i, t := range todos {
		result[i] = FromTodo(t)
	}
	return result
}

type TodayResponse struct {
	Date      string         `json:"date"`
	Pending   []TodoResponse `json:"pending"`
	Completed []TodoResponse `json:"completed"`
}

func FromToday(v *service.TodayView) TodayResponse {
	return TodayResponse{
		Date:      v.Date,
		Pending:   FromTodoList(v.Pending),
		Completed: FromTodoList(v.Completed),
	}
}
