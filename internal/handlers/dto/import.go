package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"goodVibes/internal/service"
)

// LegacyID - идентификатор из localStorage: строка или число (Date.now()).
type LegacyID string

func (id *LegacyID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = LegacyID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("идентификатор должен быть строкой или числом: %w", err)
	}
	*id = LegacyID(n.String())
	return nil
}

// Поля импорта повторяют формат localStorage, поэтому camelCase.

type ImportCalendarRequest struct {
	ID        LegacyID `json:"id"`
	Name      string   `json:"name"`
	Color     string   `json:"color"`
	IsDefault bool     `json:"isDefault"`
}

type ImportTodoRequest struct {
	ID               LegacyID   `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	StartDate        string     `json:"startDate"`
	EndDate          string     `json:"endDate"`
	DueDate          string     `json:"dueDate"`
	CalendarID       LegacyID   `json:"calendarId"`
	ProjectID        LegacyID   `json:"projectId"`
	Priority         string     `json:"priority"`
	EstimatedTime    *int       `json:"estimatedTime"`
	IsCompleted      bool       `json:"isCompleted"`
	CreatedAt        *time.Time `json:"createdAt"`
	CompletedAt      *time.Time `json:"completedAt"`
	IsRecurring      bool       `json:"isRecurring"`
	RecurringPattern string     `json:"recurringPattern"`
	RecurringCount   *int       `json:"recurringCount"`
}

type ImportTemplateRequest struct {
	ID            LegacyID `json:"id"`
	Name          string   `json:"name"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	StartDate     string   `json:"startDate"`
	EndDate       string   `json:"endDate"`
	EstimatedTime *int     `json:"estimatedTime"`
	Priority      string   `json:"priority"`
	CalendarID    LegacyID `json:"calendarId"`
}

type ImportRequest struct {
	Todos     []ImportTodoRequest     `json:"todos"`
	Calendars []ImportCalendarRequest `json:"calendars"`
	Templates []ImportTemplateRequest `json:"templates"`
}

func (r ImportRequest) Payload() service.ImportPayload {
	var p service.ImportPayload
	for _, c := range r.Calendars {
		p.Calendars = append(p.Calendars, service.ImportCalendar{
			ID:        string(c.ID),
			Name:      c.Name,
			Color:     c.Color,
			IsDefault: c.IsDefault,
		})
	}
	for _, t := range r.Todos {
		p.Todos = append(p.Todos, service.ImportTodo{
			ID:               string(t.ID),
			Title:            t.Title,
			Description:      t.Description,
			StartDate:        t.StartDate,
			EndDate:          t.EndDate,
			DueDate:          t.DueDate,
			CalendarID:       string(t.CalendarID),
			ProjectID:        string(t.ProjectID),
			Priority:         t.Priority,
			EstimatedTime:    t.EstimatedTime,
			IsCompleted:      t.IsCompleted,
			CreatedAt:        t.CreatedAt,
			CompletedAt:      t.CompletedAt,
			IsRecurring:      t.IsRecurring,
			RecurringPattern: t.RecurringPattern,
			RecurringCount:   t.RecurringCount,
		})
	}
	for _, t := range r.Templates {
		p.Templates = append(p.Templates, service.ImportTemplate{
			ID:            string(t.ID),
			Name:          t.Name,
			Title:         t.Title,
			Description:   t.Description,
			StartDate:     t.StartDate,
			EndDate:       t.EndDate,
			EstimatedTime: t.EstimatedTime,
			Priority:      t.Priority,
			CalendarID:    string(t.CalendarID),
		})
	}
	return p
}

type ImportCounts struct {
	Todos     int `json:"todos"`
	Calendars int `json:"calendars"`
	Templates int `json:"templates"`
}

type ImportResponse struct {
	Message  string       `json:"message"`
	Migrated ImportCounts `json:"migrated"`
}

func FromImportResult(res *service.ImportResult) ImportResponse {
	msg := "Данные перенесены"
	if *res == (service.ImportResult{}) {
		msg = "Нет данных для переноса"
	}
	return ImportResponse{
		Message:  msg,
		Migrated: ImportCounts(*res),
	}
}
