package dto

import (
	"goodVibes/internal/models"
	"goodVibes/internal/service"

	"github.com/google/uuid"
)

type CreateCalendarRequest struct {
	Name      string `json:"name"`
	Color     string `json:"color"`
	IsDefault bool   `json:"is_default"`
}

func (r CreateCalendarRequest) Input() service.CalendarInput {
	return service.CalendarInput{Name: r.Name, Color: r.Color, IsDefault: r.IsDefault}
}

type UpdateCalendarRequest struct {
	Name      *string `json:"name,omitempty"`
	Color     *string `json:"color,omitempty"`
	IsDefault *bool   `json:"is_default,omitempty"`
}

func (r UpdateCalendarRequest) Patch() service.CalendarPatch {
	return service.CalendarPatch{Name: r.Name, Color: r.Color, IsDefault: r.IsDefault}
}

type CalendarResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	IsDefault bool      `json:"is_default"`
}

func FromCalendar(c *models.Calendar) CalendarResponse {
	return CalendarResponse{
		ID:        c.ID,
		Name:      c.Name,
		Color:     c.Color,
		IsDefault: c.IsDefault,
	}
}

func FromCalendarList(calendars []*models.Calendar) []CalendarResponse {
	result := make([]CalendarResponse, len(calendars))
	for i, c := range calendars {
		result[i] = FromCalendar(c)
	}
	return result
}

type TemplateResponse struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	StartDate     string     `json:"start_date"`
	EndDate       string     `json:"end_date"`
	EstimatedTime *int       `json:"estimated_time,omitempty"`
	Priority      string     `json:"priority"`
	CalendarID    *uuid.UUID `json:"calendar_id,omitempty"`
}

func FromTemplateList(templates []*models.Template) []TemplateResponse {
	result := make([]TemplateResponse, len(templates))
	for i, t := range templates {
		result[i] = TemplateResponse{
			ID:            t.ID,
			Name:          t.Name,
			Title:         t.Title,
			Description:   t.Description,
			StartDate:     t.StartDate,
			EndDate:       t.EndDate,
			EstimatedTime: t.EstimatedTime,
			Priority:      string(t.Priority),
			CalendarID:    t.CalendarID,
		}
	}
	return result
}
