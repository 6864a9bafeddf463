package sqlite

import (
	"time"

	"goodVibes/internal/models"

	"github.com/google/uuid"
)

type calendarRecord struct {
	ID        uuid.UUID `gorm:"primaryKey;type:text"`
	UserID    string    `gorm:"index;not null"`
	Name      string    `gorm:"not null"`
	Color     string    `gorm:"not null"`
	IsDefault bool      `gorm:"default:false"`
}

func (calendarRecord) TableName() string { return "calendars" }

type todoRecord struct {
	ID               uuid.UUID  `gorm:"primaryKey;type:text"`
	UserID           string     `gorm:"index;not null"`
	Title            string     `gorm:"not null"`
	Description      string
	StartDate        string
	EndDate          string
	DueDate          string
	CalendarID       uuid.UUID  `gorm:"type:text;index;not null"`
	ProjectID        *uuid.UUID `gorm:"type:text"`
	Priority         string
	EstimatedTime    *int
	IsCompleted      bool `gorm:"default:false"`
	CompletedAt      *time.Time
	CreatedAt        time.Time
	IsRecurring      bool `gorm:"default:false"`
	RecurringPattern string
	RecurringCount   *int
	Version          int `gorm:"not null;default:1"`
}

func (todoRecord) TableName() string { return "todos" }

type templateRecord struct {
	ID            uuid.UUID `gorm:"primaryKey;type:text"`
	UserID        string    `gorm:"index;not null"`
	Name          string    `gorm:"not null"`
	Title         string
	Description   string
	StartDate     string
	EndDate       string
	EstimatedTime *int
	Priority      string
	CalendarID    *uuid.UUID `gorm:"type:text"`
}

func (templateRecord) TableName() string { return "templates" }

func toCalendarRecord(c *models.Calendar) calendarRecord {
	return calendarRecord{ID: c.ID, UserID: c.UserID, Name: c.Name, Color: c.Color, IsDefault: c.IsDefault}
}

func (r calendarRecord) model() *models.Calendar {
	return &models.Calendar{ID: r.ID, UserID: r.UserID, Name: r.Name, Color: r.Color, IsDefault: r.IsDefault}
}

func toTodoRecord(t *models.Todo) todoRecord {
	return todoRecord{
		ID:               t.ID,
		UserID:           t.UserID,
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

func (r todoRecord) model() *models.Todo {
	return &models.Todo{
		ID:               r.ID,
		UserID:           r.UserID,
		Title:            r.Title,
		Description:      r.Description,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		DueDate:          r.DueDate,
		CalendarID:       r.CalendarID,
		ProjectID:        r.ProjectID,
		Priority:         models.Priority(r.Priority),
		EstimatedTime:    r.EstimatedTime,
		IsCompleted:      r.IsCompleted,
		CompletedAt:      r.CompletedAt,
		CreatedAt:        r.CreatedAt,
		IsRecurring:      r.IsRecurring,
		RecurringPattern: models.RecurrencePattern(r.RecurringPattern),
		RecurringCount:   r.RecurringCount,
		Version:          r.Version,
	}
}

func toTemplateRecord(t *models.Template) templateRecord {
	return templateRecord{
		ID:            t.ID,
		UserID:        t.UserID,
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

func (r templateRecord) model() *models.Template {
	return &models.Template{
		ID:            r.ID,
		UserID:        r.UserID,
		Name:          r.Name,
		Title:         r.Title,
		Description:   r.Description,
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
		EstimatedTime: r.EstimatedTime,
		Priority:      models.Priority(r.Priority),
		CalendarID:    r.CalendarID,
	}
}
