package models

import "github.com/google/uuid"

type Calendar struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Color     string    `json:"color" db:"color"`
	IsDefault bool      `json:"is_default" db:"is_default"`
}

// Template - заготовка полей для новой задачи, сама в расписание не попадает.
type Template struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	UserID        string     `json:"user_id" db:"user_id"`
	Name          string     `json:"name" db:"name"`
	Title         string     `json:"title" db:"title"`
	Description   string     `json:"description" db:"description"`
	StartDate     string     `json:"start_date" db:"start_date"`
	EndDate       string     `json:"end_date" db:"end_date"`
	EstimatedTime *int       `json:"estimated_time,omitempty" db:"estimated_time"`
	Priority      Priority   `json:"priority" db:"priority"`
	CalendarID    *uuid.UUID `json:"calendar_id,omitempty" db:"calendar_id"`
}

// Project используется только для группировки в аналитике.
type Project struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Color       string    `json:"color"`
	Description string    `json:"description"`
}

type User struct {
	Username string `json:"username"`
}

// UserData - полный набор записей пользователя для импорта.
type UserData struct {
	Calendars []*Calendar
	Todos     []*Todo
	Templates []*Template
}
