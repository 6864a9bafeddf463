package service

import (
	"context"
	"fmt"
	"time"

	"goodVibes/internal/models"
	"goodVibes/internal/schedule"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"
)

const icsProductID = "-//goodVibes//planner//RU"

// ExportService выгружает задачи с диапазоном дат в iCalendar как события на целый день.
type ExportService struct {
	todos     todoLister
	calendars CalendarRepository
	loc       *time.Location
	now       func() time.Time
}

func NewExportService(todos todoLister, calendars CalendarRepository, loc *time.Location) *ExportService {
	if loc == nil {
		loc = time.Local
	}
	return &ExportService{
		todos:     todos,
		calendars: calendars,
		loc:       loc,
		now:       time.Now,
	}
}

// ICS возвращает календарь пользователя. calendarID ограничивает выгрузку одним
// календарём. Задачи без дат пропускаются.
func (s *ExportService) ICS(ctx context.Context, userID string, calendarID *uuid.UUID) (string, error) {
	todos, err := s.todos.List(ctx, userID)
	if err != nil {
		return "", err
	}
	calendars, err := s.calendars.ListCalendars(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("получение календарей: %w", err)
	}
	names := make(map[uuid.UUID]string, len(calendars))
	for _, c := range calendars {
		names[c.ID] = c.Name
	}
	if calendarID != nil {
		if _, ok := names[*calendarID]; !ok {
			return "", NewNotFound(resourceCalendar, calendarID.String())
		}
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(icsProductID)

	stamp := s.now().UTC()
	for _, t := range todos {
		if calendarID != nil && t.CalendarID != *calendarID {
			continue
		}
		s.addEvent(cal, *t, names[t.CalendarID], stamp)
	}
	return cal.Serialize(), nil
}

func (s *ExportService) addEvent(cal *ical.Calendar, todo models.Todo, calendarName string, stamp time.Time) bool {
	todo, _ = schedule.MigrateLegacy(todo)
	if !todo.HasRange() {
		return false
	}
	start, err := schedule.ParseTaskDate(todo.StartDate, s.loc)
	if err != nil {
		return false
	}
	end, err := schedule.ParseTaskDate(todo.EndDate, s.loc)
	if err != nil || schedule.DaysBetween(start, end) < 0 {
		return false
	}

	event := cal.AddEvent(todo.ID.String() + "@goodvibes")
	event.SetDtStampTime(stamp)
	event.SetCreatedTime(todo.CreatedAt)
	event.SetSummary(todo.Title)
	if todo.Description != "" {
		event.SetDescription(todo.Description)
	}
	event.SetAllDayStartAt(start)
	// DTEND дневного события не включается в интервал
	event.SetAllDayEndAt(schedule.AddDays(end, 1))
	if calendarName != "" {
		event.SetProperty(ical.ComponentPropertyCategories, calendarName)
	}
	return true
}
