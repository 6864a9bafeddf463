package service

import (
	"context"
	"fmt"
	"time"

	"goodVibes/internal/logger"
	"goodVibes/internal/models"
	"goodVibes/internal/schedule"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type todoLister interface {
	List(ctx context.Context, userID string) ([]*models.Todo, error)
}

// WeekTask - размещённая задача с оформлением её календаря.
type WeekTask struct {
	schedule.PlacedTask
	Overdue    bool
	Color      string
	Background string
	Border     string
}

type WeekView struct {
	Window   schedule.Window
	Tasks    []WeekTask
	MaxLanes int
}

type WeekService struct {
	todos     todoLister
	calendars CalendarRepository
	now       func() time.Time
}

func NewWeekService(todos todoLister, calendars CalendarRepository) *WeekService {
	return &WeekService{
		todos:     todos,
		calendars: calendars,
		now:       time.Now,
	}
}

// Week строит сетку из семи дней вокруг center. calendarID ограничивает
// задачи одним календарём.
func (s *WeekService) Week(ctx context.Context, userID string, center time.Time, calendarID *uuid.UUID) (*WeekView, error) {
	todos, err := s.todos.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	calendars, err := s.calendars.ListCalendars(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("получение календарей: %w", err)
	}

	byID := make(map[uuid.UUID]*models.Calendar, len(calendars))
	for _, c := range calendars {
		byID[c.ID] = c
	}

	if calendarID != nil {
		if _, ok := byID[*calendarID]; !ok {
			return nil, NewNotFound(resourceCalendar, calendarID.String())
		}
		filtered := make([]*models.Todo, 0, len(todos))
		for _, t := range todos {
			if t.CalendarID == *calendarID {
				filtered = append(filtered, t)
			}
		}
		todos = filtered
	}

	window := schedule.NewWindow(center)
	week := schedule.BuildWeek(todos, window)
	now := s.now().In(window.Location())

	view := &WeekView{
		Window:   window,
		MaxLanes: week.MaxLanes,
		Tasks:    make([]WeekTask, 0, len(week.Tasks)),
	}
	for _, placed := range week.Tasks {
		task := WeekTask{
			PlacedTask: placed,
			Overdue:    schedule.IsOverdue(placed.Todo, now),
		}
		if c, ok := byID[placed.Todo.CalendarID]; ok {
			task.Color = c.Color
			task.Background, task.Border = shades(c.Color)
		}
		view.Tasks = append(view.Tasks, task)
	}
	return view, nil
}

func shades(color string) (string, string) {
	bg, err := schedule.Lighten(color, schedule.DefaultLighten)
	if err != nil {
		logger.Warn("Service: неверный цвет календаря", zap.String("color", color), zap.Error(err))
		return "", ""
	}
	border, err := schedule.Darken(color, schedule.DefaultDarken)
	if err != nil {
		return bg, ""
	}
	return bg, border
}
