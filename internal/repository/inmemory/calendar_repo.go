package inmemory

import (
	"context"

	"goodVibes/internal/models"
	repo "goodVibes/internal/repository"

	"github.com/google/uuid"
)

func (s *Storage) CreateCalendar(ctx context.Context, calendar *models.Calendar) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	cp := *calendar
	s.calendars[cp.ID] = &cp
	s.calendarIDs = append(s.calendarIDs, cp.ID)
	return nil
}

func (s *Storage) UpdateCalendar(ctx context.Context, calendar *models.Calendar) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existed, ok := s.calendars[calendar.ID]
	if !ok || existed.UserID != calendar.UserID {
		return repo.ErrNotFound
	}
	cp := *calendar
	s.calendars[cp.ID] = &cp
	return nil
}

func (s *Storage) GetCalendar(ctx context.Context, userID string, id uuid.UUID) (*models.Calendar, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	calendar, ok := s.calendars[id]
	if !ok || calendar.UserID != userID {
		return nil, repo.ErrNotFound
	}
	cp := *calendar
	return &cp, nil
}

func (s *Storage) ListCalendars(ctx context.Context, userID string) ([]*models.Calendar, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*models.Calendar{}
	for _, id := range s.calendarIDs {
		calendar := s.calendars[id]
		if calendar.UserID != userID {
			continue
		}
		cp := *calendar
		res = append(res, &cp)
	}
	return res, nil
}

// DeleteCalendar удаляет календарь вместе с его задачами, шаблоны теряют ссылку.
func (s *Storage) DeleteCalendar(ctx context.Context, userID string, id uuid.UUID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	calendar, ok := s.calendars[id]
	if !ok || calendar.UserID != userID {
		return repo.ErrNotFound
	}
	owned := 0
	for _, c := range s.calendars {
		if c.UserID == userID {
			owned++
		}
	}
	if owned <= 1 {
		return repo.ErrLastCalendar
	}

	s.todoIDs = removeOwned(s.todoIDs, func(todoID uuid.UUID) bool {
		if s.todos[todoID].CalendarID != id {
			return false
		}
		delete(s.todos, todoID)
		return true
	})
	for _, tpl := range s.templates {
		if tpl.CalendarID != nil && *tpl.CalendarID == id {
			tpl.CalendarID = nil
		}
	}

	delete(s.calendars, id)
	s.calendarIDs = removeID(s.calendarIDs, id)
	return nil
}
