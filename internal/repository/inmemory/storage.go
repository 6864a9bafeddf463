package inmemory

import (
	"context"
	"sync"

	"goodVibes/internal/logger"
	"goodVibes/internal/models"

	"github.com/google/uuid"
)

// Storage держит все записи в памяти. Наружу отдаются только копии,
// поэтому изменения вне хранилища не видны до Update.
type Storage struct {
	mtx *sync.RWMutex

	todos   map[uuid.UUID]*models.Todo
	todoIDs []uuid.UUID

	calendars   map[uuid.UUID]*models.Calendar
	calendarIDs []uuid.UUID

	templates   map[uuid.UUID]*models.Template
	templateIDs []uuid.UUID
}

func New() *Storage {
	return &Storage{
		mtx:         &sync.RWMutex{},
		todos:       make(map[uuid.UUID]*models.Todo),
		todoIDs:     []uuid.UUID{},
		calendars:   make(map[uuid.UUID]*models.Calendar),
		calendarIDs: []uuid.UUID{},
		templates:   make(map[uuid.UUID]*models.Template),
		templateIDs: []uuid.UUID{},
	}
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	logger.Debug("Repository: Соединение стабильно")
	return nil
}

func (s *Storage) Close() {}

// ReplaceUserData заменяет все записи пользователя одним действием.
func (s *Storage) ReplaceUserData(ctx context.Context, userID string, data models.UserData) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.todoIDs = removeOwned(s.todoIDs, func(id uuid.UUID) bool {
		if s.todos[id].UserID != userID {
			return false
		}
		delete(s.todos, id)
		return true
	})
	s.templateIDs = removeOwned(s.templateIDs, func(id uuid.UUID) bool {
		if s.templates[id].UserID != userID {
			return false
		}
		delete(s.templates, id)
		return true
	})
	s.calendarIDs = removeOwned(s.calendarIDs, func(id uuid.UUID) bool {
		if s.calendars[id].UserID != userID {
			return false
		}
		delete(s.calendars, id)
		return true
	})

	for _, c := range data.Calendars {
		cp := *c
		s.calendars[cp.ID] = &cp
		s.calendarIDs = append(s.calendarIDs, cp.ID)
	}
	for _, t := range data.Todos {
		cp := *t
		if cp.Version == 0 {
			cp.Version = 1
		}
		s.todos[cp.ID] = &cp
		s.todoIDs = append(s.todoIDs, cp.ID)
	}
	for _, t := range data.Templates {
		cp := *t
		s.templates[cp.ID] = &cp
		s.templateIDs = append(s.templateIDs, cp.ID)
	}
	return nil
}

// removeOwned оставляет в списке только id, для которых drop вернул false.
func removeOwned(ids []uuid.UUID, drop func(uuid.UUID) bool) []uuid.UUID {
	res := ids[:0]
	for _, id := range ids {
		if !drop(id) {
			res = append(res, id)
		}
	}
	return res
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for ind, val := range ids {
		if val == id {
			return append(ids[:ind], ids[ind+1:]...)
		}
	}
	return ids
}
