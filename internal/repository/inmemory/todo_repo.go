package inmemory

import (
	"context"
	"time"

	"goodVibes/internal/models"
	repo "goodVibes/internal/repository"

	"github.com/google/uuid"
)

func (s *Storage) CreateTodo(ctx context.Context, todo *models.Todo) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.insertTodo(todo)
	return nil
}

// CreateTodos сохраняет пачку задач целиком.
func (s *Storage) CreateTodos(ctx context.Context, todos []*models.Todo) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for _, todo := range todos {
		s.insertTodo(todo)
	}
	return nil
}

func (s *Storage) insertTodo(todo *models.Todo) {
	if todo.CreatedAt.IsZero() {
		todo.CreatedAt = time.Now()
	}
	todo.Version = 1

	cp := *todo
	s.todos[cp.ID] = &cp
	s.todoIDs = append(s.todoIDs, cp.ID)
}

func (s *Storage) UpdateTodo(ctx context.Context, todo *models.Todo) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existed, ok := s.todos[todo.ID]
	if !ok || existed.UserID != todo.UserID {
		return repo.ErrNotFound
	}
	if existed.Version != todo.Version {
		return repo.ErrVersionConflict
	}

	todo.Version++
	todo.CreatedAt = existed.CreatedAt
	cp := *todo
	s.todos[cp.ID] = &cp
	return nil
}

func (s *Storage) GetTodo(ctx context.Context, userID string, id uuid.UUID) (*models.Todo, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	todo, ok := s.todos[id]
	if !ok || todo.UserID != userID {
		return nil, repo.ErrNotFound
	}
	cp := *todo
	return &cp, nil
}

// ListTodos возвращает задачи пользователя в порядке добавления.
func (s *Storage) ListTodos(ctx context.Context, userID string) ([]*models.Todo, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*models.Todo{}
	for _, id := range s.todoIDs {
		todo := s.todos[id]
		if todo.UserID != userID {
			continue
		}
		cp := *todo
		res = append(res, &cp)
	}
	return res, nil
}

func (s *Storage) DeleteTodo(ctx context.Context, userID string, id uuid.UUID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	todo, ok := s.todos[id]
	if !ok || todo.UserID != userID {
		return repo.ErrNotFound
	}
	delete(s.todos, id)
	s.todoIDs = removeID(s.todoIDs, id)
	return nil
}

// ListLegacyTodos отдаёт записи всех пользователей, у которых остался только due_date.
func (s *Storage) ListLegacyTodos(ctx context.Context, limit int) ([]*models.Todo, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*models.Todo{}
	for _, id := range s.todoIDs {
		if len(res) >= limit {
			break
		}
		todo := s.todos[id]
		if !todo.IsLegacy() {
			continue
		}
		cp := *todo
		res = append(res, &cp)
	}
	return res, nil
}
