package service_test

import (
	"context"

	"goodVibes/internal/models"
	"goodVibes/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockTodoRepository - мок хранилища задач
type MockTodoRepository struct {
	mock.Mock
}

var _ service.TodoRepository = (*MockTodoRepository)(nil)

func (m *MockTodoRepository) CreateTodo(ctx context.Context, t *models.Todo) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTodoRepository) CreateTodos(ctx context.Context, todos []*models.Todo) error {
	args := m.Called(ctx, todos)
	return args.Error(0)
}

func (m *MockTodoRepository) UpdateTodo(ctx context.Context, t *models.Todo) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTodoRepository) GetTodo(ctx context.Context, userID string, id uuid.UUID) (*models.Todo, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Todo), args.Error(1)
}

func (m *MockTodoRepository) ListTodos(ctx context.Context, userID string) ([]*models.Todo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Todo), args.Error(1)
}

func (m *MockTodoRepository) DeleteTodo(ctx context.Context, userID string, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockTodoRepository) ListLegacyTodos(ctx context.Context, limit int) ([]*models.Todo, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Todo), args.Error(1)
}

// MockCalendarRepository - мок хранилища календарей
type MockCalendarRepository struct {
	mock.Mock
}

var _ service.CalendarRepository = (*MockCalendarRepository)(nil)

func (m *MockCalendarRepository) CreateCalendar(ctx context.Context, c *models.Calendar) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCalendarRepository) UpdateCalendar(ctx context.Context, c *models.Calendar) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCalendarRepository) GetCalendar(ctx context.Context, userID string, id uuid.UUID) (*models.Calendar, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Calendar), args.Error(1)
}

func (m *MockCalendarRepository) ListCalendars(ctx context.Context, userID string) ([]*models.Calendar, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Calendar), args.Error(1)
}

func (m *MockCalendarRepository) DeleteCalendar(ctx context.Context, userID string, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

// MockTemplateRepository - мок хранилища шаблонов
type MockTemplateRepository struct {
	mock.Mock
}

var _ service.TemplateRepository = (*MockTemplateRepository)(nil)

func (m *MockTemplateRepository) ListTemplates(ctx context.Context, userID string) ([]*models.Template, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Template), args.Error(1)
}

func (m *MockTemplateRepository) GetTemplate(ctx context.Context, userID string, id uuid.UUID) (*models.Template, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Template), args.Error(1)
}

// MockTodoCache - мок кэша задач
type MockTodoCache struct {
	mock.Mock
}

var _ service.TodoCache = (*MockTodoCache)(nil)

func (m *MockTodoCache) GetList(ctx context.Context, userID string) ([]*models.Todo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Todo), args.Error(1)
}

func (m *MockTodoCache) Generation(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTodoCache) SetList(ctx context.Context, userID string, gen int64, list []*models.Todo) error {
	args := m.Called(ctx, userID, gen, list)
	return args.Error(0)
}

func (m *MockTodoCache) Invalidate(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
