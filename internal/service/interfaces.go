package service

import (
	"context"

	"goodVibes/internal/models"

	"github.com/google/uuid"
)

type TodoRepository interface {
	CreateTodo(context.Context, *models.Todo) error
	CreateTodos(context.Context, []*models.Todo) error
	UpdateTodo(context.Context, *models.Todo) error
	GetTodo(ctx context.Context, userID string, id uuid.UUID) (*models.Todo, error)
	ListTodos(ctx context.Context, userID string) ([]*models.Todo, error)
	DeleteTodo(ctx context.Context, userID string, id uuid.UUID) error
	ListLegacyTodos(ctx context.Context, limit int) ([]*models.Todo, error)
}

type CalendarRepository interface {
	CreateCalendar(context.Context, *models.Calendar) error
	UpdateCalendar(context.Context, *models.Calendar) error
	GetCalendar(ctx context.Context, userID string, id uuid.UUID) (*models.Calendar, error)
	ListCalendars(ctx context.Context, userID string) ([]*models.Calendar, error)
	DeleteCalendar(ctx context.Context, userID string, id uuid.UUID) error
}

type TemplateRepository interface {
	ListTemplates(ctx context.Context, userID string) ([]*models.Template, error)
	GetTemplate(ctx context.Context, userID string, id uuid.UUID) (*models.Template, error)
}

type ImportRepository interface {
	ReplaceUserData(ctx context.Context, userID string, data models.UserData) error
}

// Storage - полный набор методов, который реализует каждое хранилище.
type Storage interface {
	TodoRepository
	CalendarRepository
	TemplateRepository
	ImportRepository
	HealthCheck(context.Context) error
	Close()
}

// TodoCache - кэш списков задач. GetList возвращает nil без ошибки при промахе.
// Invalidate увеличивает поколение пользователя, SetList с устаревшим
// поколением ничего не сохраняет.
type TodoCache interface {
	GetList(ctx context.Context, userID string) ([]*models.Todo, error)
	Generation(ctx context.Context, userID string) (int64, error)
	SetList(ctx context.Context, userID string, gen int64, list []*models.Todo) error
	Invalidate(ctx context.Context, userID string) error
}

type TokenStore interface {
	Create(ctx context.Context, username string) (string, error)
	Lookup(ctx context.Context, token string) (string, bool, error)
	Delete(ctx context.Context, token string) error
}
