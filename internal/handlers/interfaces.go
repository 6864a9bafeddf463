package handlers

import (
	"context"
	"time"

	"goodVibes/internal/interaction"
	"goodVibes/internal/models"
	"goodVibes/internal/service"

	"github.com/google/uuid"
)

type TodoService interface {
	List(ctx context.Context, userID string) ([]*models.Todo, error)
	Get(ctx context.Context, userID string, id uuid.UUID) (*models.Todo, error)
	Create(ctx context.Context, userID string, in service.TodoInput) (*models.Todo, error)
	CreateRecurring(ctx context.Context, userID string, in service.TodoInput, rec service.Recurrence) ([]*models.Todo, error)
	CreateFromTemplate(ctx context.Context, userID string, templateID uuid.UUID) (*models.Todo, error)
	Update(ctx context.Context, userID string, id uuid.UUID, options ...models.TodoOption) (*models.Todo, error)
	WithCompleted(done bool) models.TodoOption
	Delete(ctx context.Context, userID string, id uuid.UUID) error
	Today(ctx context.Context, userID string, includeCompleted bool) (*service.TodayView, error)
}

type CalendarService interface {
	List(ctx context.Context, userID string) ([]*models.Calendar, error)
	Create(ctx context.Context, userID string, in service.CalendarInput) (*models.Calendar, error)
	Update(ctx context.Context, userID string, id uuid.UUID, patch service.CalendarPatch) (*models.Calendar, error)
	Delete(ctx context.Context, userID string, id uuid.UUID) error
}

type TemplateService interface {
	List(ctx context.Context, userID string) ([]*models.Template, error)
}

type WeekService interface {
	Week(ctx context.Context, userID string, center time.Time, calendarID *uuid.UUID) (*service.WeekView, error)
}

type AnalyticsService interface {
	Summary(ctx context.Context, userID string, rng service.AnalyticsRange, now time.Time) (*service.Summary, error)
}

type ImportService interface {
	Import(ctx context.Context, userID string, payload service.ImportPayload) (*service.ImportResult, error)
}

type ExportService interface {
	ICS(ctx context.Context, userID string, calendarID *uuid.UUID) (string, error)
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
	Logout(ctx context.Context, token string) error
}

type InteractionService interface {
	Open(ctx context.Context, userID string, center time.Time) *service.SessionView
	Handle(ctx context.Context, userID string, id uuid.UUID, ev interaction.Event) (*service.SessionView, error)
	Navigate(ctx context.Context, userID string, id uuid.UUID, weeks int) (*service.SessionView, error)
	Close(ctx context.Context, userID string, id uuid.UUID) error
}

type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Services - зависимости обработчиков.
type Services struct {
	Todos        TodoService
	Calendars    CalendarService
	Templates    TemplateService
	Week         WeekService
	Analytics    AnalyticsService
	Import       ImportService
	Export       ExportService
	Auth         AuthService
	Interactions InteractionService
	Health       HealthChecker
}
