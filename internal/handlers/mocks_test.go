package handlers_test

import (
	"context"
	"time"

	"goodVibes/internal/handlers"
	"goodVibes/internal/interaction"
	"goodVibes/internal/models"
	"goodVibes/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockTodoService - мок сервиса задач
type MockTodoService struct {
	mock.Mock
}

var _ handlers.TodoService = (*MockTodoService)(nil)

func (m *MockTodoService) List(ctx context.Context, userID string) ([]*models.Todo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Todo), args.Error(1)
}

func (m *MockTodoService) Get(ctx context.Context, userID string, id uuid.UUID) (*models.Todo, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Todo), args.Error(1)
}

func (m *MockTodoService) Create(ctx context.Context, userID string, in service.TodoInput) (*models.Todo, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Todo), args.Error(1)
}

func (m *MockTodoService) CreateRecurring(ctx context.Context, userID string, in service.TodoInput, rec service.Recurrence) ([]*models.Todo, error) {
	args := m.Called(ctx, userID, in, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Todo), args.Error(1)
}

func (m *MockTodoService) CreateFromTemplate(ctx context.Context, userID string, templateID uuid.UUID) (*models.Todo, error) {
	args := m.Called(ctx, userID, templateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Todo), args.Error(1)
}

func (m *MockTodoService) Update(ctx context.Context, userID string, id uuid.UUID, options ...models.TodoOption) (*models.Todo, error) {
	args := m.Called(ctx, userID, id, options)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Todo), args.Error(1)
}

func (m *MockTodoService) WithCompleted(done bool) models.TodoOption {
	return models.WithCompleted(done, time.Date(2024, 3, 7, 9, 0, 0, 0, time.UTC))
}

func (m *MockTodoService) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockTodoService) Today(ctx context.Context, userID string, includeCompleted bool) (*service.TodayView, error) {
	args := m.Called(ctx, userID, includeCompleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TodayView), args.Error(1)
}

// MockCalendarService - мок сервиса календарей
type MockCalendarService struct {
	mock.Mock
}

var _ handlers.CalendarService = (*MockCalendarService)(nil)

func (m *MockCalendarService) List(ctx context.Context, userID string) ([]*models.Calendar, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Calendar), args.Error(1)
}

func (m *MockCalendarService) Create(ctx context.Context, userID string, in service.CalendarInput) (*models.Calendar, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Calendar), args.Error(1)
}

func (m *MockCalendarService) Update(ctx context.Context, userID string, id uuid.UUID, patch service.CalendarPatch) (*models.Calendar, error) {
	args := m.Called(ctx, userID, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Calendar), args.Error(1)
}

func (m *MockCalendarService) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type MockWeekService struct {
	mock.Mock
}

var _ handlers.WeekService = (*MockWeekService)(nil)

func (m *MockWeekService) Week(ctx context.Context, userID string, center time.Time, calendarID *uuid.UUID) (*service.WeekView, error) {
	args := m.Called(ctx, userID, center, calendarID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WeekView), args.Error(1)
}

type MockAnalyticsService struct {
	mock.Mock
}

var _ handlers.AnalyticsService = (*MockAnalyticsService)(nil)

func (m *MockAnalyticsService) Summary(ctx context.Context, userID string, rng service.AnalyticsRange, now time.Time) (*service.Summary, error) {
	args := m.Called(ctx, userID, rng, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Summary), args.Error(1)
}

type MockImportService struct {
	mock.Mock
}

var _ handlers.ImportService = (*MockImportService)(nil)

func (m *MockImportService) Import(ctx context.Context, userID string, payload service.ImportPayload) (*service.ImportResult, error) {
	args := m.Called(ctx, userID, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ImportResult), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

var _ handlers.AuthService = (*MockAuthService)(nil)

func (m *MockAuthService) Login(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

type MockInteractionService struct {
	mock.Mock
}

var _ handlers.InteractionService = (*MockInteractionService)(nil)

func (m *MockInteractionService) Open(ctx context.Context, userID string, center time.Time) *service.SessionView {
	args := m.Called(ctx, userID, center)
	return args.Get(0).(*service.SessionView)
}

func (m *MockInteractionService) Handle(ctx context.Context, userID string, id uuid.UUID, ev interaction.Event) (*service.SessionView, error) {
	args := m.Called(ctx, userID, id, ev)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SessionView), args.Error(1)
}

func (m *MockInteractionService) Navigate(ctx context.Context, userID string, id uuid.UUID, weeks int) (*service.SessionView, error) {
	args := m.Called(ctx, userID, id, weeks)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SessionView), args.Error(1)
}

func (m *MockInteractionService) Close(ctx context.Context, userID string, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type MockHealthChecker struct {
	mock.Mock
}

func (m *MockHealthChecker) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
