package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"goodVibes/internal/models"
	"goodVibes/internal/repository/inmemory"
	"goodVibes/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockImportRepository - мок замены данных пользователя
type MockImportRepository struct {
	mock.Mock
}

var _ service.ImportRepository = (*MockImportRepository)(nil)

func (m *MockImportRepository) ReplaceUserData(ctx context.Context, userID string, data models.UserData) error {
	args := m.Called(ctx, userID, data)
	return args.Error(0)
}

func localStoragePayload() service.ImportPayload {
	created := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)
	return service.ImportPayload{
		Calendars: []service.ImportCalendar{
			{ID: "1700000000001", Name: "Home", Color: "#FF0000"},
			{ID: "1700000000002", Name: "Work", Color: "#00ff00", IsDefault: true},
		},
		Todos: []service.ImportTodo{
			{ID: "1700000000100", Title: "Legacy", DueDate: "2024-03-05T10:00:00.000Z", CalendarID: "1700000000001", CreatedAt: &created},
			{ID: "1700000000101", Title: "Orphan", StartDate: "2024-03-06", EndDate: "2024-03-08", CalendarID: "gone", Priority: "urgent"},
			{ID: "1700000000102", Title: "Done", StartDate: "2024-03-01", EndDate: "2024-03-01", IsCompleted: true, EstimatedTime: intPtr(30)},
		},
		Templates: []service.ImportTemplate{
			{ID: "1700000000200", Name: "Standup", Title: "Daily standup", CalendarID: "1700000000002", EstimatedTime: intPtr(-5)},
		},
	}
}

func TestImportService_Import(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	store := inmemory.New()
	svc := service.NewImportService(store, nil)
	svc.SetClock(func() time.Time { return now })

	res, err := svc.Import(ctx, testUser, localStoragePayload())
	require.NoError(t, err)
	assert.Equal(t, service.ImportResult{Todos: 3, Calendars: 2, Templates: 1}, *res)

	calendars, err := store.ListCalendars(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, calendars, 2)
	home, work := calendars[0], calendars[1]
	assert.Equal(t, "#ff0000", home.Color)
	assert.False(t, home.IsDefault)
	assert.True(t, work.IsDefault)

	todos, err := store.ListTodos(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, todos, 3)

	legacy := todos[0]
	assert.Equal(t, "2024-03-05", legacy.StartDate)
	assert.Equal(t, "2024-03-05", legacy.EndDate)
	assert.Empty(t, legacy.DueDate)
	assert.Equal(t, home.ID, legacy.CalendarID)
	assert.True(t, legacy.CreatedAt.Equal(time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)))

	orphan := todos[1]
	assert.Equal(t, work.ID, orphan.CalendarID, "задача без календаря попадает в календарь по умолчанию")
	assert.Equal(t, models.PriorityMedium, orphan.Priority)

	done := todos[2]
	require.NotNil(t, done.CompletedAt)
	assert.True(t, done.CompletedAt.Equal(now))

	templates, err := store.ListTemplates(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	require.NotNil(t, templates[0].CalendarID)
	assert.Equal(t, work.ID, *templates[0].CalendarID)
	assert.Nil(t, templates[0].EstimatedTime)
}

func TestImportService_IDsAreDeterministic(t *testing.T) {
	ctx := context.Background()
	first := inmemory.New()
	second := inmemory.New()

	_, err := service.NewImportService(first, nil).Import(ctx, testUser, localStoragePayload())
	require.NoError(t, err)
	_, err = service.NewImportService(second, nil).Import(ctx, testUser, localStoragePayload())
	require.NoError(t, err)

	a, err := first.ListTodos(ctx, testUser)
	require.NoError(t, err)
	b, err := second.ListTodos(ctx, testUser)
	require.NoError(t, err)
	for i := range a {
		assert.Equal(t, a[i].ID, b[i].ID)
	}

	own := uuid.New()
	_, err = service.NewImportService(first, nil).Import(ctx, testUser, service.ImportPayload{
		Todos: []service.ImportTodo{{ID: own.String(), Title: "Keeps id"}},
	})
	require.NoError(t, err)
	got, err := first.GetTodo(ctx, testUser, own)
	require.NoError(t, err)
	assert.Equal(t, "Keeps id", got.Title)
}

func TestImportService_ReplacesExistingData(t *testing.T) {
	ctx := context.Background()
	store := inmemory.New()
	svc := service.NewImportService(store, nil)

	_, err := svc.Import(ctx, testUser, localStoragePayload())
	require.NoError(t, err)

	res, err := svc.Import(ctx, testUser, service.ImportPayload{
		Todos: []service.ImportTodo{{ID: "1", Title: "Only one"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Todos)
	assert.Equal(t, 2, res.Calendars, "без календарей в данных создаются стандартные")

	todos, err := store.ListTodos(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	templates, err := store.ListTemplates(ctx, testUser)
	require.NoError(t, err)
	assert.Empty(t, templates)

	calendars, err := store.ListCalendars(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, calendars, 2)
	assert.Equal(t, "Personal", calendars[0].Name)
	assert.Equal(t, calendars[0].ID, todos[0].CalendarID)
}

// TestImportService_Rejects тестирует отказ без изменения данных
func TestImportService_Rejects(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		payload   service.ImportPayload
		setupMock func(*MockImportRepository)
		errorCode string
	}{
		{
			name:      "empty payload is a no-op",
			payload:   service.ImportPayload{},
			setupMock: func(*MockImportRepository) {},
		},
		{
			name: "todo without title",
			payload: service.ImportPayload{
				Todos: []service.ImportTodo{{ID: "1", Title: " "}},
			},
			setupMock: func(*MockImportRepository) {},
			errorCode: service.CodeValidation,
		},
		{
			name: "calendar without name",
			payload: service.ImportPayload{
				Calendars: []service.ImportCalendar{{ID: "1", Color: "#ffffff"}},
			},
			setupMock: func(*MockImportRepository) {},
			errorCode: service.CodeValidation,
		},
		{
			name: "duplicate todo ids",
			payload: service.ImportPayload{
				Todos: []service.ImportTodo{{ID: "7", Title: "a"}, {ID: "7", Title: "b"}},
			},
			setupMock: func(*MockImportRepository) {},
			errorCode: service.CodeValidation,
		},
		{
			name: "storage failure",
			payload: service.ImportPayload{
				Todos: []service.ImportTodo{{ID: "1", Title: "a"}},
			},
			setupMock: func(m *MockImportRepository) {
				m.On("ReplaceUserData", mock.Anything, testUser, mock.Anything).Return(errors.New("tx aborted"))
			},
			errorCode: "storage",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockImportRepository)
			tt.setupMock(repo)
			svc := service.NewImportService(repo, nil)

			res, err := svc.Import(ctx, testUser, tt.payload)
			switch tt.errorCode {
			case "":
				require.NoError(t, err)
				assert.Equal(t, service.ImportResult{}, *res)
				repo.AssertNotCalled(t, "ReplaceUserData", mock.Anything, mock.Anything, mock.Anything)
			case "storage":
				require.Error(t, err)
				assert.Contains(t, err.Error(), "импорт данных")
			default:
				assertCode(t, err, tt.errorCode)
				repo.AssertNotCalled(t, "ReplaceUserData", mock.Anything, mock.Anything, mock.Anything)
			}
			repo.AssertExpectations(t)
		})
	}
}
