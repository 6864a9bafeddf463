package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"goodVibes/internal/models"
	rep "goodVibes/internal/repository"
	"goodVibes/internal/repository/inmemory"
	"goodVibes/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// TestCalendarService_Delete тестирует удаление календаря
func TestCalendarService_Delete(t *testing.T) {
	ctx := context.Background()
	personal := &models.Calendar{ID: uuid.New(), UserID: testUser, Name: "Personal", Color: "#3b82f6", IsDefault: true}
	work := &models.Calendar{ID: uuid.New(), UserID: testUser, Name: "Work", Color: "#10b981"}

	tests := []struct {
		name        string
		target      uuid.UUID
		setupMock   func(*MockCalendarRepository, *MockTodoCache)
		expectError bool
		errorCode   string
	}{
		{
			name:   "success - non default calendar",
			target: work.ID,
			setupMock: func(m *MockCalendarRepository, c *MockTodoCache) {
				m.On("ListCalendars", mock.Anything, testUser).Return([]*models.Calendar{personal, work}, nil)
				m.On("DeleteCalendar", mock.Anything, testUser, work.ID).Return(nil)
				c.On("Invalidate", mock.Anything, testUser).Return(nil)
			},
		},
		{
			name:   "success - default moves to the remaining calendar",
			target: personal.ID,
			setupMock: func(m *MockCalendarRepository, c *MockTodoCache) {
				m.On("ListCalendars", mock.Anything, testUser).Return([]*models.Calendar{
					{ID: personal.ID, UserID: testUser, Name: "Personal", Color: "#3b82f6", IsDefault: true},
					{ID: work.ID, UserID: testUser, Name: "Work", Color: "#10b981"},
				}, nil)
				m.On("DeleteCalendar", mock.Anything, testUser, personal.ID).Return(nil)
				m.On("UpdateCalendar", mock.Anything, mock.MatchedBy(func(cal *models.Calendar) bool {
					return cal.ID == work.ID && cal.IsDefault
				})).Return(nil)
				c.On("Invalidate", mock.Anything, testUser).Return(nil)
			},
		},
		{
			name:   "error - sole calendar is rejected before any mutation",
			target: personal.ID,
			setupMock: func(m *MockCalendarRepository, c *MockTodoCache) {
				m.On("ListCalendars", mock.Anything, testUser).Return([]*models.Calendar{personal}, nil)
			},
			expectError: true,
			errorCode:   service.CodeInvariant,
		},
		{
			name:   "error - unknown calendar",
			target: uuid.New(),
			setupMock: func(m *MockCalendarRepository, c *MockTodoCache) {
				m.On("ListCalendars", mock.Anything, testUser).Return([]*models.Calendar{personal, work}, nil)
			},
			expectError: true,
			errorCode:   service.CodeNotFound,
		},
		{
			name:   "error - storage failure",
			target: work.ID,
			setupMock: func(m *MockCalendarRepository, c *MockTodoCache) {
				m.On("ListCalendars", mock.Anything, testUser).Return(nil, errors.New("timeout"))
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calendars := new(MockCalendarRepository)
			cache := new(MockTodoCache)
			tt.setupMock(calendars, cache)

			svc := service.NewCalendarService(calendars, cache)
			err := svc.Delete(ctx, testUser, tt.target)

			if tt.expectError {
				assert.Error(t, err)
				if tt.errorCode != "" {
					assertCode(t, err, tt.errorCode)
				}
				calendars.AssertNotCalled(t, "DeleteCalendar", mock.Anything, mock.Anything, mock.Anything)
				calendars.AssertNotCalled(t, "UpdateCalendar", mock.Anything, mock.Anything)
				cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
			}

			calendars.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestCalendarService_DeleteCascadesTodos(t *testing.T) {
	ctx := context.Background()
	store := inmemory.New()
	calendars := service.NewCalendarService(store, nil)
	todos := service.NewTodoService(store, store, store, nil, nil)

	personal, err := calendars.Create(ctx, testUser, service.CalendarInput{Name: "Personal", Color: "#3B82F6"})
	require.NoError(t, err)
	work, err := calendars.Create(ctx, testUser, service.CalendarInput{Name: "Work", Color: "#10b981"})
	require.NoError(t, err)

	workID := work.ID
	_, err = todos.Create(ctx, testUser, service.TodoInput{Title: "Deploy", CalendarID: &workID})
	require.NoError(t, err)
	kept, err := todos.Create(ctx, testUser, service.TodoInput{Title: "Groceries"})
	require.NoError(t, err)
	assert.Equal(t, personal.ID, kept.CalendarID)

	require.NoError(t, calendars.Delete(ctx, testUser, work.ID))

	list, err := todos.List(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Groceries", list[0].Title)

	err = calendars.Delete(ctx, testUser, personal.ID)
	assertCode(t, err, service.CodeInvariant)

	remaining, err := calendars.List(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	list, err = todos.List(ctx, testUser)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

// listBarrier задерживает ListCalendars, пока его не вызовут все участники,
// чтобы оба удаления прошли предварительную проверку одновременно.
type listBarrier struct {
	*inmemory.Storage
	arrived *sync.WaitGroup
}

func (b listBarrier) ListCalendars(ctx context.Context, userID string) ([]*models.Calendar, error) {
	list, err := b.Storage.ListCalendars(ctx, userID)
	b.arrived.Done()
	b.arrived.Wait()
	return list, err
}

func TestCalendarService_ConcurrentDeleteKeepsOneCalendar(t *testing.T) {
	ctx := context.Background()
	store := inmemory.New()
	personal := &models.Calendar{ID: uuid.New(), UserID: testUser, Name: "Personal", Color: "#3b82f6", IsDefault: true}
	work := &models.Calendar{ID: uuid.New(), UserID: testUser, Name: "Work", Color: "#10b981"}
	require.NoError(t, store.CreateCalendar(ctx, personal))
	require.NoError(t, store.CreateCalendar(ctx, work))

	arrived := &sync.WaitGroup{}
	arrived.Add(2)
	svc := service.NewCalendarService(listBarrier{Storage: store, arrived: arrived}, nil)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, id := range []uuid.UUID{personal.ID, work.ID} {
		wg.Add(1)
		go func(i int, id uuid.UUID) {
			defer wg.Done()
			errs[i] = svc.Delete(ctx, testUser, id)
		}(i, id)
	}
	wg.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			assertCode(t, err, service.CodeInvariant)
			failed++
		}
	}
	assert.Equal(t, 1, failed, "ровно одно удаление должно получить отказ")

	remaining, err := store.ListCalendars(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.True(t, remaining[0].IsDefault, "оставшийся календарь становится календарём по умолчанию")
}

func TestCalendarService_DeleteRefusedByStorage(t *testing.T) {
	calendars := new(MockCalendarRepository)
	cache := new(MockTodoCache)
	personal := &models.Calendar{ID: uuid.New(), UserID: testUser, Name: "Personal", Color: "#3b82f6", IsDefault: true}
	work := &models.Calendar{ID: uuid.New(), UserID: testUser, Name: "Work", Color: "#10b981"}
	calendars.On("ListCalendars", mock.Anything, testUser).Return([]*models.Calendar{personal, work}, nil)
	calendars.On("DeleteCalendar", mock.Anything, testUser, work.ID).Return(rep.ErrLastCalendar)

	err := service.NewCalendarService(calendars, cache).Delete(context.Background(), testUser, work.ID)

	assertCode(t, err, service.CodeInvariant)
	cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
	calendars.AssertNotCalled(t, "UpdateCalendar", mock.Anything, mock.Anything)
	calendars.AssertExpectations(t)
}

func TestCalendarService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("first calendar becomes default", func(t *testing.T) {
		svc := service.NewCalendarService(inmemory.New(), nil)

		first, err := svc.Create(ctx, testUser, service.CalendarInput{Name: "Home", Color: "#ABCDEF"})
		require.NoError(t, err)
		assert.True(t, first.IsDefault)
		assert.Equal(t, "#abcdef", first.Color)

		second, err := svc.Create(ctx, testUser, service.CalendarInput{Name: "Gym", Color: "#111111"})
		require.NoError(t, err)
		assert.False(t, second.IsDefault)
	})

	t.Run("explicit default replaces the previous one", func(t *testing.T) {
		svc := service.NewCalendarService(inmemory.New(), nil)

		first, err := svc.Create(ctx, testUser, service.CalendarInput{Name: "Home", Color: "#abcdef"})
		require.NoError(t, err)
		second, err := svc.Create(ctx, testUser, service.CalendarInput{Name: "Work", Color: "#123456", IsDefault: true})
		require.NoError(t, err)

		list, err := svc.List(ctx, testUser)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, first.ID, list[0].ID)
		assert.False(t, list[0].IsDefault)
		assert.Equal(t, second.ID, list[1].ID)
		assert.True(t, list[1].IsDefault)
	})

	tests := []struct {
		name  string
		input service.CalendarInput
	}{
		{name: "empty name", input: service.CalendarInput{Name: "  ", Color: "#abcdef"}},
		{name: "short color", input: service.CalendarInput{Name: "Home", Color: "#abc"}},
		{name: "color without hash", input: service.CalendarInput{Name: "Home", Color: "abcdef"}},
		{name: "not hex", input: service.CalendarInput{Name: "Home", Color: "#gggggg"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calendars := new(MockCalendarRepository)
			svc := service.NewCalendarService(calendars, nil)

			_, err := svc.Create(ctx, testUser, tt.input)
			assertCode(t, err, service.CodeValidation)
			calendars.AssertNotCalled(t, "CreateCalendar", mock.Anything, mock.Anything)
		})
	}
}

func TestCalendarService_Update(t *testing.T) {
	ctx := context.Background()
	store := inmemory.New()
	svc := service.NewCalendarService(store, nil)

	home, err := svc.Create(ctx, testUser, service.CalendarInput{Name: "Home", Color: "#abcdef"})
	require.NoError(t, err)
	work, err := svc.Create(ctx, testUser, service.CalendarInput{Name: "Work", Color: "#123456"})
	require.NoError(t, err)

	name := "Office"
	updated, err := svc.Update(ctx, testUser, work.ID, service.CalendarPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Office", updated.Name)
	assert.Equal(t, "#123456", updated.Color)

	isDefault := true
	_, err = svc.Update(ctx, testUser, work.ID, service.CalendarPatch{IsDefault: &isDefault})
	require.NoError(t, err)

	reloadedHome, err := store.GetCalendar(ctx, testUser, home.ID)
	require.NoError(t, err)
	assert.False(t, reloadedHome.IsDefault)

	bad := "red"
	_, err = svc.Update(ctx, testUser, work.ID, service.CalendarPatch{Color: &bad})
	assertCode(t, err, service.CodeValidation)

	_, err = svc.Update(ctx, testUser, uuid.New(), service.CalendarPatch{Name: &name})
	assertCode(t, err, service.CodeNotFound)
}

func TestCalendarService_EnsureDefaults(t *testing.T) {
	ctx := context.Background()
	store := inmemory.New()
	svc := service.NewCalendarService(store, nil)

	created, err := svc.EnsureDefaults(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, "Personal", created[0].Name)
	assert.Equal(t, "#3b82f6", created[0].Color)
	assert.True(t, created[0].IsDefault)
	assert.Equal(t, "Work", created[1].Name)
	assert.False(t, created[1].IsDefault)

	again, err := svc.EnsureDefaults(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, again, 2)
	assert.Equal(t, created[0].ID, again[0].ID)
}

func TestCalendarService_GetMissingMapsToNotFound(t *testing.T) {
	calendars := new(MockCalendarRepository)
	id := uuid.New()
	calendars.On("GetCalendar", mock.Anything, testUser, id).Return(nil, rep.ErrNotFound)

	svc := service.NewCalendarService(calendars, nil)
	name := "x"
	_, err := svc.Update(context.Background(), testUser, id, service.CalendarPatch{Name: &name})

	assertCode(t, err, service.CodeNotFound)
	calendars.AssertExpectations(t)
}
