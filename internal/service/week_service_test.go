package service_test

import (
	"context"
	"testing"
	"time"

	"goodVibes/internal/models"
	"goodVibes/internal/repository/inmemory"
	"goodVibes/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekService_Week(t *testing.T) {
	ctx := context.Background()
	store := inmemory.New()
	personal := &models.Calendar{ID: uuid.New(), UserID: testUser, Name: "Personal", Color: "#000000", IsDefault: true}
	work := &models.Calendar{ID: uuid.New(), UserID: testUser, Name: "Work", Color: "#ffffff"}
	require.NoError(t, store.CreateCalendar(ctx, personal))
	require.NoError(t, store.CreateCalendar(ctx, work))

	add := func(title, start, end string, cal uuid.UUID, done bool) {
		require.NoError(t, store.CreateTodo(ctx, &models.Todo{
			ID: uuid.New(), UserID: testUser, Title: title, StartDate: start, EndDate: end,
			CalendarID: cal, Priority: models.PriorityMedium, IsCompleted: done,
		}))
	}
	add("Before window", "2024-03-01", "2024-03-02", personal.ID, false)
	add("Spans start", "2024-03-03", "2024-03-06", personal.ID, false)
	add("Same days", "2024-03-05", "2024-03-06", work.ID, false)
	add("Later", "2024-03-09", "2024-03-20", work.ID, false)
	add("No end", "2024-03-07", "", personal.ID, false)
	add("Finished", "2024-03-05", "2024-03-05", personal.ID, true)

	todos := service.NewTodoService(store, store, store, nil, time.UTC)
	svc := service.NewWeekService(todos, store)
	svc.SetClock(func() time.Time { return time.Date(2024, 3, 7, 10, 0, 0, 0, time.UTC) })

	center := time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)

	t.Run("all calendars", func(t *testing.T) {
		view, err := svc.Week(ctx, testUser, center, nil)
		require.NoError(t, err)

		assert.Equal(t, "2024-03-04", view.Window.Dates()[0])
		require.Len(t, view.Tasks, 4)

		spans := view.Tasks[0]
		assert.Equal(t, "Spans start", spans.Todo.Title)
		assert.Equal(t, 0, spans.StartDayIndex)
		assert.Equal(t, 2, spans.EndDayIndex)
		assert.Equal(t, 0, spans.Row)
		assert.True(t, spans.Overdue)
		assert.Equal(t, "#e6e6e6", spans.Background)

		same := view.Tasks[1]
		assert.Equal(t, 1, same.Row)
		assert.Equal(t, "#ffffff", same.Color)
		assert.Equal(t, "#cccccc", same.Border)

		later := view.Tasks[2]
		assert.Equal(t, 5, later.StartDayIndex)
		assert.Equal(t, 6, later.EndDayIndex)
		assert.Equal(t, 0, later.Row)
		assert.False(t, later.Overdue)

		finished := view.Tasks[3]
		assert.Equal(t, 2, finished.Row)
		assert.False(t, finished.Overdue)

		assert.Equal(t, 3, view.MaxLanes)
	})

	t.Run("single calendar", func(t *testing.T) {
		id := work.ID
		view, err := svc.Week(ctx, testUser, center, &id)
		require.NoError(t, err)
		require.Len(t, view.Tasks, 2)
		assert.Equal(t, 0, view.Tasks[0].Row)
		assert.Equal(t, 1, view.MaxLanes)
	})

	t.Run("unknown calendar", func(t *testing.T) {
		id := uuid.New()
		_, err := svc.Week(ctx, testUser, center, &id)
		assertCode(t, err, service.CodeNotFound)
	})
}
