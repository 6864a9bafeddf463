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

func TestAnalyticsService_Summary(t *testing.T) {
	ctx := context.Background()
	// среда
	now := time.Date(2024, 3, 6, 18, 0, 0, 0, time.UTC)
	store := inmemory.New()
	cal := defaultCal()
	require.NoError(t, store.CreateCalendar(ctx, cal))

	project := uuid.New()
	completedAt := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	seed := []*models.Todo{
		{Title: "Write quarterly report", Priority: models.PriorityHigh, EstimatedTime: intPtr(60), CreatedAt: time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC), IsCompleted: true, CompletedAt: &completedAt, ProjectID: &project},
		{Title: "Review quarterly numbers", Priority: models.PriorityHigh, EstimatedTime: intPtr(30), CreatedAt: time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC), ProjectID: &project},
		{Title: "Call plumber", Priority: models.PriorityLow, CreatedAt: time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC)},
		{Title: "Old task", Priority: models.PriorityMedium, CreatedAt: time.Date(2024, 2, 20, 9, 0, 0, 0, time.UTC)},
		{Title: "Ancient", Priority: models.PriorityNone, CreatedAt: time.Date(2023, 1, 1, 9, 0, 0, 0, time.UTC)},
	}
	for _, td := range seed {
		td.ID = uuid.New()
		td.UserID = testUser
		td.CalendarID = cal.ID
		require.NoError(t, store.CreateTodo(ctx, td))
	}

	todos := service.NewTodoService(store, store, store, nil, time.UTC)
	svc := service.NewAnalyticsService(todos, store)

	t.Run("week", func(t *testing.T) {
		sum, err := svc.Summary(ctx, testUser, service.RangeWeek, now)
		require.NoError(t, err)

		assert.Equal(t, "2024-03-04", sum.From)
		assert.Equal(t, "2024-03-10", sum.To)
		assert.Equal(t, 3, sum.Total)
		assert.Equal(t, 1, sum.Completed)
		assert.Equal(t, 2, sum.Pending)
		assert.Equal(t, 33, sum.CompletionRate)
		assert.Equal(t, 90, sum.EstimatedMinutes)
		assert.Equal(t, 60, sum.CompletedEstimatedMinutes)

		require.Len(t, sum.ByPriority, 2)
		assert.Equal(t, "high", sum.ByPriority[0].Key)
		assert.Equal(t, 2, sum.ByPriority[0].Total)
		assert.Equal(t, 50, sum.ByPriority[0].CompletionRate)
		assert.Equal(t, "low", sum.ByPriority[1].Key)

		require.Len(t, sum.ByProject, 1)
		assert.Equal(t, project.String(), sum.ByProject[0].Key)
		assert.Equal(t, 90, sum.ByProject[0].EstimatedMinutes)

		require.Len(t, sum.ByCalendar, 1)
		assert.Equal(t, "Personal", sum.ByCalendar[0].Name)

		require.Len(t, sum.Daily, 7)
		assert.Equal(t, service.DayStat{Date: "2024-03-04", Created: 1}, sum.Daily[0])
		assert.Equal(t, service.DayStat{Date: "2024-03-05", Created: 1, Completed: 1}, sum.Daily[1])
		require.NotNil(t, sum.MostProductiveDay)
		assert.Equal(t, "2024-03-05", sum.MostProductiveDay.Date)

		require.NotEmpty(t, sum.TopWords)
		assert.Equal(t, service.WordStat{Word: "quarterly", Count: 2}, sum.TopWords[0])
	})

	t.Run("month", func(t *testing.T) {
		sum, err := svc.Summary(ctx, testUser, service.RangeMonth, now)
		require.NoError(t, err)
		assert.Equal(t, "2024-02-05", sum.From)
		assert.Equal(t, 4, sum.Total)
		assert.Len(t, sum.Daily, 31)
	})

	t.Run("all", func(t *testing.T) {
		sum, err := svc.Summary(ctx, testUser, service.RangeAll, now)
		require.NoError(t, err)
		assert.Equal(t, 5, sum.Total)
		assert.Empty(t, sum.Daily)
		assert.Nil(t, sum.MostProductiveDay)
		assert.Empty(t, sum.From)
	})

	t.Run("unknown range", func(t *testing.T) {
		_, err := svc.Summary(ctx, testUser, "year", now)
		assertCode(t, err, service.CodeValidation)
	})

	t.Run("empty user", func(t *testing.T) {
		sum, err := svc.Summary(ctx, "nobody", service.RangeWeek, now)
		require.NoError(t, err)
		assert.Zero(t, sum.Total)
		assert.Zero(t, sum.CompletionRate)
		assert.Nil(t, sum.MostProductiveDay)
	})
}
