package service_test

import (
	"context"
	"testing"
	"time"

	"goodVibes/internal/interaction"
	"goodVibes/internal/models"
	"goodVibes/internal/repository/inmemory"
	"goodVibes/internal/schedule"
	"goodVibes/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type interactionFixture struct {
	ctx   context.Context
	store *inmemory.Storage
	todos *service.TodoService
	svc   *service.InteractionService
	clock time.Time
	todo  *models.Todo
}

func newInteractionFixture(t *testing.T) *interactionFixture {
	t.Helper()
	f := &interactionFixture{
		ctx:   context.Background(),
		clock: time.Date(2024, 3, 7, 9, 0, 0, 0, time.UTC),
	}
	var cal *models.Calendar
	f.todos, f.store, cal = newMemoryTodoService(t, f.clock)

	calID := cal.ID
	todo, err := f.todos.Create(f.ctx, testUser, service.TodoInput{
		Title:      "Conference",
		StartDate:  "2024-03-05",
		EndDate:    "2024-03-07",
		CalendarID: &calID,
	})
	require.NoError(t, err)
	f.todo = todo

	f.svc = service.NewInteractionService(f.todos, service.InteractionConfig{
		Machine:    interaction.DefaultConfig(),
		SessionTTL: time.Minute,
	})
	f.svc.SetClock(func() time.Time { return f.clock })
	return f
}

func (f *interactionFixture) ref() *interaction.TaskRef {
	return &interaction.TaskRef{ID: f.todo.ID, StartDate: f.todo.StartDate, EndDate: f.todo.EndDate}
}

func taskClick(ref *interaction.TaskRef, at time.Time) interaction.Event {
	return interaction.Event{
		Type:   interaction.EventClick,
		At:     at,
		Target: interaction.ResolveTarget(ref, nil),
		Button: interaction.ButtonPrimary,
	}
}

func dayClick(day string, at time.Time) interaction.Event {
	d, err := schedule.ParseTaskDate(day, time.UTC)
	if err != nil {
		panic(err)
	}
	return interaction.Event{
		Type:   interaction.EventClick,
		At:     at,
		Target: interaction.ResolveTarget(nil, &d),
		Button: interaction.ButtonPrimary,
	}
}

func hasEffect(effects []interaction.Effect, typ interaction.EffectType) bool {
	for _, e := range effects {
		if e.Type == typ {
			return true
		}
	}
	return false
}

func TestInteractionService_ResizeUpdatesStoredTodo(t *testing.T) {
	f := newInteractionFixture(t)
	center := time.Date(2024, 3, 7, 12, 0, 0, 0, time.UTC)

	opened := f.svc.Open(f.ctx, testUser, center)
	assert.Equal(t, interaction.ModeIdle, opened.State.Mode())
	assert.Equal(t, "2024-03-05", schedule.FormatDate(opened.Window.Start()))

	t0 := f.clock
	_, err := f.svc.Handle(f.ctx, testUser, opened.ID, taskClick(f.ref(), t0))
	require.NoError(t, err)
	view, err := f.svc.Handle(f.ctx, testUser, opened.ID, taskClick(f.ref(), t0.Add(120*time.Millisecond)))
	require.NoError(t, err)
	require.True(t, hasEffect(view.Effects, interaction.EffectResizeEntered))
	assert.Equal(t, interaction.ModeResize, view.State.Mode())

	view, err = f.svc.Handle(f.ctx, testUser, opened.ID, dayClick("2024-03-10", t0.Add(time.Second)))
	require.NoError(t, err)
	require.Len(t, view.Updated, 1)
	assert.Equal(t, "2024-03-05", view.Updated[0].StartDate)
	assert.Equal(t, "2024-03-10", view.Updated[0].EndDate)

	view, err = f.svc.Handle(f.ctx, testUser, opened.ID, dayClick("2024-03-06", t0.Add(2*time.Second)))
	require.NoError(t, err)
	require.Len(t, view.Updated, 1)

	stored, err := f.todos.Get(f.ctx, testUser, f.todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-06", stored.StartDate)
	assert.Equal(t, "2024-03-10", stored.EndDate)

	resize, ok := view.State.(interaction.ResizeMode)
	require.True(t, ok)
	assert.Equal(t, "2024-03-06", resize.Task.StartDate)
	assert.Equal(t, "2024-03-10", resize.Task.EndDate)
}

func TestInteractionService_DropMovesTodo(t *testing.T) {
	f := newInteractionFixture(t)
	opened := f.svc.Open(f.ctx, testUser, f.clock)

	start, _ := schedule.ParseTaskDate("2024-03-05", time.UTC)
	target, _ := schedule.ParseTaskDate("2024-03-08", time.UTC)

	view, err := f.svc.Handle(f.ctx, testUser, opened.ID, interaction.Event{
		Type:   interaction.EventDragStart,
		At:     f.clock,
		Target: interaction.ResolveTarget(f.ref(), &start),
	})
	require.NoError(t, err)
	assert.True(t, view.Listening)

	view, err = f.svc.Handle(f.ctx, testUser, opened.ID, interaction.Event{
		Type:   interaction.EventDrop,
		At:     f.clock,
		Target: interaction.ResolveTarget(nil, &target),
	})
	require.NoError(t, err)
	require.Len(t, view.Updated, 1)
	assert.Equal(t, "2024-03-08", view.Updated[0].StartDate)
	assert.Equal(t, "2024-03-08", view.Updated[0].EndDate)

	view, err = f.svc.Handle(f.ctx, testUser, opened.ID, interaction.Event{Type: interaction.EventDragEnd, At: f.clock})
	require.NoError(t, err)
	require.True(t, hasEffect(view.Effects, interaction.EffectScheduleSettle))

	view, err = f.svc.Handle(f.ctx, testUser, opened.ID, interaction.Event{Type: interaction.EventSettle, At: f.clock})
	require.NoError(t, err)
	assert.Equal(t, interaction.ModeIdle, view.State.Mode())
	assert.False(t, view.Listening)
}

func TestInteractionService_FailedUpdateSurfacesError(t *testing.T) {
	f := newInteractionFixture(t)
	opened := f.svc.Open(f.ctx, testUser, f.clock)

	t0 := f.clock
	_, err := f.svc.Handle(f.ctx, testUser, opened.ID, taskClick(f.ref(), t0))
	require.NoError(t, err)
	_, err = f.svc.Handle(f.ctx, testUser, opened.ID, taskClick(f.ref(), t0.Add(100*time.Millisecond)))
	require.NoError(t, err)

	require.NoError(t, f.todos.Delete(f.ctx, testUser, f.todo.ID))

	view, err := f.svc.Handle(f.ctx, testUser, opened.ID, dayClick("2024-03-10", t0.Add(time.Second)))
	assertCode(t, err, service.CodeNotFound)

	// состояние сессии и эффекты события возвращаются вместе с ошибкой
	require.NotNil(t, view)
	assert.Equal(t, opened.ID, view.ID)
	assert.Equal(t, interaction.ModeResize, view.State.Mode())
	assert.Empty(t, view.Updated)
	require.NotEmpty(t, view.Effects)
	var update *interaction.Effect
	for i := range view.Effects {
		if view.Effects[i].Type == interaction.EffectUpdateTaskDates {
			update = &view.Effects[i]
		}
	}
	require.NotNil(t, update)
	assert.Equal(t, f.todo.ID, update.TaskID)
}

func TestInteractionService_Sessions(t *testing.T) {
	f := newInteractionFixture(t)
	opened := f.svc.Open(f.ctx, testUser, f.clock)

	t.Run("foreign user cannot use the session", func(t *testing.T) {
		_, err := f.svc.Handle(f.ctx, "someone", opened.ID, taskClick(f.ref(), f.clock))
		assertCode(t, err, service.CodeNotFound)
	})

	t.Run("unknown event type", func(t *testing.T) {
		_, err := f.svc.Handle(f.ctx, testUser, opened.ID, interaction.Event{Type: "hover"})
		assertCode(t, err, service.CodeValidation)
	})

	t.Run("navigate shifts the window by weeks", func(t *testing.T) {
		view, err := f.svc.Navigate(f.ctx, testUser, opened.ID, 1)
		require.NoError(t, err)
		assert.Equal(t, "2024-03-12", schedule.FormatDate(view.Window.Start()))

		view, err = f.svc.Navigate(f.ctx, testUser, opened.ID, -2)
		require.NoError(t, err)
		assert.Equal(t, "2024-02-27", schedule.FormatDate(view.Window.Start()))
	})

	t.Run("close discards the session", func(t *testing.T) {
		other := f.svc.Open(f.ctx, testUser, f.clock)
		require.NoError(t, f.svc.Close(f.ctx, testUser, other.ID))

		_, err := f.svc.Handle(f.ctx, testUser, other.ID, taskClick(f.ref(), f.clock))
		assertCode(t, err, service.CodeNotFound)
		assertCode(t, f.svc.Close(f.ctx, testUser, uuid.New()), service.CodeNotFound)
	})

	t.Run("sweep removes idle sessions", func(t *testing.T) {
		f.clock = f.clock.Add(2 * time.Minute)
		fresh := f.svc.Open(f.ctx, testUser, f.clock)

		assert.Equal(t, 1, f.svc.Sweep())

		_, err := f.svc.Navigate(f.ctx, testUser, opened.ID, 0)
		assertCode(t, err, service.CodeNotFound)
		_, err = f.svc.Navigate(f.ctx, testUser, fresh.ID, 0)
		assert.NoError(t, err)
	})
}
