package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"goodVibes/internal/logger"
	"goodVibes/internal/models"
	rep "goodVibes/internal/repository"
	"goodVibes/internal/schedule"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const MaxRecurringCount = 30

// TodoInput - поля новой задачи. Пустой CalendarID означает календарь по умолчанию.
type TodoInput struct {
	Title         string
	Description   string
	StartDate     string
	EndDate       string
	CalendarID    *uuid.UUID
	ProjectID     *uuid.UUID
	Priority      models.Priority
	EstimatedTime *int
	IsCompleted   bool
}

type Recurrence struct {
	Pattern models.RecurrencePattern
	Count   int
}

type TodayView struct {
	Date      string
	Pending   []*models.Todo
	Completed []*models.Todo
}

type TodoService struct {
	todos     TodoRepository
	calendars CalendarRepository
	templates TemplateRepository
	cache     TodoCache
	group     singleflight.Group
	loc       *time.Location
	now       func() time.Time
}

// NewTodoService: cache может быть nil, тогда списки всегда читаются из хранилища.
func NewTodoService(todos TodoRepository, calendars CalendarRepository, templates TemplateRepository, cache TodoCache, loc *time.Location) *TodoService {
	if loc == nil {
		loc = time.Local
	}
	return &TodoService{
		todos:     todos,
		calendars: calendars,
		templates: templates,
		cache:     cache,
		loc:       loc,
		now:       time.Now,
	}
}

func (s *TodoService) Location() *time.Location {
	return s.loc
}

func (s *TodoService) List(ctx context.Context, userID string) ([]*models.Todo, error) {
	if s.cache != nil {
		cached, err := s.cache.GetList(ctx, userID)
		if err != nil {
			logger.Warn("Service: кэш задач недоступен", zap.String("user", userID), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	ch := s.group.DoChan(listKey(userID), func() (any, error) {
		// общий запрос не должен зависеть от отмены первого вызывающего
		fctx := context.WithoutCancel(ctx)

		var gen int64
		cacheable := false
		if s.cache != nil {
			g, err := s.cache.Generation(fctx, userID)
			if err != nil {
				logger.Warn("Service: кэш задач недоступен", zap.String("user", userID), zap.Error(err))
			} else {
				gen, cacheable = g, true
			}
		}

		list, err := s.todos.ListTodos(fctx, userID)
		if err != nil {
			return nil, fmt.Errorf("получение задач: %w", err)
		}
		list = schedule.MigrateAll(list)

		if cacheable {
			if err := s.cache.SetList(fctx, userID, gen, list); err != nil {
				logger.Warn("Service: не удалось сохранить задачи в кэш", zap.String("user", userID), zap.Error(err))
			}
		}
		return list, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]*models.Todo), nil
	}
}

func listKey(userID string) string {
	return "todos:" + userID
}

func (s *TodoService) Get(ctx context.Context, userID string, id uuid.UUID) (*models.Todo, error) {
	todo, err := s.todos.GetTodo(ctx, userID, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Задача не найдена", zap.String("task_id", id.String()))
		}
		return nil, repoError(err, resourceTodo, id.String(), "получение задачи")
	}
	migrated, _ := schedule.MigrateLegacy(*todo)
	return &migrated, nil
}

func (s *TodoService) Create(ctx context.Context, userID string, in TodoInput) (*models.Todo, error) {
	todo, err := s.prepare(ctx, userID, in)
	if err != nil {
		return nil, err
	}

	if err := s.todos.CreateTodo(ctx, todo); err != nil {
		return nil, fmt.Errorf("создание задачи: %w", err)
	}
	s.invalidate(ctx, userID)

	logger.Info("Service: задача создана", zap.String("task_id", todo.ID.String()), zap.String("user", userID))
	return todo, nil
}

// CreateRecurring создаёт серию задач. Обе даты сдвигаются на шаг правила,
// если заданы обе; название со второй задачи получает суффикс " (n)".
func (s *TodoService) CreateRecurring(ctx context.Context, userID string, in TodoInput, rec Recurrence) ([]*models.Todo, error) {
	if rec.Count < 1 || rec.Count > MaxRecurringCount {
		return nil, NewValidationError("recurring_count", fmt.Sprintf("от 1 до %d", MaxRecurringCount))
	}
	if !rec.Pattern.Valid() {
		return nil, NewValidationError("recurring_pattern", "ожидается daily, weekly или monthly")
	}
	if rec.Count == 1 {
		todo, err := s.Create(ctx, userID, in)
		if err != nil {
			return nil, err
		}
		return []*models.Todo{todo}, nil
	}

	base, err := s.prepare(ctx, userID, in)
	if err != nil {
		return nil, err
	}

	starts, ends, err := recurrenceDates(base.StartDate, base.EndDate, rec, s.loc)
	if err != nil {
		return nil, NewValidationError("start_date", err.Error())
	}

	count := rec.Count
	if starts != nil {
		count = len(starts)
	}
	batch := make([]*models.Todo, 0, count)
	for i := 0; i < count; i++ {
		item := *base
		item.ID = uuid.New()
		item.IsRecurring = true
		item.RecurringPattern = rec.Pattern
		total := rec.Count
		item.RecurringCount = &total
		if i > 0 {
			item.Title = fmt.Sprintf("%s (%d)", base.Title, i+1)
		}
		if starts != nil {
			item.StartDate = starts[i]
			item.EndDate = ends[i]
		}
		batch = append(batch, &item)
	}

	if err := s.todos.CreateTodos(ctx, batch); err != nil {
		return nil, fmt.Errorf("создание серии задач: %w", err)
	}
	s.invalidate(ctx, userID)

	logger.Info("Service: серия задач создана",
		zap.String("user", userID),
		zap.String("pattern", string(rec.Pattern)),
		zap.Int("count", len(batch)))
	return batch, nil
}

func (s *TodoService) CreateFromTemplate(ctx context.Context, userID string, templateID uuid.UUID) (*models.Todo, error) {
	tpl, err := s.templates.GetTemplate(ctx, userID, templateID)
	if err != nil {
		return nil, repoError(err, resourceTemplate, templateID.String(), "получение шаблона")
	}

	in := TodoInput{
		Title:         tpl.Title,
		Description:   tpl.Description,
		StartDate:     tpl.StartDate,
		EndDate:       tpl.EndDate,
		Priority:      tpl.Priority,
		EstimatedTime: tpl.EstimatedTime,
	}
	if strings.TrimSpace(in.Title) == "" {
		in.Title = tpl.Name
	}
	// календарь шаблона мог быть удалён, тогда берётся календарь по умолчанию
	if tpl.CalendarID != nil {
		if _, err := s.calendars.GetCalendar(ctx, userID, *tpl.CalendarID); err == nil {
			in.CalendarID = tpl.CalendarID
		}
	}
	return s.Create(ctx, userID, in)
}

func (s *TodoService) Update(ctx context.Context, userID string, id uuid.UUID, options ...models.TodoOption) (*models.Todo, error) {
	todo, err := s.todos.GetTodo(ctx, userID, id)
	if err != nil {
		return nil, repoError(err, resourceTodo, id.String(), "получение задачи")
	}
	migrated, _ := schedule.MigrateLegacy(*todo)
	todo = &migrated
	prevCalendar := todo.CalendarID

	todo.Apply(options...)

	if err := s.validate(todo); err != nil {
		return nil, err
	}
	if todo.CalendarID != prevCalendar {
		if _, err := s.calendars.GetCalendar(ctx, userID, todo.CalendarID); err != nil {
			return nil, repoError(err, resourceCalendar, todo.CalendarID.String(), "получение календаря")
		}
	}

	if err := s.todos.UpdateTodo(ctx, todo); err != nil {
		return nil, repoError(err, resourceTodo, id.String(), "обновление задачи")
	}
	s.invalidate(ctx, userID)
	return todo, nil
}

// WithCompleted - отметка выполнения с текущим временем сервиса.
func (s *TodoService) WithCompleted(done bool) models.TodoOption {
	return models.WithCompleted(done, s.now())
}

func (s *TodoService) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	if err := s.todos.DeleteTodo(ctx, userID, id); err != nil {
		return repoError(err, resourceTodo, id.String(), "удаление задачи")
	}
	s.invalidate(ctx, userID)
	logger.Info("Service: задача удалена", zap.String("task_id", id.String()))
	return nil
}

// Today - задачи, диапазон которых покрывает сегодняшний день, и задачи без
// дат, созданные сегодня.
func (s *TodoService) Today(ctx context.Context, userID string, includeCompleted bool) (*TodayView, error) {
	list, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := schedule.Day(s.now().In(s.loc))
	view := &TodayView{Date: schedule.FormatDate(today)}
	for _, todo := range list {
		if !coversToday(*todo, today) {
			continue
		}
		if todo.IsCompleted {
			if includeCompleted {
				view.Completed = append(view.Completed, todo)
			}
			continue
		}
		view.Pending = append(view.Pending, todo)
	}
	return view, nil
}

func coversToday(todo models.Todo, today time.Time) bool {
	if todo.HasRange() {
		return schedule.CoversDay(todo, today)
	}
	return !todo.CreatedAt.IsZero() && schedule.SameDay(todo.CreatedAt.In(today.Location()), today)
}

func (s *TodoService) prepare(ctx context.Context, userID string, in TodoInput) (*models.Todo, error) {
	now := s.now()
	todo := &models.Todo{
		ID:            uuid.New(),
		UserID:        userID,
		Title:         strings.TrimSpace(in.Title),
		Description:   in.Description,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		ProjectID:     in.ProjectID,
		Priority:      in.Priority,
		EstimatedTime: in.EstimatedTime,
		CreatedAt:     now,
	}
	if todo.Priority == "" {
		todo.Priority = models.PriorityMedium
	}
	todo.Apply(models.WithCompleted(in.IsCompleted, now))

	if err := s.validate(todo); err != nil {
		return nil, err
	}

	calendarID, err := s.resolveCalendar(ctx, userID, in.CalendarID)
	if err != nil {
		return nil, err
	}
	todo.CalendarID = calendarID
	return todo, nil
}

func (s *TodoService) validate(todo *models.Todo) error {
	todo.Title = strings.TrimSpace(todo.Title)
	if todo.Title == "" {
		return NewValidationError("title", "название не может быть пустым")
	}
	if !todo.Priority.Valid() {
		return NewValidationError("priority", "ожидается high, medium, low или none")
	}
	if todo.EstimatedTime != nil && *todo.EstimatedTime <= 0 {
		return NewValidationError("estimated_time", "должно быть больше нуля")
	}
	if err := schedule.ValidateRange(todo.StartDate, todo.EndDate, s.loc); err != nil {
		if errors.Is(err, schedule.ErrInvertedRange) {
			return NewValidationError("end_date", "дата окончания раньше даты начала")
		}
		return NewValidationError("start_date", err.Error())
	}
	return nil
}

func (s *TodoService) resolveCalendar(ctx context.Context, userID string, id *uuid.UUID) (uuid.UUID, error) {
	if id != nil {
		if _, err := s.calendars.GetCalendar(ctx, userID, *id); err != nil {
			return uuid.Nil, repoError(err, resourceCalendar, id.String(), "получение календаря")
		}
		return *id, nil
	}

	calendars, err := s.calendars.ListCalendars(ctx, userID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("получение календарей: %w", err)
	}
	def := defaultCalendar(calendars)
	if def == nil {
		return uuid.Nil, NewValidationError("calendar_id", "у пользователя нет календарей")
	}
	return def.ID, nil
}

func (s *TodoService) invalidate(ctx context.Context, userID string) {
	// запрос, начатый до изменения, не раздаётся новым читателям
	s.group.Forget(listKey(userID))
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		logger.Warn("Service: не удалось сбросить кэш задач", zap.String("user", userID), zap.Error(err))
	}
}

// defaultCalendar возвращает календарь по умолчанию, иначе первый.
func defaultCalendar(calendars []*models.Calendar) *models.Calendar {
	for _, c := range calendars {
		if c.IsDefault {
			return c
		}
	}
	if len(calendars) > 0 {
		return calendars[0]
	}
	return nil
}
