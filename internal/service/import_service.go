package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"goodVibes/internal/logger"
	"goodVibes/internal/models"
	"goodVibes/internal/schedule"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// пространство имён для детерминированных идентификаторов импортируемых записей
var importNamespace = uuid.MustParse("6f1c5b2e-8d4a-4e37-9a61-2b7c0f9e4d13")

type ImportCalendar struct {
	ID        string
	Name      string
	Color     string
	IsDefault bool
}

type ImportTodo struct {
	ID               string
	Title            string
	Description      string
	StartDate        string
	EndDate          string
	DueDate          string
	CalendarID       string
	ProjectID        string
	Priority         string
	EstimatedTime    *int
	IsCompleted      bool
	CreatedAt        *time.Time
	CompletedAt      *time.Time
	IsRecurring      bool
	RecurringPattern string
	RecurringCount   *int
}

type ImportTemplate struct {
	ID            string
	Name          string
	Title         string
	Description   string
	StartDate     string
	EndDate       string
	EstimatedTime *int
	Priority      string
	CalendarID    string
}

type ImportPayload struct {
	Calendars []ImportCalendar
	Todos     []ImportTodo
	Templates []ImportTemplate
}

func (p ImportPayload) Empty() bool {
	return len(p.Calendars) == 0 && len(p.Todos) == 0 && len(p.Templates) == 0
}

type ImportResult struct {
	Todos     int
	Calendars int
	Templates int
}

type ImportService struct {
	repo  ImportRepository
	cache TodoCache
	now   func() time.Time
}

func NewImportService(repo ImportRepository, cache TodoCache) *ImportService {
	return &ImportService{
		repo:  repo,
		cache: cache,
		now:   time.Now,
	}
}

// Import заменяет все календари, задачи и шаблоны пользователя данными из payload.
// Пустой payload ничего не меняет.
func (s *ImportService) Import(ctx context.Context, userID string, payload ImportPayload) (*ImportResult, error) {
	if payload.Empty() {
		logger.Info("Service: импорт без данных", zap.String("user", userID))
		return &ImportResult{}, nil
	}

	data, err := s.convert(userID, payload)
	if err != nil {
		return nil, err
	}

	if err := s.repo.ReplaceUserData(ctx, userID, data); err != nil {
		return nil, fmt.Errorf("импорт данных: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, userID); err != nil {
			logger.Warn("Service: не удалось сбросить кэш задач", zap.String("user", userID), zap.Error(err))
		}
	}

	res := &ImportResult{
		Todos:     len(data.Todos),
		Calendars: len(data.Calendars),
		Templates: len(data.Templates),
	}
	logger.Info("Service: данные импортированы",
		zap.String("user", userID),
		zap.Int("todos", res.Todos),
		zap.Int("calendars", res.Calendars),
		zap.Int("templates", res.Templates))
	return res, nil
}

func (s *ImportService) convert(userID string, payload ImportPayload) (models.UserData, error) {
	var data models.UserData
	now := s.now()

	calendarIDs := make(map[uuid.UUID]struct{}, len(payload.Calendars))
	for i, c := range payload.Calendars {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return data, indexedValidation("calendars", i, "name", "название не может быть пустым")
		}
		color := strings.ToLower(strings.TrimSpace(c.Color))
		if !schedule.ValidColor(color) {
			color = defaultCalendars[0].Color
		}
		calendar := &models.Calendar{
			ID:        importID(userID, c.ID),
			UserID:    userID,
			Name:      name,
			Color:     color,
			IsDefault: c.IsDefault,
		}
		if _, dup := calendarIDs[calendar.ID]; dup {
			return data, indexedValidation("calendars", i, "id", "повторяющийся идентификатор")
		}
		calendarIDs[calendar.ID] = struct{}{}
		data.Calendars = append(data.Calendars, calendar)
	}

	// у пользователя всегда остаётся хотя бы один календарь
	if len(data.Calendars) == 0 {
		for _, tmpl := range defaultCalendars {
			calendar := tmpl
			calendar.ID = uuid.New()
			calendar.UserID = userID
			calendarIDs[calendar.ID] = struct{}{}
			data.Calendars = append(data.Calendars, &calendar)
		}
	}
	fallback := normalizeDefault(data.Calendars)

	todoIDs := make(map[uuid.UUID]struct{}, len(payload.Todos))

	for i, t := range payload.Todos {
		title := strings.TrimSpace(t.Title)
		if title == "" {
			return data, indexedValidation("todos", i, "title", "название не может быть пустым")
		}
		todo := models.Todo{
			ID:            importID(userID, t.ID),
			UserID:        userID,
			Title:         title,
			Description:   t.Description,
			StartDate:     t.StartDate,
			EndDate:       t.EndDate,
			DueDate:       t.DueDate,
			Priority:      importPriority(t.Priority),
			EstimatedTime: positive(t.EstimatedTime),
			IsCompleted:   t.IsCompleted,
			CreatedAt:     now,
			IsRecurring:   t.IsRecurring,
		}
		if t.CreatedAt != nil {
			todo.CreatedAt = *t.CreatedAt
		}
		if todo.IsCompleted {
			completedAt := now
			if t.CompletedAt != nil {
				completedAt = *t.CompletedAt
			}
			todo.CompletedAt = &completedAt
		}
		if p := models.RecurrencePattern(t.RecurringPattern); p.Valid() {
			todo.RecurringPattern = p
			todo.RecurringCount = t.RecurringCount
		}
		if t.ProjectID != "" {
			projectID := importID(userID, t.ProjectID)
			todo.ProjectID = &projectID
		}

		todo.CalendarID = fallback
		if t.CalendarID != "" {
			if id := importID(userID, t.CalendarID); hasKey(calendarIDs, id) {
				todo.CalendarID = id
			}
		}

		if hasKey(todoIDs, todo.ID) {
			return data, indexedValidation("todos", i, "id", "повторяющийся идентификатор")
		}
		todoIDs[todo.ID] = struct{}{}

		todo, _ = schedule.MigrateLegacy(todo)
		data.Todos = append(data.Todos, &todo)
	}

	for i, t := range payload.Templates {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			return data, indexedValidation("templates", i, "name", "название не может быть пустым")
		}
		tpl := &models.Template{
			ID:            importID(userID, t.ID),
			UserID:        userID,
			Name:          name,
			Title:         t.Title,
			Description:   t.Description,
			StartDate:     t.StartDate,
			EndDate:       t.EndDate,
			EstimatedTime: positive(t.EstimatedTime),
			Priority:      importPriority(t.Priority),
		}
		if t.CalendarID != "" {
			if id := importID(userID, t.CalendarID); hasKey(calendarIDs, id) {
				tpl.CalendarID = &id
			}
		}
		data.Templates = append(data.Templates, tpl)
	}

	return data, nil
}

// importID сохраняет uuid как есть, остальные строки (например, метки времени
// из локального хранилища) детерминированно переводит в uuid v5, чтобы ссылки
// между записями не терялись.
func importID(userID, raw string) uuid.UUID {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.New()
	}
	if id, err := uuid.Parse(raw); err == nil {
		return id
	}
	return uuid.NewSHA1(importNamespace, []byte(userID+":"+raw))
}

// normalizeDefault оставляет ровно один календарь по умолчанию и возвращает его id.
func normalizeDefault(calendars []*models.Calendar) uuid.UUID {
	if len(calendars) == 0 {
		return uuid.Nil
	}
	var def *models.Calendar
	for _, c := range calendars {
		if c.IsDefault && def == nil {
			def = c
			continue
		}
		c.IsDefault = false
	}
	if def == nil {
		def = calendars[0]
		def.IsDefault = true
	}
	return def.ID
}

func importPriority(raw string) models.Priority {
	p := models.Priority(strings.ToLower(strings.TrimSpace(raw)))
	if !p.Valid() {
		return models.PriorityMedium
	}
	return p
}

func positive(v *int) *int {
	if v == nil || *v <= 0 {
		return nil
	}
	return v
}

func hasKey(set map[uuid.UUID]struct{}, id uuid.UUID) bool {
	_, ok := set[id]
	return ok
}

func indexedValidation(collection string, i int, field, reason string) *BusinessError {
	return NewValidationError(fmt.Sprintf("%s[%d].%s", collection, i, field), reason)
}
