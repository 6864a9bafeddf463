package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"goodVibes/internal/logger"
	"goodVibes/internal/models"
	rep "goodVibes/internal/repository"
	"goodVibes/internal/schedule"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// календари, которые получает каждый новый пользователь
var defaultCalendars = []models.Calendar{
	{Name: "Personal", Color: "#3b82f6", IsDefault: true},
	{Name: "Work", Color: "#10b981"},
}

type CalendarInput struct {
	Name      string
	Color     string
	IsDefault bool
}

type CalendarService struct {
	calendars CalendarRepository
	cache     TodoCache
}

func NewCalendarService(calendars CalendarRepository, cache TodoCache) *CalendarService {
	return &CalendarService{
		calendars: calendars,
		cache:     cache,
	}
}

func (s *CalendarService) List(ctx context.Context, userID string) ([]*models.Calendar, error) {
	list, err := s.calendars.ListCalendars(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("получение календарей: %w", err)
	}
	return list, nil
}

// Create: первый календарь пользователя всегда становится календарём по умолчанию.
func (s *CalendarService) Create(ctx context.Context, userID string, in CalendarInput) (*models.Calendar, error) {
	if err := validateCalendar(&in); err != nil {
		return nil, err
	}

	existing, err := s.calendars.ListCalendars(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("получение календарей: %w", err)
	}

	calendar := &models.Calendar{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      in.Name,
		Color:     in.Color,
		IsDefault: in.IsDefault || len(existing) == 0,
	}
	if err := s.calendars.CreateCalendar(ctx, calendar); err != nil {
		return nil, fmt.Errorf("создание календаря: %w", err)
	}
	if calendar.IsDefault {
		if err := s.clearDefault(ctx, existing, calendar.ID); err != nil {
			return nil, err
		}
	}

	logger.Info("Service: календарь создан", zap.String("calendar_id", calendar.ID.String()), zap.String("user", userID))
	return calendar, nil
}

// CalendarPatch - частичное обновление, nil-поля не меняются.
type CalendarPatch struct {
	Name      *string
	Color     *string
	IsDefault *bool
}

func (s *CalendarService) Update(ctx context.Context, userID string, id uuid.UUID, patch CalendarPatch) (*models.Calendar, error) {
	calendar, err := s.calendars.GetCalendar(ctx, userID, id)
	if err != nil {
		return nil, repoError(err, resourceCalendar, id.String(), "получение календаря")
	}

	in := CalendarInput{Name: calendar.Name, Color: calendar.Color}
	if patch.Name != nil {
		in.Name = *patch.Name
	}
	if patch.Color != nil {
		in.Color = *patch.Color
	}
	if err := validateCalendar(&in); err != nil {
		return nil, err
	}
	becameDefault := patch.IsDefault != nil && *patch.IsDefault && !calendar.IsDefault

	calendar.Name = in.Name
	calendar.Color = in.Color
	// снять отметку по умолчанию можно только назначив другой календарь
	if becameDefault {
		calendar.IsDefault = true
	}

	if err := s.calendars.UpdateCalendar(ctx, calendar); err != nil {
		return nil, repoError(err, resourceCalendar, id.String(), "обновление календаря")
	}
	if becameDefault {
		others, err := s.calendars.ListCalendars(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("получение календарей: %w", err)
		}
		if err := s.clearDefault(ctx, others, calendar.ID); err != nil {
			return nil, err
		}
	}
	return calendar, nil
}

// Delete удаляет календарь вместе с его задачами. Последний календарь удалить
// нельзя: хранилище проверяет это атомарно вместе с удалением.
func (s *CalendarService) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	list, err := s.calendars.ListCalendars(ctx, userID)
	if err != nil {
		return fmt.Errorf("получение календарей: %w", err)
	}

	var target *models.Calendar
	for _, c := range list {
		if c.ID == id {
			target = c
			break
		}
	}
	if target == nil {
		return NewNotFound(resourceCalendar, id.String())
	}
	if len(list) == 1 {
		logger.Info("Service: попытка удалить последний календарь", zap.String("calendar_id", id.String()))
		return NewInvariantViolation("last_calendar", "нельзя удалить последний календарь")
	}

	if err := s.calendars.DeleteCalendar(ctx, userID, id); err != nil {
		return repoError(err, resourceCalendar, id.String(), "удаление календаря")
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, userID); err != nil {
			logger.Warn("Service: не удалось сбросить кэш задач", zap.String("user", userID), zap.Error(err))
		}
	}

	if target.IsDefault {
		for _, c := range list {
			if c.ID == id {
				continue
			}
			c.IsDefault = true
			err := s.calendars.UpdateCalendar(ctx, c)
			if errors.Is(err, rep.ErrNotFound) {
				// календарь удалён параллельным запросом
				continue
			}
			if err != nil {
				return repoError(err, resourceCalendar, c.ID.String(), "назначение календаря по умолчанию")
			}
			break
		}
	}

	logger.Info("Service: календарь удалён", zap.String("calendar_id", id.String()), zap.String("user", userID))
	return nil
}

// EnsureDefaults создаёт стандартные календари, если у пользователя их нет.
func (s *CalendarService) EnsureDefaults(ctx context.Context, userID string) ([]*models.Calendar, error) {
	list, err := s.calendars.ListCalendars(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("получение календарей: %w", err)
	}
	if len(list) > 0 {
		return list, nil
	}

	for _, tmpl := range defaultCalendars {
		calendar := tmpl
		calendar.ID = uuid.New()
		calendar.UserID = userID
		if err := s.calendars.CreateCalendar(ctx, &calendar); err != nil {
			return nil, fmt.Errorf("создание календаря %s: %w", calendar.Name, err)
		}
		list = append(list, &calendar)
	}
	logger.Info("Service: созданы календари по умолчанию", zap.String("user", userID))
	return list, nil
}

func (s *CalendarService) clearDefault(ctx context.Context, list []*models.Calendar, keep uuid.UUID) error {
	for _, c := range list {
		if c.ID == keep || !c.IsDefault {
			continue
		}
		c.IsDefault = false
		if err := s.calendars.UpdateCalendar(ctx, c); err != nil {
			return repoError(err, resourceCalendar, c.ID.String(), "снятие отметки по умолчанию")
		}
	}
	return nil
}

func validateCalendar(in *CalendarInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return NewValidationError("name", "название не может быть пустым")
	}
	in.Color = strings.ToLower(strings.TrimSpace(in.Color))
	if !schedule.ValidColor(in.Color) {
		return NewValidationError("color", "ожидается цвет в формате #rrggbb")
	}
	return nil
}
