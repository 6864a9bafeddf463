package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"goodVibes/internal/logger"
	"goodVibes/internal/models"
	repo "goodVibes/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (s *Storage) CreateTodo(ctx context.Context, todo *models.Todo) error {
	return s.CreateTodos(ctx, []*models.Todo{todo})
}

func (s *Storage) CreateTodos(ctx context.Context, todos []*models.Todo) error {
	if len(todos) == 0 {
		return nil
	}
	records := make([]todoRecord, 0, len(todos))
	for _, todo := range todos {
		if todo.CreatedAt.IsZero() {
			todo.CreatedAt = time.Now()
		}
		todo.Version = 1
		records = append(records, toTodoRecord(todo))
	}

	if err := s.db.WithContext(ctx).Create(&records).Error; err != nil {
		logger.Error("Repository: Не удалось добавить задачи", err, zap.Int("count", len(todos)))
		return fmt.Errorf("добавление задач: %w", err)
	}
	return nil
}

func (s *Storage) UpdateTodo(ctx context.Context, todo *models.Todo) error {
	res := s.db.WithContext(ctx).Model(&todoRecord{}).
		Where("id = ? AND user_id = ? AND version = ?", todo.ID, todo.UserID, todo.Version).
		Updates(map[string]any{
			"title":             todo.Title,
			"description":       todo.Description,
			"start_date":        todo.StartDate,
			"end_date":          todo.EndDate,
			"due_date":          todo.DueDate,
			"calendar_id":       todo.CalendarID,
			"project_id":        todo.ProjectID,
			"priority":          string(todo.Priority),
			"estimated_time":    todo.EstimatedTime,
			"is_completed":      todo.IsCompleted,
			"completed_at":      todo.CompletedAt,
			"is_recurring":      todo.IsRecurring,
			"recurring_pattern": string(todo.RecurringPattern),
			"recurring_count":   todo.RecurringCount,
			"version":           gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		logger.Error("Repository: Не удалось обновить задачу", res.Error)
		return fmt.Errorf("обновление задачи: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		if _, err := s.GetTodo(ctx, todo.UserID, todo.ID); errors.Is(err, repo.ErrNotFound) {
			return repo.ErrNotFound
		}
		logger.Warn("Repository: Конфликт версий при обновлении задачи",
			zap.String("task_id", todo.ID.String()),
			zap.Int("expected_version", todo.Version))
		return repo.ErrVersionConflict
	}

	todo.Version++
	return nil
}

func (s *Storage) GetTodo(ctx context.Context, userID string, id uuid.UUID) (*models.Todo, error) {
	var record todoRecord
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить задачу", err)
		return nil, fmt.Errorf("получение задачи: %w", err)
	}
	return record.model(), nil
}

func (s *Storage) ListTodos(ctx context.Context, userID string) ([]*models.Todo, error) {
	var records []todoRecord
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("rowid").Find(&records).Error
	if err != nil {
		logger.Error("Repository: Не удалось получить задачи", err)
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	return todoModels(records), nil
}

func (s *Storage) ListLegacyTodos(ctx context.Context, limit int) ([]*models.Todo, error) {
	var records []todoRecord
	err := s.db.WithContext(ctx).
		Where("due_date <> '' AND start_date = '' AND end_date = ''").
		Order("rowid").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		logger.Error("Repository: Не удалось получить задачи", err)
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	return todoModels(records), nil
}

func (s *Storage) DeleteTodo(ctx context.Context, userID string, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&todoRecord{})
	if res.Error != nil {
		logger.Error("Repository: Не удалось удалить задачу", res.Error)
		return fmt.Errorf("удаление задачи: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func todoModels(records []todoRecord) []*models.Todo {
	todos := make([]*models.Todo, 0, len(records))
	for _, r := range records {
		todos = append(todos, r.model())
	}
	return todos
}
