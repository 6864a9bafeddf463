package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"goodVibes/internal/logger"
	"goodVibes/internal/models"
	repo "goodVibes/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const todoColumns = `id, user_id, title, description, start_date, end_date, due_date,
	calendar_id, project_id, priority, estimated_time, is_completed, completed_at,
	created_at, is_recurring, recurring_pattern, recurring_count, version`

const insertTodo = `INSERT INTO todos (` + todoColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, 1)`

func scanTodo(row rowScanner) (*models.Todo, error) {
	todo := &models.Todo{}
	err := row.Scan(
		&todo.ID,
		&todo.UserID,
		&todo.Title,
		&todo.Description,
		&todo.StartDate,
		&todo.EndDate,
		&todo.DueDate,
		&todo.CalendarID,
		&todo.ProjectID,
		&todo.Priority,
		&todo.EstimatedTime,
		&todo.IsCompleted,
		&todo.CompletedAt,
		&todo.CreatedAt,
		&todo.IsRecurring,
		&todo.RecurringPattern,
		&todo.RecurringCount,
		&todo.Version,
	)
	return todo, err
}

func todoArgs(todo *models.Todo) []any {
	return []any{
		todo.ID,
		todo.UserID,
		todo.Title,
		todo.Description,
		todo.StartDate,
		todo.EndDate,
		todo.DueDate,
		todo.CalendarID,
		todo.ProjectID,
		todo.Priority,
		todo.EstimatedTime,
		todo.IsCompleted,
		todo.CompletedAt,
		todo.CreatedAt,
		todo.IsRecurring,
		todo.RecurringPattern,
		todo.RecurringCount,
	}
}

func prepareTodo(todo *models.Todo) {
	if todo.CreatedAt.IsZero() {
		todo.CreatedAt = time.Now()
	}
	todo.Version = 1
}

func (s *Storage) CreateTodo(ctx context.Context, todo *models.Todo) error {
	start := time.Now()
	defer logSlow("create todo", start)

	prepareTodo(todo)
	if _, err := s.pool.Exec(ctx, insertTodo, todoArgs(todo)...); err != nil {
		logger.Error("Repository: Не удалось добавить задачу", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("добавление задачи: %w", err)
	}
	return nil
}

// CreateTodos добавляет пачку задач в одной транзакции.
func (s *Storage) CreateTodos(ctx context.Context, todos []*models.Todo) error {
	start := time.Now()
	defer logSlow("create todos", start)

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, todo := range todos {
			prepareTodo(todo)
			batch.Queue(insertTodo, todoArgs(todo)...)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		logger.Error("Repository: Не удалось добавить задачи", err, zap.Int("count", len(todos)))
		return fmt.Errorf("добавление задач: %w", err)
	}
	return nil
}

func (s *Storage) UpdateTodo(ctx context.Context, todo *models.Todo) error {
	start := time.Now()
	defer logSlow("update todo", start)

	query := `UPDATE todos
			SET title = $1,
				description = $2,
				start_date = $3,
				end_date = $4,
				due_date = $5,
				calendar_id = $6,
				project_id = $7,
				priority = $8,
				estimated_time = $9,
				is_completed = $10,
				completed_at = $11,
				is_recurring = $12,
				recurring_pattern = $13,
				recurring_count = $14,
				version = version + 1
			WHERE id = $15 AND user_id = $16 AND version = $17
			RETURNING version, created_at`

	err := s.pool.QueryRow(ctx, query,
		todo.Title,
		todo.Description,
		todo.StartDate,
		todo.EndDate,
		todo.DueDate,
		todo.CalendarID,
		todo.ProjectID,
		todo.Priority,
		todo.EstimatedTime,
		todo.IsCompleted,
		todo.CompletedAt,
		todo.IsRecurring,
		todo.RecurringPattern,
		todo.RecurringCount,
		todo.ID,
		todo.UserID,
		todo.Version,
	).Scan(&todo.Version, &todo.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, getErr := s.GetTodo(ctx, todo.UserID, todo.ID); errors.Is(getErr, repo.ErrNotFound) {
				return repo.ErrNotFound
			}
			logger.Warn("Repository: Конфликт версий при обновлении задачи",
				zap.String("task_id", todo.ID.String()),
				zap.Int("expected_version", todo.Version))
			return repo.ErrVersionConflict
		}
		logger.Error("Repository: Не удалось обновить задачу", err)
		return fmt.Errorf("обновление задачи: %w", err)
	}
	return nil
}

func (s *Storage) GetTodo(ctx context.Context, userID string, id uuid.UUID) (*models.Todo, error) {
	start := time.Now()
	defer logSlow("get todo", start)

	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = $1 AND user_id = $2`

	todo, err := scanTodo(s.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить задачу", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение задачи: %w", err)
	}
	return todo, nil
}

func (s *Storage) ListTodos(ctx context.Context, userID string) ([]*models.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE user_id = $1 ORDER BY seq`
	return s.queryTodos(ctx, "list todos", query, userID)
}

// ListLegacyTodos - записи всех пользователей, у которых есть только due_date.
func (s *Storage) ListLegacyTodos(ctx context.Context, limit int) ([]*models.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos
			WHERE due_date <> '' AND start_date = '' AND end_date = ''
			ORDER BY seq
			LIMIT $1`
	return s.queryTodos(ctx, "list legacy todos", query, limit)
}

func (s *Storage) queryTodos(ctx context.Context, op, query string, args ...any) ([]*models.Todo, error) {
	start := time.Now()
	defer logSlow(op, start)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error("Repository: Не удалось получить задачи", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	defer rows.Close()

	todos := []*models.Todo{}
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			logger.Error("Repository: Ошибка сканирования задачи", err)
			return nil, fmt.Errorf("сканирование задачи: %w", err)
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}
	return todos, nil
}

func (s *Storage) DeleteTodo(ctx context.Context, userID string, id uuid.UUID) error {
	start := time.Now()
	defer logSlow("delete todo", start)

	tag, err := s.pool.Exec(ctx, `DELETE FROM todos WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		logger.Error("Repository: Не удалось удалить задачу", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("удаление задачи: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}
