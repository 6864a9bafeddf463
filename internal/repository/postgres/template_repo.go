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
)

const templateColumns = `id, user_id, name, title, description, start_date, end_date,
	estimated_time, priority, calendar_id`

func scanTemplate(row rowScanner) (*models.Template, error) {
	tpl := &models.Template{}
	err := row.Scan(
		&tpl.ID,
		&tpl.UserID,
		&tpl.Name,
		&tpl.Title,
		&tpl.Description,
		&tpl.StartDate,
		&tpl.EndDate,
		&tpl.EstimatedTime,
		&tpl.Priority,
		&tpl.CalendarID,
	)
	return tpl, err
}

func (s *Storage) ListTemplates(ctx context.Context, userID string) ([]*models.Template, error) {
	defer logSlow("list templates", time.Now())

	query := `SELECT ` + templateColumns + ` FROM templates WHERE user_id = $1 ORDER BY seq`
	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		logger.Error("Repository: Не удалось получить шаблоны", err)
		return nil, fmt.Errorf("получение шаблонов: %w", err)
	}
	defer rows.Close()

	templates := []*models.Template{}
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("сканирование шаблона: %w", err)
		}
		templates = append(templates, tpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}
	return templates, nil
}

func (s *Storage) GetTemplate(ctx context.Context, userID string, id uuid.UUID) (*models.Template, error) {
	defer logSlow("get template", time.Now())

	query := `SELECT ` + templateColumns + ` FROM templates WHERE id = $1 AND user_id = $2`
	tpl, err := scanTemplate(s.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить шаблон", err)
		return nil, fmt.Errorf("получение шаблона: %w", err)
	}
	return tpl, nil
}
