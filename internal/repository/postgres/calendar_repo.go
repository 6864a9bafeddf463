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

const calendarColumns = `id, user_id, name, color, is_default`

func scanCalendar(row rowScanner) (*models.Calendar, error) {
	calendar := &models.Calendar{}
	err := row.Scan(&calendar.ID, &calendar.UserID, &calendar.Name, &calendar.Color, &calendar.IsDefault)
	return calendar, err
}

func (s *Storage) CreateCalendar(ctx context.Context, calendar *models.Calendar) error {
	defer logSlow("create calendar", time.Now())

	query := `INSERT INTO calendars (` + calendarColumns + `) VALUES ($1, $2, $3, $4, $5)`
	_, err := s.pool.Exec(ctx, query, calendar.ID, calendar.UserID, calendar.Name, calendar.Color, calendar.IsDefault)
	if err != nil {
		logger.Error("Repository: Не удалось добавить календарь", err)
		return fmt.Errorf("добавление календаря: %w", err)
	}
	return nil
}

func (s *Storage) UpdateCalendar(ctx context.Context, calendar *models.Calendar) error {
	defer logSlow("update calendar", time.Now())

	query := `UPDATE calendars SET name = $1, color = $2, is_default = $3 WHERE id = $4 AND user_id = $5`
	tag, err := s.pool.Exec(ctx, query, calendar.Name, calendar.Color, calendar.IsDefault, calendar.ID, calendar.UserID)
	if err != nil {
		logger.Error("Repository: Не удалось обновить календарь", err)
		return fmt.Errorf("обновление календаря: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (s *Storage) GetCalendar(ctx context.Context, userID string, id uuid.UUID) (*models.Calendar, error) {
	defer logSlow("get calendar", time.Now())

	query := `SELECT ` + calendarColumns + ` FROM calendars WHERE id = $1 AND user_id = $2`
	calendar, err := scanCalendar(s.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить календарь", err)
		return nil, fmt.Errorf("получение календаря: %w", err)
	}
	return calendar, nil
}

func (s *Storage) ListCalendars(ctx context.Context, userID string) ([]*models.Calendar, error) {
	defer logSlow("list calendars", time.Now())

	query := `SELECT ` + calendarColumns + ` FROM calendars WHERE user_id = $1 ORDER BY seq`
	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		logger.Error("Repository: Не удалось получить календари", err)
		return nil, fmt.Errorf("получение календарей: %w", err)
	}
	defer rows.Close()

	calendars := []*models.Calendar{}
	for rows.Next() {
		calendar, err := scanCalendar(rows)
		if err != nil {
			return nil, fmt.Errorf("сканирование календаря: %w", err)
		}
		calendars = append(calendars, calendar)
	}
	if err := rows.Err(); err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}
	return calendars, nil
}

// DeleteCalendar удаляет календарь, задачи уходят каскадом по внешнему ключу.
func (s *Storage) DeleteCalendar(ctx context.Context, userID string, id uuid.UUID) error {
	defer logSlow("delete calendar", time.Now())

	// FOR UPDATE сериализует параллельные удаления календарей одного пользователя
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `SELECT id FROM calendars WHERE user_id = $1 FOR UPDATE`, userID)
		if err != nil {
			return err
		}
		ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
		if err != nil {
			return err
		}

		found := false
		for _, calID := range ids {
			if calID == id {
				found = true
				break
			}
		}
		if !found {
			return repo.ErrNotFound
		}
		if len(ids) <= 1 {
			return repo.ErrLastCalendar
		}

		_, err = tx.Exec(ctx, `DELETE FROM calendars WHERE id = $1 AND user_id = $2`, id, userID)
		return err
	})
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) || errors.Is(err, repo.ErrLastCalendar) {
			return err
		}
		logger.Error("Repository: Не удалось удалить календарь", err)
		return fmt.Errorf("удаление календаря: %w", err)
	}
	return nil
}
