package postgres

import (
	"context"
	"fmt"
	"time"

	"goodVibes/internal/logger"
	"goodVibes/internal/models"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ReplaceUserData заменяет календари, задачи и шаблоны пользователя в одной транзакции.
func (s *Storage) ReplaceUserData(ctx context.Context, userID string, data models.UserData) error {
	start := time.Now()
	defer logSlow("replace user data", start)

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		// задачи уходят каскадом, шаблоны удаляем явно
		if _, err := tx.Exec(ctx, `DELETE FROM templates WHERE user_id = $1`, userID); err != nil {
			return fmt.Errorf("удаление шаблонов: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM todos WHERE user_id = $1`, userID); err != nil {
			return fmt.Errorf("удаление задач: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM calendars WHERE user_id = $1`, userID); err != nil {
			return fmt.Errorf("удаление календарей: %w", err)
		}

		batch := &pgx.Batch{}
		for _, c := range data.Calendars {
			batch.Queue(`INSERT INTO calendars (`+calendarColumns+`) VALUES ($1, $2, $3, $4, $5)`,
				c.ID, c.UserID, c.Name, c.Color, c.IsDefault)
		}
		for _, t := range data.Todos {
			if t.CreatedAt.IsZero() {
				t.CreatedAt = time.Now()
			}
			t.Version = 1
			batch.Queue(insertTodo, todoArgs(t)...)
		}
		for _, t := range data.Templates {
			batch.Queue(`INSERT INTO templates (`+templateColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
				t.ID, t.UserID, t.Name, t.Title, t.Description, t.StartDate, t.EndDate, t.EstimatedTime, t.Priority, t.CalendarID)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		logger.Error("Repository: Не удалось импортировать данные", err, zap.String("user_id", userID))
		return fmt.Errorf("импорт данных: %w", err)
	}
	return nil
}
