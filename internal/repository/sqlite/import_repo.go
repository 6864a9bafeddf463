package sqlite

import (
	"context"
	"fmt"
	"time"

	"goodVibes/internal/logger"
	"goodVibes/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReplaceUserData заменяет записи пользователя в одной транзакции.
func (s *Storage) ReplaceUserData(ctx context.Context, userID string, data models.UserData) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&templateRecord{}, &todoRecord{}, &calendarRecord{}} {
			if err := tx.Where("user_id = ?", userID).Delete(model).Error; err != nil {
				return err
			}
		}

		if len(data.Calendars) > 0 {
			records := make([]calendarRecord, 0, len(data.Calendars))
			for _, c := range data.Calendars {
				records = append(records, toCalendarRecord(c))
			}
			if err := tx.Create(&records).Error; err != nil {
				return err
			}
		}
		if len(data.Todos) > 0 {
			records := make([]todoRecord, 0, len(data.Todos))
			for _, t := range data.Todos {
				if t.CreatedAt.IsZero() {
					t.CreatedAt = time.Now()
				}
				t.Version = 1
				records = append(records, toTodoRecord(t))
			}
			if err := tx.Create(&records).Error; err != nil {
				return err
			}
		}
		if len(data.Templates) > 0 {
			records := make([]templateRecord, 0, len(data.Templates))
			for _, t := range data.Templates {
				records = append(records, toTemplateRecord(t))
			}
			if err := tx.Create(&records).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("Repository: Не удалось импортировать данные", err, zap.String("user_id", userID))
		return fmt.Errorf("импорт данных: %w", err)
	}
	return nil
}
