package sqlite

import (
	"context"
	"errors"
	"fmt"

	"goodVibes/internal/logger"
	"goodVibes/internal/models"
	repo "goodVibes/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (s *Storage) CreateCalendar(ctx context.Context, calendar *models.Calendar) error {
	record := toCalendarRecord(calendar)
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		logger.Error("Repository: Не удалось добавить календарь", err)
		return fmt.Errorf("добавление календаря: %w", err)
	}
	return nil
}

func (s *Storage) UpdateCalendar(ctx context.Context, calendar *models.Calendar) error {
	res := s.db.WithContext(ctx).Model(&calendarRecord{}).
		Where("id = ? AND user_id = ?", calendar.ID, calendar.UserID).
		Updates(map[string]any{
			"name":       calendar.Name,
			"color":      calendar.Color,
			"is_default": calendar.IsDefault,
		})
	if res.Error != nil {
		logger.Error("Repository: Не удалось обновить календарь", res.Error)
		return fmt.Errorf("обновление календаря: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (s *Storage) GetCalendar(ctx context.Context, userID string, id uuid.UUID) (*models.Calendar, error) {
	var record calendarRecord
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repo.ErrNotFound
		}
		return nil, fmt.Errorf("получение календаря: %w", err)
	}
	return record.model(), nil
}

func (s *Storage) ListCalendars(ctx context.Context, userID string) ([]*models.Calendar, error) {
	var records []calendarRecord
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("rowid").Find(&records).Error; err != nil {
		logger.Error("Repository: Не удалось получить календари", err)
		return nil, fmt.Errorf("получение календарей: %w", err)
	}
	calendars := make([]*models.Calendar, 0, len(records))
	for _, r := range records {
		calendars = append(calendars, r.model())
	}
	return calendars, nil
}

// DeleteCalendar удаляет календарь и его задачи в одной транзакции.
func (s *Storage) DeleteCalendar(ctx context.Context, userID string, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&calendarRecord{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}
		// удаление уже держит блокировку записи, поэтому подсчёт видит итог
		var remaining int64
		if err := tx.Model(&calendarRecord{}).Where("user_id = ?", userID).Count(&remaining).Error; err != nil {
			return err
		}
		if remaining == 0 {
			return repo.ErrLastCalendar
		}
		if err := tx.Where("calendar_id = ?", id).Delete(&todoRecord{}).Error; err != nil {
			return err
		}
		return tx.Model(&templateRecord{}).Where("calendar_id = ?", id).Update("calendar_id", nil).Error
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
