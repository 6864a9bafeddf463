package sqlite

import (
	"context"
	"errors"
	"fmt"

	"goodVibes/internal/models"
	repo "goodVibes/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (s *Storage) ListTemplates(ctx context.Context, userID string) ([]*models.Template, error) {
	var records []templateRecord
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("rowid").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("получение шаблонов: %w", err)
	}
	templates := make([]*models.Template, 0, len(records))
	for _, r := range records {
		templates = append(templates, r.model())
	}
	return templates, nil
}

func (s *Storage) GetTemplate(ctx context.Context, userID string, id uuid.UUID) (*models.Template, error) {
	var record templateRecord
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repo.ErrNotFound
		}
		return nil, fmt.Errorf("получение шаблона: %w", err)
	}
	return record.model(), nil
}
