package service

import (
	"context"
	"fmt"

	"goodVibes/internal/models"

	"github.com/google/uuid"
)

// TemplateService только читает шаблоны: они попадают в хранилище через импорт.
type TemplateService struct {
	templates TemplateRepository
}

func NewTemplateService(templates TemplateRepository) *TemplateService {
	return &TemplateService{templates: templates}
}

func (s *TemplateService) List(ctx context.Context, userID string) ([]*models.Template, error) {
	list, err := s.templates.ListTemplates(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("получение шаблонов: %w", err)
	}
	return list, nil
}

func (s *TemplateService) Get(ctx context.Context, userID string, id uuid.UUID) (*models.Template, error) {
	tpl, err := s.templates.GetTemplate(ctx, userID, id)
	if err != nil {
		return nil, repoError(err, resourceTemplate, id.String(), "получение шаблона")
	}
	return tpl, nil
}
