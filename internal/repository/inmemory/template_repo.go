package inmemory

import (
	"context"

	"goodVibes/internal/models"
	repo "goodVibes/internal/repository"

	"github.com/google/uuid"
)

func (s *Storage) ListTemplates(ctx context.Context, userID string) ([]*models.Template, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*models.Template{}
	for _, id := range s.templateIDs {
		tpl := s.templates[id]
		if tpl.UserID != userID {
			continue
		}
		cp := *tpl
		res = append(res, &cp)
	}
	return res, nil
}

func (s *Storage) GetTemplate(ctx context.Context, userID string, id uuid.UUID) (*models.Template, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	tpl, ok := s.templates[id]
	if !ok || tpl.UserID != userID {
		return nil, repo.ErrNotFound
	}
	cp := *tpl
	return &cp, nil
}
