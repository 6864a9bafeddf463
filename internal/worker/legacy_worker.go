package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"goodVibes/internal/logger"
	"goodVibes/internal/models"
	rep "goodVibes/internal/repository"
	"goodVibes/internal/schedule"

	"go.uber.org/zap"
)

type legacyRepository interface {
	ListLegacyTodos(ctx context.Context, limit int) ([]*models.Todo, error)
	UpdateTodo(ctx context.Context, todo *models.Todo) error
}

type listInvalidator interface {
	Invalidate(ctx context.Context, userID string) error
}

// LegacyMigrationWorker переписывает в хранилище задачи, у которых остался
// только due_date. Чтение такие записи и так мигрирует на лету.
type LegacyMigrationWorker struct {
	repo      legacyRepository
	cache     listInvalidator
	batchSize int
}

func NewLegacyMigrationWorker(repo legacyRepository, cache listInvalidator, batchSize int) *LegacyMigrationWorker {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &LegacyMigrationWorker{
		repo:      repo,
		cache:     cache,
		batchSize: batchSize,
	}
}

func (w *LegacyMigrationWorker) Name() string { return "legacy_migration" }

func (w *LegacyMigrationWorker) Run(ctx context.Context) {
	if _, err := w.Check(ctx); err != nil {
		logger.Warn("Worker: ошибка миграции задач", zap.Error(err))
	}
}

// Check обрабатывает одну пачку и возвращает число мигрированных задач.
func (w *LegacyMigrationWorker) Check(ctx context.Context) (int, error) {
	start := time.Now()

	todos, err := w.repo.ListLegacyTodos(ctx, w.batchSize)
	if err != nil {
		return 0, fmt.Errorf("получение задач с due_date: %w", err)
	}

	migrated := 0
	touched := make(map[string]struct{})
	for _, t := range todos {
		if ctx.Err() != nil {
			break
		}
		next, changed := schedule.MigrateLegacy(*t)
		if !changed {
			continue
		}
		if err := w.repo.UpdateTodo(ctx, &next); err != nil {
			// запись успели изменить, следующий проход заберёт её снова
			if errors.Is(err, rep.ErrVersionConflict) || errors.Is(err, rep.ErrNotFound) {
				continue
			}
			logger.Warn("Worker: ошибка обновления задачи", zap.Error(err), zap.String("todo_id", t.ID.String()))
			continue
		}
		migrated++
		touched[t.UserID] = struct{}{}
	}

	if w.cache != nil {
		for userID := range touched {
			if err := w.cache.Invalidate(ctx, userID); err != nil {
				logger.Warn("Worker: ошибка сброса кэша", zap.Error(err), zap.String("user", userID))
			}
		}
	}

	logger.Info(
		"Worker: Завершение миграции задач",
		zap.Duration("ms", time.Since(start)),
		zap.Int("checked", len(todos)),
		zap.Int("migrated", migrated),
	)
	return migrated, nil
}
