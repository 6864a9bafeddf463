package worker

import (
	"context"

	"goodVibes/internal/logger"

	"go.uber.org/zap"
)

// Sweepable удаляет просроченные записи и возвращает их число.
type Sweepable interface {
	Sweep() int
}

// Sweeper чистит сессии взаимодействия и токены в памяти.
type Sweeper struct {
	targets map[string]Sweepable
}

func NewSweeper() *Sweeper {
	return &Sweeper{targets: make(map[string]Sweepable)}
}

func (s *Sweeper) Register(name string, target Sweepable) {
	if target == nil {
		return
	}
	s.targets[name] = target
}

func (s *Sweeper) Name() string { return "sweeper" }

func (s *Sweeper) Run(ctx context.Context) {
	for name, target := range s.targets {
		if ctx.Err() != nil {
			return
		}
		if n := target.Sweep(); n > 0 {
			logger.Debug("Worker: удалены просроченные записи", zap.String("target", name), zap.Int("removed", n))
		}
	}
}
