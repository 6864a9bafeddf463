// Package worker - фоновые задачи сервера по расписанию cron.
package worker

import (
	"context"
	"fmt"
	"time"

	"goodVibes/internal/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job выполняется планировщиком. Контекст отменяется при остановке.
type Job interface {
	Name() string
	Run(ctx context.Context)
}

type Scheduler struct {
	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
}

func NewScheduler(loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Add регистрирует задачу. spec - стандартное выражение cron или "@every 10m".
func (s *Scheduler) Add(spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		start := time.Now()
		job.Run(s.ctx)
		logger.Debug("Worker: задача выполнена",
			zap.String("job", job.Name()),
			zap.Duration("ms", time.Since(start)),
		)
	})
	if err != nil {
		return fmt.Errorf("расписание %q для %s: %w", spec, job.Name(), err)
	}
	logger.Info("Worker: задача запланирована", zap.String("job", job.Name()), zap.String("spec", spec))
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop отменяет контекст задач и ждёт завершения запущенных.
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
	logger.Info("Worker: планировщик остановлен")
}
