package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"goodVibes/internal/interaction"
	"goodVibes/internal/logger"
	"goodVibes/internal/models"
	"goodVibes/internal/schedule"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultSessionTTL = 30 * time.Minute

type todoUpdater interface {
	Get(ctx context.Context, userID string, id uuid.UUID) (*models.Todo, error)
	Update(ctx context.Context, userID string, id uuid.UUID, options ...models.TodoOption) (*models.Todo, error)
}

type InteractionConfig struct {
	Machine    interaction.Config
	SessionTTL time.Duration
}

type session struct {
	mu       sync.Mutex
	id       uuid.UUID
	userID   string
	window   schedule.Window
	machine  *interaction.Machine
	lastSeen time.Time
}

// SessionView - снимок сессии после обработки события.
type SessionView struct {
	ID        uuid.UUID
	Window    schedule.Window
	State     interaction.State
	Listening bool
	Effects   []interaction.Effect
	Updated   []*models.Todo
}

// InteractionService держит машины состояний сеток пользователей. Эффекты
// изменения дат выполняются через TodoService в порядке выдачи, ответ сервера
// возвращается в машину как TaskUpdated.
type InteractionService struct {
	todos    todoUpdater
	cfg      InteractionConfig
	mu       sync.Mutex
	sessions map[uuid.UUID]*session
	now      func() time.Time
}

func NewInteractionService(todos todoUpdater, cfg InteractionConfig) *InteractionService {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = DefaultSessionTTL
	}
	return &InteractionService{
		todos:    todos,
		cfg:      cfg,
		sessions: make(map[uuid.UUID]*session),
		now:      time.Now,
	}
}

func (s *InteractionService) Open(ctx context.Context, userID string, center time.Time) *SessionView {
	sess := &session{
		id:       uuid.New(),
		userID:   userID,
		window:   schedule.NewWindow(center),
		machine:  interaction.New(s.cfg.Machine),
		lastSeen: s.now(),
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	logger.Debug("Service: открыта сессия сетки", zap.String("session_id", sess.id.String()), zap.String("user", userID))
	return sess.view(nil, nil)
}

// Handle применяет событие пользователя. При ошибке изменения задачи машина
// получает актуальные даты из хранилища, а вызывающему возвращается ошибка
// вместе с состоянием сессии и эффектами события.
func (s *InteractionService) Handle(ctx context.Context, userID string, id uuid.UUID, ev interaction.Event) (*SessionView, error) {
	if !ev.Type.Valid() {
		return nil, NewValidationError("type", fmt.Sprintf("неизвестное событие %q", ev.Type))
	}
	sess, err := s.session(userID, id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	now := s.now()
	sess.lastSeen = now
	if ev.At.IsZero() {
		ev.At = now
	}
	if ev.Target.HasDay() {
		ev.Target.Day = schedule.Day(ev.Target.Day.In(sess.window.Location()))
	}

	effects := sess.machine.Handle(ev)
	var updated []*models.Todo
	for _, eff := range effects {
		if eff.Type != interaction.EffectUpdateTaskDates {
			continue
		}
		todo, err := s.todos.Update(ctx, userID, eff.TaskID, models.WithDates(eff.StartDate, eff.EndDate))
		if err != nil {
			logger.Warn("Service: не удалось изменить даты задачи",
				zap.String("task_id", eff.TaskID.String()),
				zap.String("session_id", id.String()),
				zap.Error(err))
			s.resync(ctx, sess, eff.TaskID)
			return sess.view(effects, updated), err
		}
		sess.machine.Handle(interaction.Event{
			Type: interaction.EventTaskUpdated,
			At:   now,
			Task: &interaction.TaskRef{ID: todo.ID, StartDate: todo.StartDate, EndDate: todo.EndDate},
		})
		updated = append(updated, todo)
	}

	return sess.view(effects, updated), nil
}

// Navigate сдвигает окно сессии на weeks недель.
func (s *InteractionService) Navigate(ctx context.Context, userID string, id uuid.UUID, weeks int) (*SessionView, error) {
	sess, err := s.session(userID, id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.lastSeen = s.now()
	sess.window = schedule.WindowStarting(schedule.AddDays(sess.window.Start(), weeks*schedule.DaysInWindow))
	return sess.view(nil, nil), nil
}

// Close завершает сессию: незаконченные жесты отбрасываются.
func (s *InteractionService) Close(ctx context.Context, userID string, id uuid.UUID) error {
	sess, err := s.session(userID, id)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	sess.machine.Handle(interaction.Event{Type: interaction.EventCancel, At: s.now()})
	sess.mu.Unlock()

	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

// Sweep удаляет сессии, не получавшие событий дольше TTL.
func (s *InteractionService) Sweep() int {
	deadline := s.now().Add(-s.cfg.SessionTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		stale := sess.lastSeen.Before(deadline)
		sess.mu.Unlock()
		if stale {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *InteractionService) session(userID string, id uuid.UUID) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || sess.userID != userID {
		return nil, NewNotFound(resourceSession, id.String())
	}
	return sess, nil
}

func (s *InteractionService) resync(ctx context.Context, sess *session, taskID uuid.UUID) {
	todo, err := s.todos.Get(ctx, sess.userID, taskID)
	if err != nil {
		return
	}
	sess.machine.Handle(interaction.Event{
		Type: interaction.EventTaskUpdated,
		At:   s.now(),
		Task: &interaction.TaskRef{ID: todo.ID, StartDate: todo.StartDate, EndDate: todo.EndDate},
	})
}

func (sess *session) view(effects []interaction.Effect, updated []*models.Todo) *SessionView {
	return &SessionView{
		ID:        sess.id,
		Window:    sess.window,
		State:     sess.machine.State(),
		Listening: sess.machine.Listening(),
		Effects:   effects,
		Updated:   updated,
	}
}
