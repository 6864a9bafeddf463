package interaction

import (
	"time"

	"github.com/google/uuid"

	"goodVibes/internal/schedule"
)

type Config struct {
	DoubleTapWindow time.Duration
	SettleDelay     time.Duration
	CreateCooldown  time.Duration
}

func DefaultConfig() Config {
	return Config{
		DoubleTapWindow: 300 * time.Millisecond,
		SettleDelay:     100 * time.Millisecond,
		CreateCooldown:  500 * time.Millisecond,
	}
}

// Machine не потокобезопасна: события одной сетки обрабатываются по очереди.
type Machine struct {
	cfg       Config
	state     State
	listening bool

	lastTapTask uuid.UUID
	lastTapAt   time.Time

	cooldownUntil time.Time
	swallowClick  bool
}

func New(cfg Config) *Machine {
	def := DefaultConfig()
	if cfg.DoubleTapWindow <= 0 {
		cfg.DoubleTapWindow = def.DoubleTapWindow
	}
	if cfg.SettleDelay <= 0 {
		cfg.SettleDelay = def.SettleDelay
	}
	if cfg.CreateCooldown <= 0 {
		cfg.CreateCooldown = def.CreateCooldown
	}
	return &Machine{cfg: cfg, state: Idle{}}
}

func (m *Machine) State() State {
	return m.state
}

// Listening сообщает, подписаны ли сейчас глобальные обработчики указателя.
func (m *Machine) Listening() bool {
	return m.listening
}

// Handle применяет событие и возвращает эффекты в порядке выполнения.
func (m *Machine) Handle(ev Event) []Effect {
	if ev.Type.fromUser() {
		swallow := m.swallowClick
		m.swallowClick = false
		if swallow && ev.Type == EventClick {
			return nil
		}
	}

	switch ev.Type {
	case EventCancel:
		return m.cancel()
	case EventTaskCreated:
		m.cooldownUntil = ev.At.Add(m.cfg.CreateCooldown)
		m.resetTap()
		return nil
	case EventTaskUpdated:
		m.taskUpdated(ev.Task)
		return nil
	}

	switch st := m.state.(type) {
	case Idle:
		return m.handleIdle(ev)
	case RangeSelect:
		return m.handleRangeSelect(st, ev)
	case TaskDragExtend:
		return m.handleTaskDrag(st, ev)
	case ResizeMode:
		return m.handleResize(st, ev)
	}
	return nil
}

func (m *Machine) handleIdle(ev Event) []Effect {
	switch ev.Type {
	case EventPointerDown:
		if ev.Button != ButtonPrimary || ev.Target.Kind != TargetDay {
			return nil
		}
		return m.transition(RangeSelect{Anchor: ev.Target.Day, Current: ev.Target.Day}, nil)

	case EventClick:
		switch ev.Target.Kind {
		case TargetTask:
			if ev.Button == ButtonSecondary {
				return contextMenu(ev.Target.Task)
			}
			return m.tap(ev.Target.Task, ev.At)
		case TargetDay:
			if ev.Button != ButtonPrimary {
				return nil
			}
			day := schedule.FormatDate(ev.Target.Day)
			return []Effect{{Type: EffectOpenQuickCreate, StartDate: day, EndDate: day}}
		}

	case EventDragStart:
		if ev.Target.Kind != TargetTask || ev.Target.Task == nil || !ev.Target.HasDay() {
			return nil
		}
		m.resetTap()
		return m.transition(TaskDragExtend{
			TaskID:   ev.Target.Task.ID,
			StartDay: ev.Target.Day,
			EndDay:   ev.Target.Day,
		}, nil)
	}
	return nil
}

func (m *Machine) handleRangeSelect(st RangeSelect, ev Event) []Effect {
	switch ev.Type {
	case EventPointerEnter:
		if ev.Target.HasDay() {
			st.Current = ev.Target.Day
			m.state = st
		}
	case EventPointerUp:
		if !ev.Target.HasDay() {
			return m.transition(Idle{}, nil)
		}
		st.Current = ev.Target.Day
		start, end := st.Bounds()
		m.swallowClick = true
		return m.transition(Idle{}, []Effect{{
			Type:      EffectOpenQuickCreate,
			StartDate: schedule.FormatDate(start),
			EndDate:   schedule.FormatDate(end),
		}})
	}
	return nil
}

func (m *Machine) handleTaskDrag(st TaskDragExtend, ev Event) []Effect {
	switch ev.Type {
	case EventDragEnter:
		if st.Ended || !ev.Target.HasDay() {
			return nil
		}
		day := ev.Target.Day
		// флаг пересчитывается только при проходе по соседним дням
		if step := schedule.DaysBetween(st.EndDay, day); step >= -1 && step <= 1 {
			st.Extending = !schedule.SameDay(day, st.StartDay)
		}
		st.EndDay = day
		m.state = st

	case EventDrop:
		if st.Dropped {
			return nil
		}
		day := st.EndDay
		if ev.Target.HasDay() {
			day = ev.Target.Day
		}
		start, end := day, day
		if st.Extending {
			start, end = st.StartDay, day
			if schedule.DaysBetween(start, end) < 0 {
				start, end = end, start
			}
		}
		st.EndDay = day
		st.Dropped = true
		m.state = st
		return []Effect{{
			Type:      EffectUpdateTaskDates,
			TaskID:    st.TaskID,
			StartDate: schedule.FormatDate(start),
			EndDate:   schedule.FormatDate(end),
		}}

	case EventDragEnd:
		if st.Ended {
			return nil
		}
		st.Ended = true
		m.state = st
		return []Effect{{Type: EffectScheduleSettle, TaskID: st.TaskID, After: m.cfg.SettleDelay}}

	case EventSettle:
		if !st.Ended {
			return nil
		}
		return m.transition(Idle{}, nil)
	}
	return nil
}

func (m *Machine) handleResize(st ResizeMode, ev Event) []Effect {
	if ev.Type != EventClick {
		return nil
	}
	switch ev.Target.Kind {
	case TargetTask:
		if ev.Button == ButtonSecondary {
			return contextMenu(ev.Target.Task)
		}
		return m.tap(ev.Target.Task, ev.At)
	case TargetDay:
		if ev.Button != ButtonPrimary {
			return nil
		}
		return m.adjust(st, ev.Target.Day)
	}
	return nil
}

// adjust двигает ближайшую к дню границу активной задачи.
func (m *Machine) adjust(st ResizeMode, day time.Time) []Effect {
	loc := day.Location()
	day = schedule.Day(day)

	start, errStart := schedule.ParseTaskDate(st.Task.StartDate, loc)
	end, errEnd := schedule.ParseTaskDate(st.Task.EndDate, loc)
	switch {
	case errStart != nil && errEnd != nil:
		start, end = day, day
	case errStart != nil:
		start = end
	case errEnd != nil:
		end = start
	}

	switch {
	case schedule.DaysBetween(day, start) > 0:
		start = day
	case schedule.DaysBetween(end, day) > 0:
		end = day
	default:
		// при равенстве расстояний двигается начало
		if schedule.DaysBetween(start, day) <= schedule.DaysBetween(day, end) {
			start = day
		} else {
			end = day
		}
	}
	if schedule.DaysBetween(start, end) < 0 {
		start, end = end, start
	}

	st.Task.StartDate = schedule.FormatDate(start)
	st.Task.EndDate = schedule.FormatDate(end)
	m.state = st

	return []Effect{{
		Type:      EffectUpdateTaskDates,
		TaskID:    st.Task.ID,
		StartDate: st.Task.StartDate,
		EndDate:   st.Task.EndDate,
	}}
}

// tap отслеживает двойное касание задачи.
func (m *Machine) tap(task *TaskRef, at time.Time) []Effect {
	if task == nil {
		return nil
	}
	double := m.lastTapTask == task.ID && !m.lastTapAt.IsZero() &&
		at.Sub(m.lastTapAt) <= m.cfg.DoubleTapWindow
	if !double {
		m.lastTapTask = task.ID
		m.lastTapAt = at
		return nil
	}
	m.resetTap()
	return m.toggleResize(*task, at)
}

func (m *Machine) toggleResize(task TaskRef, at time.Time) []Effect {
	active, inResize := m.state.(ResizeMode)
	if inResize && active.Task.ID == task.ID {
		m.state = Idle{}
		return []Effect{{Type: EffectResizeExited, TaskID: task.ID}}
	}
	if at.Before(m.cooldownUntil) {
		return nil
	}

	var effects []Effect
	if inResize {
		effects = append(effects, Effect{Type: EffectResizeExited, TaskID: active.Task.ID})
	}
	m.state = ResizeMode{Task: task}
	return append(effects, Effect{Type: EffectResizeEntered, TaskID: task.ID})
}

// taskUpdated принимает ответ сервера как источник истины для дат активной задачи.
func (m *Machine) taskUpdated(task *TaskRef) {
	if task == nil {
		return
	}
	st, ok := m.state.(ResizeMode)
	if !ok || st.Task.ID != task.ID {
		return
	}
	st.Task.StartDate = task.StartDate
	st.Task.EndDate = task.EndDate
	m.state = st
}

func (m *Machine) cancel() []Effect {
	var effects []Effect
	if st, ok := m.state.(ResizeMode); ok {
		effects = append(effects, Effect{Type: EffectResizeExited, TaskID: st.Task.ID})
	}
	m.resetTap()
	m.swallowClick = false
	return m.transition(Idle{}, effects)
}

// transition меняет состояние и следит за временем жизни глобальных обработчиков:
// они живут только пока активен режим перетаскивания.
func (m *Machine) transition(next State, effects []Effect) []Effect {
	wasDrag := isDrag(m.state)
	nowDrag := isDrag(next)
	m.state = next

	switch {
	case !wasDrag && nowDrag:
		m.listening = true
		effects = append(effects, Effect{Type: EffectAttachListeners})
	case wasDrag && !nowDrag:
		m.listening = false
		effects = append(effects, Effect{Type: EffectDetachListeners})
	}
	return effects
}

func (m *Machine) resetTap() {
	m.lastTapTask = uuid.Nil
	m.lastTapAt = time.Time{}
}

func isDrag(s State) bool {
	switch s.(type) {
	case RangeSelect, TaskDragExtend:
		return true
	}
	return false
}

func contextMenu(task *TaskRef) []Effect {
	if task == nil {
		return nil
	}
	return []Effect{{Type: EffectOpenContextMenu, TaskID: task.ID}}
}
