// Package interaction описывает режимы работы с сеткой недели указателем:
// выделение диапазона, перетаскивание задачи и режим изменения границ.
// Машина состояний чистая: события приходят снаружи, наружу уходят эффекты.
package interaction

import (
	"time"

	"github.com/google/uuid"

	"goodVibes/internal/schedule"
)

type Mode string

const (
	ModeIdle        Mode = "idle"
	ModeRangeSelect Mode = "range_select"
	ModeTaskDrag    Mode = "task_drag_extend"
	ModeResize      Mode = "resize"
)

// State - ровно один активный режим. Реализации: Idle, RangeSelect,
// TaskDragExtend, ResizeMode.
type State interface {
	Mode() Mode
}

type Idle struct{}

func (Idle) Mode() Mode { return ModeIdle }

// RangeSelect - создание задачи протягиванием по пустым дням.
type RangeSelect struct {
	Anchor  time.Time
	Current time.Time
}

func (RangeSelect) Mode() Mode { return ModeRangeSelect }

// Bounds возвращает выделенный диапазон в порядке возрастания.
func (r RangeSelect) Bounds() (time.Time, time.Time) {
	if schedule.DaysBetween(r.Anchor, r.Current) < 0 {
		return r.Current, r.Anchor
	}
	return r.Anchor, r.Current
}

// TaskDragExtend - перетаскивание полосы задачи.
type TaskDragExtend struct {
	TaskID    uuid.UUID
	StartDay  time.Time
	EndDay    time.Time
	Extending bool
	Dropped   bool
	// Ended: перетаскивание закончено, ждём Settle
	Ended bool
}

func (TaskDragExtend) Mode() Mode { return ModeTaskDrag }

// ResizeMode - клики по дням двигают границы активной задачи.
type ResizeMode struct {
	Task TaskRef
}

func (ResizeMode) Mode() Mode { return ModeResize }

// TaskRef - то, что машине нужно знать о задаче.
type TaskRef struct {
	ID        uuid.UUID
	StartDate string
	EndDate   string
}

type TargetKind string

const (
	TargetNone TargetKind = ""
	TargetDay  TargetKind = "day"
	TargetTask TargetKind = "task"
)

// Target - элемент под указателем. Day заполнен и для полосы задачи: это
// колонка, над которой находится указатель.
type Target struct {
	Kind TargetKind
	Day  time.Time
	Task *TaskRef
}

func (t Target) HasDay() bool {
	return !t.Day.IsZero()
}

// ResolveTarget выбирает владельца события один раз: полоса задачи важнее
// ячейки дня под ней.
func ResolveTarget(task *TaskRef, day *time.Time) Target {
	var t Target
	if day != nil {
		t.Day = schedule.Day(*day)
		t.Kind = TargetDay
	}
	if task != nil {
		ref := *task
		t.Task = &ref
		t.Kind = TargetTask
	}
	return t
}
