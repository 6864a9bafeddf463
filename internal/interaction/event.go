package interaction

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventPointerDown  EventType = "pointer_down"
	EventPointerEnter EventType = "pointer_enter"
	EventPointerUp    EventType = "pointer_up"
	EventClick        EventType = "click"
	EventDragStart    EventType = "drag_start"
	EventDragEnter    EventType = "drag_enter"
	EventDrop         EventType = "drop"
	EventDragEnd      EventType = "drag_end"
	EventSettle       EventType = "settle"
	EventTaskCreated  EventType = "task_created"
	EventTaskUpdated  EventType = "task_updated"
	EventCancel       EventType = "cancel"
)

func (t EventType) Valid() bool {
	switch t {
	case EventPointerDown, EventPointerEnter, EventPointerUp, EventClick,
		EventDragStart, EventDragEnter, EventDrop, EventDragEnd, EventSettle,
		EventTaskCreated, EventTaskUpdated, EventCancel:
		return true
	}
	return false
}

// fromUser - событие от указателя, а не ответ сервера или таймер.
func (t EventType) fromUser() bool {
	switch t {
	case EventSettle, EventTaskCreated, EventTaskUpdated:
		return false
	}
	return true
}

type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
)

type Event struct {
	Type   EventType
	At     time.Time
	Target Target
	Button Button
	// Task - задача из ответа сервера для TaskCreated и TaskUpdated
	Task *TaskRef
}

type EffectType string

const (
	EffectOpenQuickCreate EffectType = "open_quick_create"
	EffectOpenContextMenu EffectType = "open_context_menu"
	EffectUpdateTaskDates EffectType = "update_task_dates"
	EffectAttachListeners EffectType = "attach_listeners"
	EffectDetachListeners EffectType = "detach_listeners"
	EffectScheduleSettle  EffectType = "schedule_settle"
	EffectResizeEntered   EffectType = "resize_entered"
	EffectResizeExited    EffectType = "resize_exited"
)

// Effect - действие, которое должен выполнить владелец машины.
type Effect struct {
	Type      EffectType
	TaskID    uuid.UUID
	StartDate string
	EndDate   string
	After     time.Duration
}
