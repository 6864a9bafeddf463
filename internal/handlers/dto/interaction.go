package dto

import (
	"time"

	"goodVibes/internal/interaction"
	"goodVibes/internal/schedule"
	"goodVibes/internal/service"

	"github.com/google/uuid"
)

type OpenSessionRequest struct {
	Center string `json:"center"`
}

type NavigateRequest struct {
	Weeks int `json:"weeks"`
}

type TaskRefRequest struct {
	ID        uuid.UUID `json:"id"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
}

func (t *TaskRefRequest) ref() *interaction.TaskRef {
	if t == nil {
		return nil
	}
	return &interaction.TaskRef{ID: t.ID, StartDate: t.StartDate, EndDate: t.EndDate}
}

// EventRequest - событие указателя. task - полоса под указателем (или задача
// из ответа сервера для task_created/task_updated), day - колонка дня.
type EventRequest struct {
	Type   string          `json:"type"`
	At     *time.Time      `json:"at,omitempty"`
	Day    string          `json:"day,omitempty"`
	Task   *TaskRefRequest `json:"task,omitempty"`
	Button string          `json:"button,omitempty"`
}

// Event переводит запрос в событие машины. Даты дня разбираются в loc.
func (r EventRequest) Event(loc *time.Location) (interaction.Event, error) {
	ev := interaction.Event{Type: interaction.EventType(r.Type)}
	if r.At != nil {
		ev.At = *r.At
	}
	if r.Button == "secondary" {
		ev.Button = interaction.ButtonSecondary
	}

	var day *time.Time
	if r.Day != "" {
		d, err := schedule.ParseTaskDate(r.Day, loc)
		if err != nil {
			return interaction.Event{}, err
		}
		day = &d
	}

	switch ev.Type {
	case interaction.EventTaskCreated, interaction.EventTaskUpdated:
		ev.Task = r.Task.ref()
	default:
		ev.Target = interaction.ResolveTarget(r.Task.ref(), day)
	}
	return ev, nil
}

type EffectResponse struct {
	Type      string     `json:"type"`
	TaskID    *uuid.UUID `json:"task_id,omitempty"`
	StartDate string     `json:"start_date,omitempty"`
	EndDate   string     `json:"end_date,omitempty"`
	AfterMs   int64      `json:"after_ms,omitempty"`
}

type StateResponse struct {
	Mode       string          `json:"mode"`
	RangeStart string          `json:"range_start,omitempty"`
	RangeEnd   string          `json:"range_end,omitempty"`
	TaskID     *uuid.UUID      `json:"task_id,omitempty"`
	DragStart  string          `json:"drag_start_day,omitempty"`
	DragEnd    string          `json:"drag_end_day,omitempty"`
	Extending  bool            `json:"extending,omitempty"`
	Task       *TaskRefRequest `json:"task,omitempty"`
}

func formatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return schedule.FormatDate(t)
}

func FromState(s interaction.State) StateResponse {
	resp := StateResponse{Mode: string(s.Mode())}
	switch st := s.(type) {
	case interaction.RangeSelect:
		start, end := st.Bounds()
		resp.RangeStart = formatDay(start)
		resp.RangeEnd = formatDay(end)
	case interaction.TaskDragExtend:
		id := st.TaskID
		resp.TaskID = &id
		resp.DragStart = formatDay(st.StartDay)
		resp.DragEnd = formatDay(st.EndDay)
		resp.Extending = st.Extending
	case interaction.ResizeMode:
		resp.Task = &TaskRefRequest{ID: st.Task.ID, StartDate: st.Task.StartDate, EndDate: st.Task.EndDate}
	}
	return resp
}

type SessionResponse struct {
	ID        uuid.UUID        `json:"id"`
	Window    WindowResponse   `json:"window"`
	State     StateResponse    `json:"state"`
	Listening bool             `json:"listening"`
	Effects   []EffectResponse `json:"effects"`
	Updated   []TodoResponse   `json:"updated"`
}

func FromSession(v *service.SessionView) SessionResponse {
	effects := make([]EffectResponse, len(v.Effects))
	for i, e := range v.Effects {
		effects[i] = EffectResponse{
			Type:      string(e.Type),
			StartDate: e.StartDate,
			EndDate:   e.EndDate,
			AfterMs:   e.After.Milliseconds(),
		}
		if e.TaskID != uuid.Nil {
			id := e.TaskID
			effects[i].TaskID = &id
		}
	}
	return SessionResponse{
		ID:        v.ID,
		Window:    FromWindow(v.Window),
		State:     FromState(v.State),
		Listening: v.Listening,
		Effects:   effects,
		Updated:   FromTodoList(v.Updated),
	}
}
