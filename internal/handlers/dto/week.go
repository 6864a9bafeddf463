package dto

import (
	"goodVibes/internal/schedule"
	"goodVibes/internal/service"
)

type WindowResponse struct {
	Start string   `json:"start"`
	End   string   `json:"end"`
	Days  []string `json:"days"`
}

func FromWindow(w schedule.Window) WindowResponse {
	return WindowResponse{
		Start: schedule.FormatDate(w.Start()),
		End:   schedule.FormatDate(w.End()),
		Days:  w.Dates(),
	}
}

type WeekTaskResponse struct {
	Todo          TodoResponse `json:"todo"`
	StartDayIndex int          `json:"start_day_index"`
	EndDayIndex   int          `json:"end_day_index"`
	SpanWidth     int          `json:"span_width"`
	Row           int          `json:"row"`
	Overdue       bool         `json:"overdue"`
	Color         string       `json:"color"`
	Background    string       `json:"background"`
	Border        string       `json:"border"`
}

type WeekResponse struct {
	WindowResponse
	MaxLanes int                `json:"max_lanes"`
	Tasks    []WeekTaskResponse `json:"tasks"`
}

func FromWeek(v *service.WeekView) WeekResponse {
	tasks := make([]WeekTaskResponse, len(v.Tasks))
	for i, t := range v.Tasks {
		todo := t.Todo
		tasks[i] = WeekTaskResponse{
			Todo:          FromTodo(&todo),
			StartDayIndex: t.StartDayIndex,
			EndDayIndex:   t.EndDayIndex,
			SpanWidth:     t.SpanWidth,
			Row:           t.Row,
			Overdue:       t.Overdue,
			Color:         t.Color,
			Background:    t.Background,
			Border:        t.Border,
		}
	}
	return WeekResponse{
		WindowResponse: FromWindow(v.Window),
		MaxLanes:       v.MaxLanes,
		Tasks:          tasks,
	}
}
