package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"goodVibes/internal/client"
	"goodVibes/internal/handlers/dto"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleWeek() *dto.WeekResponse {
	return &dto.WeekResponse{
		WindowResponse: dto.WindowResponse{
			Start: "2024-03-05",
			End:   "2024-03-11",
			Days:  []string{"2024-03-05", "2024-03-06", "2024-03-07", "2024-03-08", "2024-03-09", "2024-03-10", "2024-03-11"},
		},
		MaxLanes: 2,
		Tasks: []dto.WeekTaskResponse{
			{Todo: dto.TodoResponse{Title: "Conference"}, StartDayIndex: 0, EndDayIndex: 2, SpanWidth: 3, Row: 0, Background: "#dbeafe"},
			{Todo: dto.TodoResponse{Title: "Report"}, StartDayIndex: 1, EndDayIndex: 1, SpanWidth: 1, Row: 1, Overdue: true},
		},
	}
}

func TestRenderWeek(t *testing.T) {
	out := renderWeek(sampleWeek(), 100, "2024-03-07")

	assert.Contains(t, out, "Вт 05.03")
	assert.Contains(t, out, "Пн 11.03")
	assert.Contains(t, out, "Conference")
	assert.Contains(t, out, "Report")

	assert.Contains(t, renderWeek(nil, 100, ""), "нет данных")

	empty := sampleWeek()
	empty.Tasks = nil
	empty.MaxLanes = 0
	assert.Contains(t, renderWeek(empty, 100, ""), "задач на этой неделе нет")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Conf…", truncate("Conference", 5))
	assert.Equal(t, "…", truncate("Conference", 1))
	assert.Equal(t, "", truncate("Conference", 0))
}

func TestColumnWidth(t *testing.T) {
	assert.Equal(t, 20, columnWidth(140, 7))
	assert.Equal(t, minColumnWidth, columnWidth(30, 7))
	assert.Equal(t, minColumnWidth, columnWidth(100, 0))
}

func TestModel_Navigation(t *testing.T) {
	now := time.Date(2024, 3, 7, 9, 0, 0, 0, time.UTC)
	var requested []time.Time
	fetch := func(ctx context.Context, center time.Time) (*dto.WeekResponse, error) {
		requested = append(requested, center)
		return sampleWeek(), nil
	}
	m := newModel(fetch, func() time.Time { return now })

	msg := m.Init()()
	next, _ := m.Update(msg)
	m = next.(model)
	assert.False(t, m.loading)
	require.NotNil(t, m.week)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(model)
	require.NotNil(t, cmd)
	assert.True(t, m.loading)
	assert.Equal(t, now.AddDate(0, 0, 7), m.center)
	cmd()

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	m = next.(model)
	assert.Equal(t, now, m.center)

	require.Len(t, requested, 2)
	assert.Equal(t, now, requested[0])
	assert.Equal(t, now.AddDate(0, 0, 7), requested[1])

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Nil(t, cmd)
}

func TestModel_Errors(t *testing.T) {
	now := time.Date(2024, 3, 7, 9, 0, 0, 0, time.UTC)
	m := newModel(nil, func() time.Time { return now })

	next, _ := m.Update(weekMsg{err: client.ErrUnauthorized})
	m = next.(model)
	assert.Contains(t, m.View(), "сессия истекла")

	next, _ = m.Update(weekMsg{err: errors.New("boom")})
	m = next.(model)
	assert.Contains(t, m.View(), "ошибка: boom")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	_ = next
}
