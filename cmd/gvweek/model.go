package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"goodVibes/internal/client"
	"goodVibes/internal/handlers/dto"

	tea "github.com/charmbracelet/bubbletea"
)

type weekMsg struct {
	week *dto.WeekResponse
	err  error
}

// model - экран недели. Стрелки листают окно на неделю, t возвращает к сегодняшнему дню.
type model struct {
	fetch   func(ctx context.Context, center time.Time) (*dto.WeekResponse, error)
	now     func() time.Time
	center  time.Time
	week    *dto.WeekResponse
	err     error
	loading bool
	width   int
}

func newModel(fetch func(ctx context.Context, center time.Time) (*dto.WeekResponse, error), now func() time.Time) model {
	return model{
		fetch:   fetch,
		now:     now,
		center:  now(),
		loading: true,
		width:   140,
	}
}

func (m model) load() tea.Cmd {
	center := m.center
	fetch := m.fetch
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		week, err := fetch(ctx, center)
		return weekMsg{week: week, err: err}
	}
}

func (m model) Init() tea.Cmd {
	return m.load()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case weekMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.week = msg.week
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.center = m.center.AddDate(0, 0, -7)
		case "right", "l":
			m.center = m.center.AddDate(0, 0, 7)
		case "t":
			m.center = m.now()
		case "r":
		default:
			return m, nil
		}
		m.loading = true
		return m, m.load()
	}
	return m, nil
}

func (m model) View() string {
	today := m.now().Format(time.DateOnly)
	body := renderWeek(m.week, m.width, today)

	status := "←/→ неделя · t сегодня · r обновить · q выход"
	switch {
	case m.loading:
		status = "загрузка…"
	case errors.Is(m.err, client.ErrUnauthorized):
		status = "сессия истекла, войдите заново"
	case m.err != nil:
		status = fmt.Sprintf("ошибка: %v", m.err)
	}
	return body + "\n\n" + statusStyle.Render(status) + "\n"
}
