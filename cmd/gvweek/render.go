package main

import (
	"fmt"
	"strings"
	"time"

	"goodVibes/internal/handlers/dto"

	"github.com/charmbracelet/lipgloss"
)

const minColumnWidth = 12

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	todayStyle   = headerStyle.Foreground(lipgloss.Color("#f59e0b"))
	emptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4b5563"))
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")).Bold(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af"))
)

var weekdays = [...]string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}

func columnWidth(total, days int) int {
	if days == 0 {
		return minColumnWidth
	}
	w := total / days
	if w < minColumnWidth {
		return minColumnWidth
	}
	return w
}

// renderWeek рисует окно: строка заголовков дней, затем по строке на каждую дорожку.
func renderWeek(week *dto.WeekResponse, width int, today string) string {
	if week == nil || len(week.Days) == 0 {
		return emptyStyle.Render("нет данных")
	}
	col := columnWidth(width, len(week.Days))

	headers := make([]string, len(week.Days))
	for i, day := range week.Days {
		style := headerStyle
		if day == today {
			style = todayStyle
		}
		headers[i] = style.Width(col).Render(dayLabel(day))
	}

	lines := []string{lipgloss.JoinHorizontal(lipgloss.Top, headers...)}
	for lane := 0; lane < week.MaxLanes; lane++ {
		lines = append(lines, renderLane(week, lane, col))
	}
	if len(week.Tasks) == 0 {
		lines = append(lines, emptyStyle.Render("  задач на этой неделе нет"))
	}
	return strings.Join(lines, "\n")
}

func renderLane(week *dto.WeekResponse, lane, col int) string {
	byStart := make(map[int]dto.WeekTaskResponse)
	for _, t := range week.Tasks {
		if t.Row == lane {
			byStart[t.StartDayIndex] = t
		}
	}

	var cells []string
	for day := 0; day < len(week.Days); {
		task, ok := byStart[day]
		if !ok {
			cells = append(cells, emptyStyle.Width(col).Render(" ·"))
			day++
			continue
		}
		span := task.SpanWidth
		if span < 1 {
			span = 1
		}
		cells = append(cells, renderTask(task, span*col))
		day += span
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func renderTask(task dto.WeekTaskResponse, width int) string {
	title := task.Todo.Title
	if task.Todo.IsCompleted {
		title = "✓ " + title
	}
	if task.Overdue {
		title = overdueStyle.Render("!") + " " + title
	}

	style := lipgloss.NewStyle().
		Width(width).
		MaxWidth(width).
		Padding(0, 1)
	if task.Background != "" {
		style = style.Background(lipgloss.Color(task.Background))
	}
	if task.Border != "" {
		style = style.Foreground(lipgloss.Color(task.Border))
	}
	return style.Render(truncate(title, width-2))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

func dayLabel(day string) string {
	t, err := time.Parse(time.DateOnly, day)
	if err != nil {
		return day
	}
	return fmt.Sprintf("%s %02d.%02d", weekdays[t.Weekday()], t.Day(), int(t.Month()))
}
