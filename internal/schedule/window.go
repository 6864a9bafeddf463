package schedule

import "time"

const (
	DaysInWindow = 7
	// центральная дата показывается третьей колонкой
	CenterOffset = 2
)

// Window - семь подряд идущих дней сетки, каждый приведён к полудню.
type Window struct {
	Days [DaysInWindow]time.Time
}

func NewWindow(center time.Time) Window {
	return WindowStarting(AddDays(center, -CenterOffset))
}

func WindowStarting(start time.Time) Window {
	var w Window
	for i := range w.Days {
		w.Days[i] = AddDays(start, i)
	}
	return w
}

func (w Window) Start() time.Time {
	return w.Days[0]
}

func (w Window) End() time.Time {
	return w.Days[DaysInWindow-1]
}

func (w Window) Location() *time.Location {
	return w.Days[0].Location()
}

func (w Window) Center() time.Time {
	return w.Days[CenterOffset]
}

func (w Window) Next() Window {
	return WindowStarting(AddDays(w.Start(), DaysInWindow))
}

func (w Window) Prev() Window {
	return WindowStarting(AddDays(w.Start(), -DaysInWindow))
}

// Index возвращает номер колонки дня или -1, если день вне окна.
func (w Window) Index(day time.Time) int {
	i := DaysBetween(w.Start(), day)
	if i < 0 || i >= DaysInWindow {
		return -1
	}
	return i
}

func (w Window) Contains(day time.Time) bool {
	return w.Index(day) >= 0
}

func (w Window) Dates() []string {
	res := make([]string, 0, DaysInWindow)
	for _, d := range w.Days {
		res = append(res, FormatDate(d))
	}
	return res
}
