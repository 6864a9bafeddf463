package schedule

import (
	"time"

	"goodVibes/internal/models"
)

// PlacedTask - положение задачи в конкретном окне. Вычисляется при каждой
// отрисовке и нигде не хранится.
type PlacedTask struct {
	Todo           models.Todo
	StartDayIndex  int
	EndDayIndex    int
	SpanWidth      int
	Row            int
	EffectiveStart time.Time
	EffectiveEnd   time.Time
}

// Place вычисляет колонки задачи в окне. Второй результат false, если задача
// в сетку не попадает: нет одной из дат, даты не разбираются или диапазон
// не пересекается с окном.
func Place(todo models.Todo, w Window) (PlacedTask, bool) {
	todo, _ = MigrateLegacy(todo)
	if !todo.HasRange() {
		return PlacedTask{}, false
	}

	loc := w.Location()
	start, err := ParseTaskDate(todo.StartDate, loc)
	if err != nil {
		return PlacedTask{}, false
	}
	end, err := ParseTaskDate(todo.EndDate, loc)
	if err != nil {
		return PlacedTask{}, false
	}

	if DaysBetween(w.Start(), end) < 0 || DaysBetween(start, w.End()) < 0 {
		return PlacedTask{}, false
	}

	startIdx := DaysBetween(w.Start(), start)
	if startIdx < 0 {
		startIdx = 0
	}
	endIdx := DaysBetween(w.Start(), end)
	if endIdx > DaysInWindow-1 {
		endIdx = DaysInWindow - 1
	}

	span := endIdx - startIdx + 1
	if span <= 0 {
		return PlacedTask{}, false
	}

	return PlacedTask{
		Todo:           todo,
		StartDayIndex:  startIdx,
		EndDayIndex:    endIdx,
		SpanWidth:      span,
		EffectiveStart: start,
		EffectiveEnd:   end,
	}, true
}

// Resolve сохраняет порядок входного списка: от него зависит раскладка по рядам.
func Resolve(todos []*models.Todo, w Window) []PlacedTask {
	res := make([]PlacedTask, 0, len(todos))
	for _, t := range todos {
		if t == nil {
			continue
		}
		if p, ok := Place(*t, w); ok {
			res = append(res, p)
		}
	}
	return res
}
