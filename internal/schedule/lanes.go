package schedule

import "goodVibes/internal/models"

func overlaps(a, b PlacedTask) bool {
	return !(a.StartDayIndex > b.EndDayIndex || b.StartDayIndex > a.EndDayIndex)
}

// AssignLanes жадно раскладывает задачи по рядам в порядке списка: каждая
// попадает в первый ряд без пересечений, при необходимости открывается новый.
// Возвращает число рядов.
func AssignLanes(placed []PlacedTask) int {
	var rows [][]int

	for i := range placed {
		row := 0
		for ; row < len(rows); row++ {
			conflict := false
			for _, j := range rows[row] {
				if overlaps(placed[i], placed[j]) {
					conflict = true
					break
				}
			}
			if !conflict {
				break
			}
		}
		if row == len(rows) {
			rows = append(rows, nil)
		}
		rows[row] = append(rows[row], i)
		placed[i].Row = row
	}

	return MaxLanes(placed)
}

func MaxLanes(placed []PlacedTask) int {
	maxLanes := 0
	for _, p := range placed {
		if p.Row+1 > maxLanes {
			maxLanes = p.Row + 1
		}
	}
	return maxLanes
}

type Week struct {
	Window   Window
	Tasks    []PlacedTask
	MaxLanes int
}

func BuildWeek(todos []*models.Todo, w Window) Week {
	placed := Resolve(todos, w)
	lanes := AssignLanes(placed)
	return Week{
		Window:   w,
		Tasks:    placed,
		MaxLanes: lanes,
	}
}
