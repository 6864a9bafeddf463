package schedule

import "goodVibes/internal/models"

// MigrateLegacy переводит запись с единственным due_date на модель start/end.
// Повторный вызов ничего не меняет: наличие start_date или end_date означает,
// что запись уже мигрирована.
func MigrateLegacy(todo models.Todo) (models.Todo, bool) {
	if !todo.IsLegacy() {
		return todo, false
	}
	date := DatePart(todo.DueDate)
	todo.StartDate = date
	todo.EndDate = date
	todo.DueDate = ""
	return todo, true
}

// MigrateAll возвращает новые копии, исходные записи не трогает.
func MigrateAll(todos []*models.Todo) []*models.Todo {
	res := make([]*models.Todo, 0, len(todos))
	for _, t := range todos {
		if t == nil {
			continue
		}
		migrated, changed := MigrateLegacy(*t)
		if !changed {
			res = append(res, t)
			continue
		}
		res = append(res, &migrated)
	}
	return res
}
