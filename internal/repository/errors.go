package repository

import "errors"

var (
	ErrNotFound        = errors.New("запись не найдена")
	ErrVersionConflict = errors.New("конфликт версий")
	// ErrLastCalendar - удаление оставило бы пользователя без календарей.
	ErrLastCalendar = errors.New("последний календарь")
)
