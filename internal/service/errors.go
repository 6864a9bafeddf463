package service

import (
	"errors"
	"fmt"

	rep "goodVibes/internal/repository"
)

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeInvariant    = "INVARIANT_VIOLATION"
	CodeConflict     = "VERSION_CONFLICT"
	CodeUnauthorized = "UNAUTHORIZED"
)

type BusinessError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

type Detail struct {
	Key     string
	Payload any
}

func (b *BusinessError) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", b.Code, b.Message, b.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func (b *BusinessError) Unwrap() error {
	return b.Err
}

func ToDetail(key string, payload any) Detail {
	return Detail{
		Key:     key,
		Payload: payload,
	}
}

func NewBusinessError(code string, message string, details ...Detail) *BusinessError {
	busErr := &BusinessError{
		Code:    code,
		Message: message,
		Details: make(map[string]any),
	}

	for _, detail := range details {
		busErr.Details[detail.Key] = detail.Payload
	}

	return busErr
}

func NewNotFound(resource, id string) *BusinessError {
	return &BusinessError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %s не найден(а)", resource, id),
		Details: map[string]any{
			"resource": resource,
			"id":       id,
		},
	}
}

func NewValidationError(field, reason string) *BusinessError {
	return &BusinessError{
		Code:    CodeValidation,
		Message: fmt.Sprintf("Неверное значение поля '%s': %s", field, reason),
		Details: map[string]any{
			"field":  field,
			"reason": reason,
		},
	}
}

func NewInvariantViolation(rule, message string) *BusinessError {
	return NewBusinessError(CodeInvariant, message, ToDetail("rule", rule))
}

func NewUnauthorized(message string) *BusinessError {
	return NewBusinessError(CodeUnauthorized, message)
}

// IsCode проверяет код бизнес-ошибки в цепочке err.
func IsCode(err error, code string) bool {
	var busErr *BusinessError
	if errors.As(err, &busErr) {
		return busErr.Code == code
	}
	return false
}

// repoError переводит ошибки хранилища в бизнес-ошибки, остальное оборачивает.
func repoError(err error, resource, id, action string) error {
	switch {
	case errors.Is(err, rep.ErrNotFound):
		return NewNotFound(resource, id)
	case errors.Is(err, rep.ErrLastCalendar):
		return NewInvariantViolation("last_calendar", "нельзя удалить последний календарь")
	case errors.Is(err, rep.ErrVersionConflict):
		busErr := NewBusinessError(CodeConflict, "запись изменена другим запросом",
			ToDetail("resource", resource), ToDetail("id", id))
		busErr.Err = err
		return busErr
	default:
		return fmt.Errorf("%s: %w", action, err)
	}
}

const (
	resourceTodo     = "задача"
	resourceCalendar = "календарь"
	resourceTemplate = "шаблон"
	resourceSession  = "сессия"
)
