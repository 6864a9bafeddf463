package handlers

import (
	"net/http"
	"strconv"
	"time"

	"goodVibes/internal/handlers/dto"
	"goodVibes/internal/logger"

	"go.uber.org/zap"
)

func (h *Handler) ListTodos(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	todos, err := h.svc.Todos.List(r.Context(), user.Username)
	if err != nil {
		handleServiceError(w, r, err, "не удалось получить задачи")
		return
	}

	logger.Info("HTTP_OUT: Задачи получены",
		zap.Int("count", len(todos)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	respond(w, http.StatusOK, dto.FromTodoList(todos))
}

func (h *Handler) GetTodo(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	todo, err := h.svc.Todos.Get(r.Context(), user.Username, id)
	if err != nil {
		handleServiceError(w, r, err, "не удалось получить задачу")
		return
	}

	logger.Info("HTTP_OUT: Задача получена",
		zap.String("task_id", id.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	respond(w, http.StatusOK, dto.FromTodo(todo))
}

// CreateTodo создаёт задачу или, при is_recurring, серию и возвращает список.
func (h *Handler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var request dto.CreateTodoRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	if rec := request.Recurrence(); rec != nil {
		logger.Info("HTTP: Вызов сервиса создания серии задач",
			zap.String("pattern", string(rec.Pattern)),
			zap.Int("count", rec.Count))

		todos, err := h.svc.Todos.CreateRecurring(r.Context(), user.Username, request.Input(), *rec)
		if err != nil {
			handleServiceError(w, r, err, "не удалось создать задачи")
			return
		}

		logger.Info("HTTP_OUT: Серия задач создана",
			zap.Int("count", len(todos)),
			zap.Duration("ms", time.Since(start)),
			zap.Int("http_status", http.StatusCreated))

		respond(w, http.StatusCreated, dto.FromTodoList(todos))
		return
	}

	logger.Info("HTTP: Вызов сервиса создания задачи")
	todo, err := h.svc.Todos.Create(r.Context(), user.Username, request.Input())
	if err != nil {
		handleServiceError(w, r, err, "не удалось создать задачу")
		return
	}

	logger.Info("HTTP_OUT: Задача создана",
		zap.String("task_id", todo.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	respond(w, http.StatusCreated, dto.FromTodo(todo))
}

func (h *Handler) CreateFromTemplate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	templateID, ok := parseUUIDParam(w, r, "templateId")
	if !ok {
		return
	}

	todo, err := h.svc.Todos.CreateFromTemplate(r.Context(), user.Username, templateID)
	if err != nil {
		handleServiceError(w, r, err, "не удалось создать задачу из шаблона")
		return
	}

	logger.Info("HTTP_OUT: Задача создана из шаблона",
		zap.String("task_id", todo.ID.String()),
		zap.String("template_id", templateID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	respond(w, http.StatusCreated, dto.FromTodo(todo))
}

func (h *Handler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	var request dto.UpdateTodoRequest
	if !decodeJSON(w, r, &request) {
		return
	}
	if request.Empty() {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("error", "empty_update"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "нет полей для обновления")
		return
	}

	todo, err := h.svc.Todos.Update(r.Context(), user.Username, id, request.Options(h.svc.Todos.WithCompleted)...)
	if err != nil {
		handleServiceError(w, r, err, "не удалось обновить задачу")
		return
	}

	logger.Info("HTTP_OUT: Задача обновлена",
		zap.String("task_id", id.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	respond(w, http.StatusOK, dto.FromTodo(todo))
}

func (h *Handler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Todos.Delete(r.Context(), user.Username, id); err != nil {
		handleServiceError(w, r, err, "не удалось удалить задачу")
		return
	}

	logger.Info("HTTP_OUT: Задача удалена",
		zap.String("task_id", id.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusNoContent))

	w.WriteHeader(http.StatusNoContent)
}

// Today - задачи на сегодня. include_completed=false скрывает выполненные.
func (h *Handler) Today(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	includeCompleted := true
	if raw := r.URL.Query().Get("include_completed"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			logger.Warn("HTTP: Неверное значение параметра",
				zap.String("querry", "include_completed"),
				zap.String("client_ip", r.RemoteAddr))

			responseWithError(w, http.StatusBadRequest, "неверное значение include_completed")
			return
		}
		includeCompleted = v
	}

	view, err := h.svc.Todos.Today(r.Context(), user.Username, includeCompleted)
	if err != nil {
		handleServiceError(w, r, err, "не удалось получить задачи на сегодня")
		return
	}

	logger.Info("HTTP_OUT: Задачи на сегодня получены",
		zap.Int("pending", len(view.Pending)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	respond(w, http.StatusOK, dto.FromToday(view))
}
