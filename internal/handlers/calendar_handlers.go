package handlers

import (
	"net/http"
	"time"

	"goodVibes/internal/handlers/dto"
	"goodVibes/internal/logger"

	"go.uber.org/zap"
)

func (h *Handler) ListCalendars(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	calendars, err := h.svc.Calendars.List(r.Context(), user.Username)
	if err != nil {
		handleServiceError(w, r, err, "не удалось получить календари")
		return
	}

	logger.Info("HTTP_OUT: Календари получены",
		zap.Int("count", len(calendars)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	respond(w, http.StatusOK, dto.FromCalendarList(calendars))
}

func (h *Handler) CreateCalendar(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var request dto.CreateCalendarRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	calendar, err := h.svc.Calendars.Create(r.Context(), user.Username, request.Input())
	if err != nil {
		handleServiceError(w, r, err, "не удалось создать календарь")
		return
	}

	logger.Info("HTTP_OUT: Календарь создан",
		zap.String("calendar_id", calendar.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	respond(w, http.StatusCreated, dto.FromCalendar(calendar))
}

func (h *Handler) UpdateCalendar(w http.ResponseWriter, r *http.Request) {
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

	var request dto.UpdateCalendarRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	calendar, err := h.svc.Calendars.Update(r.Context(), user.Username, id, request.Patch())
	if err != nil {
		handleServiceError(w, r, err, "не удалось обновить календарь")
		return
	}

	logger.Info("HTTP_OUT: Календарь обновлён",
		zap.String("calendar_id", id.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	respond(w, http.StatusOK, dto.FromCalendar(calendar))
}

// DeleteCalendar удаляет календарь вместе с его задачами. Последний календарь
// удалить нельзя.
func (h *Handler) DeleteCalendar(w http.ResponseWriter, r *http.Request) {
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

	if err := h.svc.Calendars.Delete(r.Context(), user.Username, id); err != nil {
		handleServiceError(w, r, err, "не удалось удалить календарь")
		return
	}

	logger.Info("HTTP_OUT: Календарь удалён",
		zap.String("calendar_id", id.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusNoContent))

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	templates, err := h.svc.Templates.List(r.Context(), user.Username)
	if err != nil {
		handleServiceError(w, r, err, "не удалось получить шаблоны")
		return
	}

	logger.Info("HTTP_OUT: Шаблоны получены",
		zap.Int("count", len(templates)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	respond(w, http.StatusOK, dto.FromTemplateList(templates))
}
