package handlers

import (
	"net/http"
	"time"

	"goodVibes/internal/handlers/dto"
	"goodVibes/internal/logger"
	"goodVibes/internal/schedule"

	"go.uber.org/zap"
)

// OpenSession начинает работу с сеткой недели. Тело необязательно: без center
// окно строится вокруг сегодняшнего дня.
func (h *Handler) OpenSession(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	center := h.now().In(h.loc)
	if r.ContentLength > 0 {
		var request dto.OpenSessionRequest
		if !decodeJSON(w, r, &request) {
			return
		}
		if request.Center != "" {
			parsed, err := schedule.ParseTaskDate(request.Center, h.loc)
			if err != nil {
				logger.Warn("HTTP: Ошибка валидации",
					zap.String("field", "center"),
					zap.String("error", "wrong_value"),
					zap.String("client_ip", r.RemoteAddr))

				responseWithError(w, http.StatusBadRequest, "center должен быть датой YYYY-MM-DD")
				return
			}
			center = parsed
		}
	}

	view := h.svc.Interactions.Open(r.Context(), user.Username, center)

	logger.Info("HTTP_OUT: Сессия сетки открыта",
		zap.String("session_id", view.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	respond(w, http.StatusCreated, dto.FromSession(view))
}

func (h *Handler) SessionEvent(w http.ResponseWriter, r *http.Request) {
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

	var request dto.EventRequest
	if !decodeJSON(w, r, &request) {
		return
	}
	ev, err := request.Event(h.loc)
	if err != nil {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "day"),
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "day должен быть датой YYYY-MM-DD")
		return
	}

	view, err := h.svc.Interactions.Handle(r.Context(), user.Username, id, ev)
	if err != nil {
		var extra []Payload
		if view != nil {
			// состояние сетки после отката неудачного изменения
			extra = append(extra, toPayload("session", dto.FromSession(view)))
		}
		handleServiceError(w, r, err, "не удалось обработать событие", extra...)
		return
	}

	logger.Info("HTTP_OUT: Событие обработано",
		zap.String("session_id", id.String()),
		zap.String("event", request.Type),
		zap.String("mode", string(view.State.Mode())),
		zap.Int("effects", len(view.Effects)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	respond(w, http.StatusOK, dto.FromSession(view))
}

func (h *Handler) NavigateSession(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	var request dto.NavigateRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	view, err := h.svc.Interactions.Navigate(r.Context(), user.Username, id, request.Weeks)
	if err != nil {
		handleServiceError(w, r, err, "не удалось сдвинуть неделю")
		return
	}
	respond(w, http.StatusOK, dto.FromSession(view))
}

// CloseSession - уход со страницы: незавершённый жест отменяется.
func (h *Handler) CloseSession(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Interactions.Close(r.Context(), user.Username, id); err != nil {
		handleServiceError(w, r, err, "не удалось закрыть сессию")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
