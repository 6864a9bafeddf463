package handlers

import (
	"net/http"
	"time"

	"goodVibes/internal/handlers/dto"
	"goodVibes/internal/logger"
	"goodVibes/internal/schedule"
	"goodVibes/internal/service"

	"go.uber.org/zap"
)

// Week - сетка из семи дней, center (YYYY-MM-DD) становится третьей колонкой.
func (h *Handler) Week(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	center := h.now().In(h.loc)
	if raw := r.URL.Query().Get("center"); raw != "" {
		parsed, err := schedule.ParseTaskDate(raw, h.loc)
		if err != nil {
			logger.Warn("HTTP: Неверное значение параметра",
				zap.String("querry", "center"),
				zap.String("value", raw),
				zap.String("client_ip", r.RemoteAddr))

			responseWithError(w, http.StatusBadRequest, "center должен быть датой YYYY-MM-DD")
			return
		}
		center = parsed
	}
	calendarID, ok := parseOptionalUUIDQuery(w, r, "calendar_id")
	if !ok {
		return
	}

	view, err := h.svc.Week.Week(r.Context(), user.Username, center, calendarID)
	if err != nil {
		handleServiceError(w, r, err, "не удалось построить неделю")
		return
	}

	logger.Info("HTTP_OUT: Неделя построена",
		zap.String("week_start", schedule.FormatDate(view.Window.Start())),
		zap.Int("tasks", len(view.Tasks)),
		zap.Int("max_lanes", view.MaxLanes),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	respond(w, http.StatusOK, dto.FromWeek(view))
}

func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	rng := service.AnalyticsRange(r.URL.Query().Get("range"))
	summary, err := h.svc.Analytics.Summary(r.Context(), user.Username, rng, h.now().In(h.loc))
	if err != nil {
		handleServiceError(w, r, err, "не удалось посчитать статистику")
		return
	}

	logger.Info("HTTP_OUT: Статистика посчитана",
		zap.String("range", string(summary.Range)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	respond(w, http.StatusOK, dto.FromSummary(summary))
}

// ExportICS отдаёт задачи с датами как файл iCalendar.
func (h *Handler) ExportICS(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	calendarID, ok := parseOptionalUUIDQuery(w, r, "calendar_id")
	if !ok {
		return
	}

	body, err := h.svc.Export.ICS(r.Context(), user.Username, calendarID)
	if err != nil {
		handleServiceError(w, r, err, "не удалось выгрузить календарь")
		return
	}

	logger.Info("HTTP_OUT: Календарь выгружен",
		zap.Int("bytes", len(body)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="goodvibes.ics"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		logger.Error("HTTP: Ошибка записи ответа", err)
	}
}
