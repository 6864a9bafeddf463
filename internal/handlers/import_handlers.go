package handlers

import (
	"net/http"
	"time"

	"goodVibes/internal/handlers/dto"
	"goodVibes/internal/logger"

	"go.uber.org/zap"
)

// Import заменяет данные пользователя содержимым localStorage. Пустой набор
// ничего не меняет.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var request dto.ImportRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	res, err := h.svc.Import.Import(r.Context(), user.Username, request.Payload())
	if err != nil {
		handleServiceError(w, r, err, "не удалось перенести данные")
		return
	}

	logger.Info("HTTP_OUT: Данные перенесены",
		zap.Int("todos", res.Todos),
		zap.Int("calendars", res.Calendars),
		zap.Int("templates", res.Templates),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	respond(w, http.StatusOK, dto.FromImportResult(res))
}
