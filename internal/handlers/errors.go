package handlers

import (
	"errors"
	"net/http"

	"goodVibes/internal/logger"
	"goodVibes/internal/middleware"
	"goodVibes/internal/service"

	"go.uber.org/zap"
)

func handleBusinessError(w http.ResponseWriter, r *http.Request, err error, extra ...Payload) bool {
	var businessErr *service.BusinessError
	if !errors.As(err, &businessErr) {
		return false
	}
	statusCode := mapBusinessErrorToHTTP(businessErr.Code)

	logger.Warn("HTTP: Бизнес-ошибка",
		zap.String("error_code", businessErr.Code),
		zap.String("message", businessErr.Message),
		zap.Int("http_status", statusCode),
		zap.String("request_id", middleware.GetRequestID(r.Context())))

	payload := []Payload{
		toPayload("error", businessErr.Code),
		toPayload("message", businessErr.Message),
		toPayload("details", businessErr.Details),
	}
	responseWithJSON(w, statusCode, append(payload, extra...)...)
	return true
}

// handleServiceError отвечает бизнес-ошибкой или 500 с defaultMessage.
// extra добавляется к телу ответа в обоих случаях.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error, defaultMessage string, extra ...Payload) {
	if handleBusinessError(w, r, err, extra...) {
		return
	}
	logger.Error("HTTP: Ошибка Service", err,
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.GetRequestID(r.Context())))
	responseWithJSON(w, http.StatusInternalServerError, append([]Payload{toPayload("error", defaultMessage)}, extra...)...)
}

func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeValidation:
		return http.StatusBadRequest
	case service.CodeInvariant, service.CodeConflict:
		return http.StatusConflict
	case service.CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}
