package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"goodVibes/internal/logger"

	"go.uber.org/zap"
)

const timeoutBody = `{"error":"request_timeout","message":"запрос выполнялся слишком долго"}`

// Timeout ограничивает время обработчика. Контекст запроса получает дедлайн,
// клиент по его истечении получает 503.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)

			if errors.Is(r.Context().Err(), context.DeadlineExceeded) {
				logger.Warn(
					"HTTP: таймаут запроса",
					zap.String("request_id", GetRequestID(r.Context())),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("client_ip", r.RemoteAddr),
					zap.Duration("ms", timeout),
				)
			}
		})
		return http.TimeoutHandler(inner, timeout, timeoutBody)
	}
}
