package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"goodVibes/internal/logger"
	"goodVibes/internal/models"
	"goodVibes/internal/service"

	"go.uber.org/zap"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// BearerToken достаёт токен из заголовка Authorization.
func BearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok && user != nil
}

// Auth пропускает только запросы с действующим bearer-токеном и кладёт
// пользователя в контекст.
func Auth(a Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, _ := BearerToken(r)

			user, err := a.Authenticate(r.Context(), token)
			if err != nil {
				if service.IsCode(err, service.CodeUnauthorized) {
					logger.Warn("HTTP: Отказ в доступе",
						zap.String("request_id", GetRequestID(r.Context())),
						zap.String("path", r.URL.Path),
						zap.String("client_ip", r.RemoteAddr),
						zap.Error(err))

					w.Header().Set("WWW-Authenticate", "Bearer")
					writeError(w, r, http.StatusUnauthorized, service.CodeUnauthorized, "требуется авторизация")
					return
				}

				logger.Error("HTTP: Ошибка проверки токена", err,
					zap.String("request_id", GetRequestID(r.Context())))
				writeError(w, r, http.StatusInternalServerError, "internal_error", "не удалось проверить токен")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error":      code,
		"message":    message,
		"request_id": GetRequestID(r.Context()),
	})
}
