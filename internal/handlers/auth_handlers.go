package handlers

import (
	"net/http"
	"strings"
	"time"

	"goodVibes/internal/handlers/dto"
	"goodVibes/internal/logger"
	"goodVibes/internal/middleware"

	"go.uber.org/zap"
)

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request dto.TokenRequest
	if !decodeJSON(w, r, &request) {
		return
	}
	request.Username = strings.TrimSpace(request.Username)
	if request.Username == "" || request.Password == "" {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "username/password"),
			zap.String("error", "empty_field"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "имя пользователя и пароль обязательны")
		return
	}

	token, err := h.svc.Auth.Login(r.Context(), request.Username, request.Password)
	if err != nil {
		handleServiceError(w, r, err, "не удалось выполнить вход")
		return
	}

	logger.Info("HTTP_OUT: Пользователь вошёл",
		zap.String("username", request.Username),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	respond(w, http.StatusOK, dto.TokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	token, _ := middleware.BearerToken(r)
	if err := h.svc.Auth.Logout(r.Context(), token); err != nil {
		handleServiceError(w, r, err, "не удалось завершить сессию")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	respond(w, http.StatusOK, dto.UserResponse{Username: user.Username})
}
