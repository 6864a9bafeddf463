package service

import (
	"context"
	"fmt"
	"strings"

	"goodVibes/internal/auth"
	"goodVibes/internal/logger"
	"goodVibes/internal/models"

	"go.uber.org/zap"
)

type defaultsEnsurer interface {
	EnsureDefaults(ctx context.Context, userID string) ([]*models.Calendar, error)
}

// AuthService проверяет пароли настроенных пользователей и выдаёт bearer-токены.
// Регистрации нет: пользователи и их bcrypt-хэши задаются в конфигурации.
type AuthService struct {
	users    map[string]string
	tokens   TokenStore
	defaults defaultsEnsurer
}

// dummyHash сравнивается для неизвестных имён, чтобы время ответа не выдавало,
// существует ли пользователь.
const dummyHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z7Y8e6sZ0c4wPrF0E8o6rWqG"

func NewAuthService(users map[string]string, tokens TokenStore, defaults defaultsEnsurer) *AuthService {
	copied := make(map[string]string, len(users))
	for name, hash := range users {
		copied[name] = hash
	}
	return &AuthService{
		users:    copied,
		tokens:   tokens,
		defaults: defaults,
	}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	hash, ok := s.users[username]
	if !ok {
		_ = auth.CheckPassword(dummyHash, password)
		logger.Info("Service: вход неизвестного пользователя", zap.String("user", username))
		return "", NewUnauthorized(auth.ErrBadCredentials.Error())
	}
	if err := auth.CheckPassword(hash, password); err != nil {
		logger.Info("Service: неверный пароль", zap.String("user", username))
		return "", NewUnauthorized(err.Error())
	}

	if s.defaults != nil {
		if _, err := s.defaults.EnsureDefaults(ctx, username); err != nil {
			return "", err
		}
	}

	token, err := s.tokens.Create(ctx, username)
	if err != nil {
		return "", fmt.Errorf("выдача токена: %w", err)
	}
	logger.Info("Service: пользователь вошёл", zap.String("user", username))
	return token, nil
}

func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, NewUnauthorized("токен не передан")
	}
	username, ok, err := s.tokens.Lookup(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("проверка токена: %w", err)
	}
	if !ok {
		return nil, NewUnauthorized("токен недействителен или истёк")
	}
	// пользователь мог быть удалён из конфигурации после выдачи токена
	if _, known := s.users[username]; !known {
		return nil, NewUnauthorized("пользователь не найден")
	}
	return &models.User{Username: username}, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.tokens.Delete(ctx, token); err != nil {
		return fmt.Errorf("удаление токена: %w", err)
	}
	return nil
}
