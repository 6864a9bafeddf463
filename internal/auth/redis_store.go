package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const tokenKeyPrefix = "goodvibes:token:"

// RedisStore хранит токены в Redis, срок жизни задаётся TTL ключа.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Create(ctx context.Context, username string) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, tokenKeyPrefix+token, username, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Lookup возвращает имя пользователя; ok=false, если токен неизвестен или истёк.
func (s *RedisStore) Lookup(ctx context.Context, token string) (string, bool, error) {
	username, err := s.rdb.Get(ctx, tokenKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return username, true, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, tokenKeyPrefix+token).Err()
}
