// Package cache - общий клиент Redis и кэш списков задач.
package cache

import (
	"context"
	"fmt"
	"time"

	"goodVibes/internal/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Connect открывает клиент и проверяет соединение.
func Connect(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		logger.Error("Cache: Redis недоступен", err, zap.String("addr", cfg.Addr))
		return nil, fmt.Errorf("подключение к redis: %w", err)
	}

	logger.Info("Cache: Подключение к Redis", zap.String("addr", cfg.Addr))
	return rdb, nil
}
