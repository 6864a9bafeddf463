// Package sqlite - хранилище на SQLite через gorm для запуска без отдельной БД.
package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"goodVibes/internal/logger"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type Storage struct {
	db *gorm.DB
}

// gormWriter направляет сообщения gorm в общий логгер.
type gormWriter struct{}

func (gormWriter) Printf(format string, args ...any) {
	logger.Warn("Repository: " + strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func New(dsn string) (*Storage, error) {
	if dsn == "" {
		dsn = "goodvibes.db"
	}
	if err := ensureDir(dsn); err != nil {
		return nil, err
	}

	dbLogger := gormlogger.New(gormWriter{}, gormlogger.Config{
		SlowThreshold:             100 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: dbLogger})
	if err != nil {
		logger.Error("Repository: Не удалось открыть SQLite", err, zap.String("dsn", dsn))
		return nil, fmt.Errorf("открытие бд: %w", err)
	}

	if err := db.AutoMigrate(&calendarRecord{}, &todoRecord{}, &templateRecord{}); err != nil {
		logger.Error("Repository: Ошибка миграции SQLite", err)
		return nil, fmt.Errorf("миграция бд: %w", err)
	}

	logger.Info("Repository: Успешное подключение к SQLite", zap.String("dsn", dsn))
	return &Storage{db: db}, nil
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("получение соединения: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return fmt.Errorf("проверка соединения ping: %w", err)
	}
	return nil
}

func (s *Storage) Close() {
	sqlDB, err := s.db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Warn("Repository: Ошибка закрытия SQLite", zap.Error(err))
		return
	}
	logger.Info("Repository: Соединение с SQLite закрыто")
}

// ensureDir создаёт каталог для файла базы.
func ensureDir(dsn string) error {
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	clean := strings.TrimPrefix(dsn, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("создание каталога %q: %w", dir, err)
	}
	return nil
}
