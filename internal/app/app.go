// Package app собирает сервер из конфигурации: хранилище, кэш, сервисы, роутер и фоновые задачи.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"goodVibes/internal/auth"
	"goodVibes/internal/cache"
	"goodVibes/internal/config"
	"goodVibes/internal/handlers"
	"goodVibes/internal/interaction"
	"goodVibes/internal/logger"
	"goodVibes/internal/middleware"
	"goodVibes/internal/repository/inmemory"
	"goodVibes/internal/repository/postgres"
	"goodVibes/internal/repository/sqlite"
	"goodVibes/internal/service"
	"goodVibes/internal/worker"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type App struct {
	config     *config.Config
	loc        *time.Location
	server     *http.Server
	router     *chi.Mux
	repository service.Storage
	redis      *redis.Client
	cache      service.TodoCache
	auth       *service.AuthService
	scheduler  *worker.Scheduler
	shutdowns  []func() // функции для graceful shutdown, вызываются в обратном порядке
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("инициализация логгера: %w", err)
	}
	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("App: Завершение работы логгирования...")
		logger.Sync()
	})

	loc, err := a.config.Location()
	if err != nil {
		return err
	}
	a.loc = loc

	if err := a.initStorage(ctx); err != nil {
		return err
	}
	if err := a.initRedis(ctx); err != nil {
		return err
	}

	svc, sweeper, err := a.initServices(ctx)
	if err != nil {
		return err
	}
	a.initRouter(svc)

	if err := a.initWorkers(sweeper); err != nil {
		return err
	}

	a.server = &http.Server{
		Addr:         a.config.GetServerAddr(),
		Handler:      a.router,
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
	}
	return nil
}

func (a *App) initStorage(ctx context.Context) error {
	cfg := a.config
	switch cfg.Repository.Type {
	case config.RepositoryPostgres:
		if cfg.Database.Migrate {
			if err := postgres.Migrate(cfg.Database.URL); err != nil {
				return fmt.Errorf("миграции: %w", err)
			}
		}
		storage, err := postgres.New(ctx, cfg.Database.URL, postgres.PoolConfig{
			MaxConns:        int32(cfg.Database.MaxConnections),
			MinConns:        int32(cfg.Database.MinConnections),
			MaxConnIdleTime: cfg.Database.IdleTimeout,
		})
		if err != nil {
			return fmt.Errorf("подключение к postgres: %w", err)
		}
		a.repository = storage
	case config.RepositorySQLite:
		storage, err := sqlite.New(cfg.Repository.SQLitePath)
		if err != nil {
			return fmt.Errorf("открытие sqlite: %w", err)
		}
		a.repository = storage
	default:
		a.repository = inmemory.New()
	}

	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("App: Закрытие хранилища...")
		a.repository.Close()
	})
	logger.Info("App: Хранилище готово", zap.String("type", cfg.Repository.Type))
	return nil
}

func (a *App) initRedis(ctx context.Context) error {
	if !a.config.Redis.Enabled {
		return nil
	}
	rdb, err := cache.Connect(ctx, cache.RedisConfig{
		Addr:     a.config.Redis.Addr,
		Password: a.config.Redis.Password,
		DB:       a.config.Redis.DB,
	})
	if err != nil {
		return err
	}
	a.redis = rdb
	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("App: Закрытие Redis...")
		if err := rdb.Close(); err != nil {
			logger.Warn("App: ошибка закрытия Redis", zap.Error(err))
		}
	})
	return nil
}

func (a *App) initServices(ctx context.Context) (handlers.Services, *worker.Sweeper, error) {
	cfg := a.config
	repo := a.repository
	sweeper := worker.NewSweeper()

	if a.redis != nil {
		a.cache = cache.NewTodoCache(a.redis, cfg.Redis.CacheTTL)
	}
	todoCache := a.cache

	var tokens service.TokenStore
	if cfg.Auth.TokenStore == config.TokenStoreRedis {
		tokens = auth.NewRedisStore(a.redis, cfg.Auth.TokenTTL)
	} else {
		memory := auth.NewMemoryStore(cfg.Auth.TokenTTL)
		sweeper.Register("tokens", memory)
		tokens = memory
	}

	users, err := configuredUsers(cfg.Auth)
	if err != nil {
		return handlers.Services{}, nil, err
	}

	todos := service.NewTodoService(repo, repo, repo, todoCache, a.loc)
	calendars := service.NewCalendarService(repo, todoCache)
	for name := range users {
		if _, err := calendars.EnsureDefaults(ctx, name); err != nil {
			return handlers.Services{}, nil, fmt.Errorf("календари пользователя %s: %w", name, err)
		}
	}

	interactions := service.NewInteractionService(todos, service.InteractionConfig{
		Machine: interaction.Config{
			DoubleTapWindow: cfg.Interaction.DoubleTapWindow,
			SettleDelay:     cfg.Interaction.SettleDelay,
			CreateCooldown:  cfg.Interaction.CreateCooldown,
		},
		SessionTTL: cfg.Interaction.SessionTTL,
	})
	sweeper.Register("interactions", interactions)

	a.auth = service.NewAuthService(users, tokens, calendars)

	svc := handlers.Services{
		Todos:        todos,
		Calendars:    calendars,
		Templates:    service.NewTemplateService(repo),
		Week:         service.NewWeekService(todos, repo),
		Analytics:    service.NewAnalyticsService(todos, repo),
		Import:       service.NewImportService(repo, todoCache),
		Export:       service.NewExportService(todos, repo, a.loc),
		Auth:         a.auth,
		Interactions: interactions,
		Health:       repo,
	}
	return svc, sweeper, nil
}

// configuredUsers добавляет пользователя по умолчанию, если его нет в списке.
func configuredUsers(cfg config.AuthConfig) (map[string]string, error) {
	users := make(map[string]string, len(cfg.Users)+1)
	for name, hash := range cfg.Users {
		users[name] = hash
	}
	if cfg.DefaultUsername == "" || cfg.DefaultPassword == "" {
		return users, nil
	}
	if _, ok := users[cfg.DefaultUsername]; ok {
		return users, nil
	}

	hash, err := auth.HashPassword(cfg.DefaultPassword)
	if err != nil {
		return nil, fmt.Errorf("хэш пароля по умолчанию: %w", err)
	}
	users[cfg.DefaultUsername] = hash
	logger.Warn("App: используется пользователь по умолчанию, смените пароль",
		zap.String("user", cfg.DefaultUsername))
	return users, nil
}

func (a *App) initRouter(svc handlers.Services) {
	cfg := a.config
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.RateLimit(cfg.Server.RateLimitRPM))
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	h := handlers.NewHandler(svc, a.loc)
	h.Register(r, middleware.Auth(a.auth))

	a.router = r
}

func (a *App) initWorkers(sweeper *worker.Sweeper) error {
	cfg := a.config.Worker
	a.scheduler = worker.NewScheduler(a.loc)

	legacy := worker.NewLegacyMigrationWorker(a.repository, a.cache, cfg.BatchSize)

	if cfg.LegacyMigrationCron != "" {
		if err := a.scheduler.Add(cfg.LegacyMigrationCron, legacy); err != nil {
			return err
		}
	}
	if cfg.SweepCron != "" {
		if err := a.scheduler.Add(cfg.SweepCron, sweeper); err != nil {
			return err
		}
	}
	return nil
}

// Run запускает фоновые задачи и HTTP-сервер. Возвращается после отмены ctx
// и завершения всех запросов.
func (a *App) Run(ctx context.Context) error {
	a.scheduler.Start()
	a.shutdowns = append(a.shutdowns, a.scheduler.Stop)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("App: Сервер запущен", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http сервер: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("App: Остановка сервера...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("остановка сервера: %w", err)
	}
	return nil
}

// Handler - собранный роутер, используется в тестах.
func (a *App) Handler() http.Handler {
	return a.router
}

func (a *App) Shutdown() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
	a.shutdowns = nil
}
