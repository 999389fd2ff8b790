package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskdeck/taskdeck-api/internal/config"
	"github.com/taskdeck/taskdeck-api/internal/platform/postgres"
	"github.com/taskdeck/taskdeck-api/internal/ratelimit"
	"github.com/taskdeck/taskdeck-api/internal/service"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// application holds the shared dependencies for the server: configuration,
// connections, stores, and services. It is assembled once at startup and
// torn down by cleanup.
type application struct {
	config *config.Config
	logger *slog.Logger

	db          *sql.DB
	redisClient *redis.Client

	userService  service.UserService
	taskService  service.TaskService
	tokenService auth.TokenService
	limiter      ratelimit.Limiter
}

// newApplication wires the full dependency graph from the configuration:
// database, stores, services, and the rate limiter backend.
func newApplication(cfg *config.Config) (*application, error) {
	logger := slog.Default()

	db, err := setupAppDatabase(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	userStore := postgres.NewPostgresUserStore(db, logger)
	taskStore := postgres.NewPostgresTaskStore(db, logger)
	tokenStore := postgres.NewPostgresTokenStore(db, logger)
	txRunner := store.NewSQLRunner(db)

	tokenTTL := time.Duration(cfg.Auth.TokenTTLMinutes) * time.Minute
	tokenService := auth.NewTokenService(tokenStore, tokenTTL, logger)

	userService := service.NewUserService(
		userStore,
		tokenService,
		auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		auth.NewBcryptVerifier(),
		txRunner,
		logger,
	)
	taskService := service.NewTaskService(taskStore, txRunner, logger)

	app := &application{
		config:       cfg,
		logger:       logger,
		db:           db,
		userService:  userService,
		taskService:  taskService,
		tokenService: tokenService,
	}

	if cfg.Redis.Enabled {
		app.redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		app.limiter = ratelimit.NewRedisLimiter(app.redisClient, "ratelimit")
		logger.Info("using Redis rate limiter", "addr", cfg.Redis.Addr)
	} else {
		app.limiter = ratelimit.NewMemoryLimiter()
		logger.Info("using in-process rate limiter")
	}

	return app, nil
}

// cleanup releases the application's long-lived resources. Safe to call more
// than once.
func (app *application) cleanup() {
	if app.redisClient != nil {
		if err := app.redisClient.Close(); err != nil {
			app.logger.Error("failed to close Redis client", "error", err)
		}
		app.redisClient = nil
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
		app.db = nil
	}
}
