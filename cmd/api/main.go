// Package main is the entrypoint for the users API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/penshort/userapi/internal/cache"
	"github.com/penshort/userapi/internal/config"
	"github.com/penshort/userapi/internal/handler"
	"github.com/penshort/userapi/internal/metrics"
	"github.com/penshort/userapi/internal/repository"
	"github.com/penshort/userapi/internal/server"
	"github.com/penshort/userapi/internal/service"
)

func main() {
	ctx := context.Background()

	if err := config.LoadDotenv(".env"); err != nil {
		slog.Error("failed to load .env", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	var shutdownHooks []namedHook

	// Users store
	var store service.UserStore = repository.NewStub()
	var dbChecker handler.HealthChecker
	if cfg.UsesPostgres() {
		repo, err := repository.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error(
				"failed to connect to database",
				slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
				slog.String("database_url", redactURL(cfg.DatabaseURL)),
			)
			os.Exit(1)
		}
		logger.Info("connected to database")
		store, dbChecker = repo, repo
		shutdownHooks = append(shutdownHooks, namedHook{"postgres", func(context.Context) error {
			repo.Close()
			return nil
		}})
	} else {
		logger.Info("using stub users store")
	}

	// Optional cache
	var userCache service.UserCache
	var cacheChecker handler.HealthChecker
	if cfg.CacheEnabled() {
		cacheClient, err := cache.New(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error(
				"failed to connect to Redis",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			os.Exit(1)
		}
		logger.Info("connected to Redis")
		userCache, cacheChecker = cacheClient, cacheClient
		shutdownHooks = append(shutdownHooks, namedHook{"redis", func(context.Context) error {
			return cacheClient.Close()
		}})
	}

	recorder := metrics.NewInMemory()
	userService := service.NewUserService(store, userCache, logger, recorder)

	r := newRouter(routerDeps{
		cfg:      cfg,
		logger:   logger,
		recorder: recorder,
		users:    userService,
		db:       dbChecker,
		cache:    cacheChecker,
	})

	srv := server.New(
		r,
		cfg.Addr(),
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)
	for _, hook := range shutdownHooks {
		srv.OnShutdown(hook.name, hook.fn)
	}

	logger.Info("starting server",
		"addr", cfg.Addr(),
		"env", cfg.AppEnv,
		"storage", cfg.StorageDriver,
		"cache", cfg.CacheEnabled(),
	)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

type namedHook struct {
	name string
	fn   server.ShutdownFunc
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
