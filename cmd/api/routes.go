package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/penshort/userapi/internal/config"
	"github.com/penshort/userapi/internal/handler"
	"github.com/penshort/userapi/internal/metrics"
	"github.com/penshort/userapi/internal/middleware"
	"github.com/penshort/userapi/internal/service"
)

type routerDeps struct {
	cfg      *config.Config
	logger   *slog.Logger
	recorder *metrics.InMemoryRecorder
	users    *service.UserService

	// nil when not configured
	db    handler.HealthChecker
	cache handler.HealthChecker
}

// newRouter configures the chi router with all routes and middleware.
func newRouter(deps routerDeps) http.Handler {
	h := handler.New(deps.logger, deps.recorder)
	healthHandler := handler.NewHealthHandler(deps.db, deps.cache)
	metricsHandler := handler.NewMetricsHandler(deps.recorder)
	userHandler := handler.NewUserHandler(deps.users, deps.logger, deps.recorder)

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = deps.cfg.GetCORSAllowedOrigins()

	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.logger))
	r.Use(middleware.Recoverer(deps.logger, deps.recorder))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: deps.cfg.IsDevelopment()}))
	r.Use(middleware.CORS(corsCfg))
	r.Use(middleware.MaxBodySize(deps.cfg.MaxRequestBodySize))

	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)
	r.Get("/metrics", metricsHandler.Metrics)
	r.Get("/", h.Root)
	r.Get("/openapi.yaml", h.OpenAPI)

	r.Route("/api/v1/users", func(r chi.Router) {
		r.Get("/", userHandler.List)
		r.Post("/", userHandler.Create)
		r.Get("/{id}", userHandler.Get)
	})

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}
