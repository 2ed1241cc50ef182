// Package main is the entrypoint for the Creel API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/creel/creel/internal/cache"
	"github.com/creel/creel/internal/config"
	"github.com/creel/creel/internal/feed"
	"github.com/creel/creel/internal/handler"
	"github.com/creel/creel/internal/metrics"
	"github.com/creel/creel/internal/middleware"
	"github.com/creel/creel/internal/repository"
	"github.com/creel/creel/internal/server"
	"github.com/creel/creel/internal/service"
)

func main() {
	// Initialize context
	ctx := context.Background()

	// Load .env in local development; ignored when the file is absent.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize database
	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	// Initialize cache
	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	defer cacheClient.Close()
	logger.Info("connected to Redis")

	// Initialize repositories
	catchRepo := repository.NewCatchRepository(repo)
	outingRepo := repository.NewOutingRepository(repo)
	activityRepo := repository.NewActivityRepository(repo)

	// Initialize metrics and feed publisher
	metricsRecorder := metrics.NewInMemory()
	publisher := feed.NewPublisher(cacheClient.Client(), logger, metricsRecorder)

	// Initialize services
	catchService := service.NewCatchService(catchRepo, outingRepo, cacheClient, publisher, logger, metricsRecorder)
	outingService := service.NewOutingService(outingRepo, cacheClient, logger, metricsRecorder)
	statsService := service.NewStatsService(catchRepo, outingRepo, cacheClient, cfg.StatsLocation(), cfg.ReportCacheTTL, logger, metricsRecorder)
	activityService := service.NewActivityService(activityRepo)
	apiKeyService := service.NewAPIKeyService(repo, cacheClient, logger)

	// Initialize handlers
	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	catchHandler := handler.NewCatchHandler(catchService, logger)
	outingHandler := handler.NewOutingHandler(outingService, logger)
	statsHandler := handler.NewStatsHandler(statsService, logger)
	activityHandler := handler.NewActivityHandler(activityService, logger)
	apiKeyHandler := handler.NewAPIKeyHandler(logger, apiKeyService)
	adminHandler := handler.NewAdminHandler(repo, logger)
	metricsHandler := handler.NewMetricsHandler(metricsRecorder)

	// Setup router
	r := setupRouter(routerDeps{
		base:     h,
		health:   healthHandler,
		catches:  catchHandler,
		outings:  outingHandler,
		stats:    statsHandler,
		activity: activityHandler,
		apiKeys:  apiKeyHandler,
		admin:    adminHandler,
		metrics:  metricsHandler,
		repo:     repo,
		cache:    cacheClient,
		cfg:      cfg,
		logger:   logger,
	})

	// Create server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	// Start the feed worker alongside the HTTP server
	if cfg.FeedWorkerEnabled {
		worker := feed.NewWorker(cacheClient.Client(), activityRepo, logger, feed.NewConsumerID(), metricsRecorder, feed.Config{
			BatchSize:    cfg.FeedBatchSize,
			BlockTimeout: cfg.FeedBlockTimeout,
		})

		workerCtx, cancelWorker := context.WithCancel(ctx)
		go func() {
			if err := worker.Run(workerCtx); err != nil && workerCtx.Err() == nil {
				logger.Error("feed worker exited", "error", err)
			}
		}()

		srv.OnShutdown("feed worker", func(shutdownCtx context.Context) error {
			cancelWorker()
			return worker.Shutdown(shutdownCtx)
		})
	}

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"feed_worker", cfg.FeedWorkerEnabled,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	level := parseLogLevel(cfg.LogLevel)

	opts := &slog.HandlerOptions{
		Level: level,
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
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// routerDeps bundles everything setupRouter needs.
type routerDeps struct {
	base     *handler.Handler
	health   *handler.HealthHandler
	catches  *handler.CatchHandler
	outings  *handler.OutingHandler
	stats    *handler.StatsHandler
	activity *handler.ActivityHandler
	apiKeys  *handler.APIKeyHandler
	admin    *handler.AdminHandler
	metrics  *handler.MetricsHandler
	repo     *repository.Repository
	cache    *cache.Cache
	cfg      *config.Config
	logger   *slog.Logger
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(d routerDeps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.logger))
	r.Use(middleware.Recoverer(d.logger))

	if origins := d.cfg.GetCORSAllowedOrigins(); len(origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   origins,
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	// Health and metrics endpoints (no auth required)
	r.Get("/healthz", d.health.Healthz)
	r.Get("/readyz", d.health.Readyz)
	r.Get("/metrics", d.metrics.Metrics)

	// Root info endpoint
	r.Get("/", d.base.Hello)

	// Auth middleware configuration
	authCfg := middleware.AuthConfig{
		Logger:     d.logger,
		Repository: d.repo,
		Cache:      d.cache,
	}

	// Rate limit middleware configuration
	rateLimitCfg := middleware.RateLimitConfig{
		Logger:     d.logger,
		Cache:      d.cache,
		APIEnabled: d.cfg.RateLimitAPIEnabled,
	}

	// API v1 routes (require authentication)
	r.Route("/api/v1", func(r chi.Router) {
		// Apply auth and rate limit middleware to all API routes
		r.Use(middleware.Auth(authCfg))
		r.Use(middleware.RateLimitAPI(rateLimitCfg))

		// Catch logging (requires write scope for mutations)
		r.Route("/catches", func(r chi.Router) {
			r.With(middleware.RequireRead()).Get("/", d.catches.List)
			r.With(middleware.RequireRead()).Get("/{id}", d.catches.Get)
			r.With(middleware.RequireWrite()).Post("/", d.catches.Create)
			r.With(middleware.RequireWrite()).Patch("/{id}", d.catches.Update)
			r.With(middleware.RequireWrite()).Delete("/{id}", d.catches.Delete)
		})

		// Outing management
		r.Route("/outings", func(r chi.Router) {
			r.With(middleware.RequireRead()).Get("/", d.outings.List)
			r.With(middleware.RequireRead()).Get("/{id}", d.outings.Get)
			r.With(middleware.RequireWrite()).Post("/", d.outings.Create)
			r.With(middleware.RequireWrite()).Patch("/{id}", d.outings.Update)
			r.With(middleware.RequireWrite()).Delete("/{id}", d.outings.Delete)
		})

		// Personal stats report
		r.With(middleware.RequireRead()).Get("/stats", d.stats.Get)

		// Community activity feed
		r.With(middleware.RequireRead()).Get("/feed", d.activity.List)

		// API key management (requires admin scope for mutations)
		r.Route("/api-keys", func(r chi.Router) {
			r.With(middleware.RequireRead()).Get("/", d.apiKeys.ListAPIKeys)
			r.With(middleware.RequireAdmin()).Post("/", d.apiKeys.CreateAPIKey)
			r.With(middleware.RequireAdmin()).Delete("/{key_id}", d.apiKeys.RevokeAPIKey)
			r.With(middleware.RequireAdmin()).Post("/{key_id}/rotate", d.apiKeys.RotateAPIKey)
		})

		// Admin endpoints
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin())
			r.Get("/api-keys", d.admin.ListAPIKeysByAngler)
			r.Get("/info", d.admin.ServiceInfo)
		})
	})

	// 404 and 405 handlers
	r.NotFound(d.base.NotFound)
	r.MethodNotAllowed(d.base.MethodNotAllowed)

	return r
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
