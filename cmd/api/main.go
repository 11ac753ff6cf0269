// Package main is the entrypoint for the Tableside API server.
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
	"github.com/joho/godotenv"

	"github.com/tableside/tableside/internal/cache"
	"github.com/tableside/tableside/internal/config"
	"github.com/tableside/tableside/internal/handler"
	"github.com/tableside/tableside/internal/middleware"
	"github.com/tableside/tableside/internal/notify"
	"github.com/tableside/tableside/internal/repository"
	"github.com/tableside/tableside/internal/server"
	"github.com/tableside/tableside/internal/service"
	"github.com/tableside/tableside/internal/session"
)

func main() {
	ctx := context.Background()

	// Local development convenience; missing .env is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

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

	if err := repo.Migrate(ctx); err != nil {
		logger.Error("failed to run migrations", slog.String("error", sanitizeError(err, cfg.DatabaseURL)))
		os.Exit(1)
	}
	logger.Info("migrations applied")

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

	// Session plumbing
	codec := session.NewCodec(cfg.SessionSecret, cfg.SessionTTL)
	cookies := session.NewCookieWriter(cfg.SessionTTL, cfg.IsProduction())

	// Order notifications
	var notifier service.OrderNotifier
	if cfg.KitchenWebhookURL != "" {
		notifier = notify.NewKitchenNotifier(cfg.KitchenWebhookURL, cfg.KitchenWebhookSecret, logger)
		logger.Info("kitchen notifications enabled", "url", redactURL(cfg.KitchenWebhookURL))
	}

	// Services
	authService := service.NewAuthService(repo)
	menuService := service.NewMenuService(repo)
	orderService := service.NewOrderService(repo, notifier)

	// Handlers
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	authHandler := handler.NewAuthHandler(authService, codec, cookies, logger)
	menuHandler := handler.NewMenuHandler(menuService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)
	staticHandler := handler.NewStaticHandler(cfg.StaticDir)

	r := setupRouter(healthHandler, authHandler, menuHandler, orderHandler, staticHandler, codec, cacheClient, cfg, logger)

	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"cors_origin", cfg.CORSOrigin,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	var h slog.Handler
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

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	healthHandler *handler.HealthHandler,
	authHandler *handler.AuthHandler,
	menuHandler *handler.MenuHandler,
	orderHandler *handler.OrderHandler,
	staticHandler *handler.StaticHandler,
	codec *session.Codec,
	cacheClient *cache.Cache,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(cfg.IsDevelopment()))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.CORSOrigin)))
	r.Use(middleware.Session(codec, logger))

	// Health endpoints (no auth required)
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)

	rateLimitCfg := middleware.RateLimitConfig{
		Logger:  logger,
		Cache:   cacheClient,
		Enabled: cfg.RateLimitAuthEnabled,
		RPM:     cfg.RateLimitAuthRPM,
		Burst:   cfg.RateLimitAuthBurst,
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.RateLimitAuth(rateLimitCfg)).Post("/register", authHandler.Register)
			r.With(middleware.RateLimitAuth(rateLimitCfg)).Post("/login", authHandler.Login)
			r.With(middleware.RequireUser()).Get("/me", authHandler.Me)
			r.Delete("/logout", authHandler.Logout)
		})

		r.Route("/menu", func(r chi.Router) {
			r.Get("/", menuHandler.List)
			r.Get("/{id}", menuHandler.Get)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(middleware.RequireUser())
			r.Post("/", orderHandler.Create)
			r.Get("/", orderHandler.List)
		})

		// Unknown API paths must 404 as JSON, never fall through to the SPA.
		r.NotFound(handler.NotFound)
		r.MethodNotAllowed(handler.MethodNotAllowed)
	})

	// Everything else serves the frontend bundle.
	r.NotFound(staticHandler.ServeHTTP)

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
