package main

import (
	"context"
	"fmt"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/shapecalc/shapecalc/internal/config"
	"github.com/shapecalc/shapecalc/internal/handler"
	"github.com/shapecalc/shapecalc/internal/middleware"
	"github.com/shapecalc/shapecalc/internal/pkg/logger"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	sentryEnabled := initSentry(cfg, log)

	ctx := context.Background()
	deps, err := initDependencies(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to initialize dependencies", zap.Error(err))
	}

	app := newApp(cfg, deps, sentryEnabled)

	httpLog := logger.Component("http")
	go func() {
		addr := cfg.Server.Addr()
		httpLog.Info("starting server",
			zap.String("addr", addr),
			zap.String("env", cfg.Server.Env),
			zap.String("version", version),
		)
		if err := app.Listen(addr); err != nil {
			httpLog.Fatal("server failed", zap.Error(err))
		}
	}()

	wait := gfshutdown.GracefulShutdown(ctx, cfg.Server.ShutdownTimeout, map[string]gfshutdown.Operation{
		"http-server": func(ctx context.Context) error {
			httpLog.Info("shutting down server...")
			return app.ShutdownWithContext(ctx)
		},
		"dependencies": func(ctx context.Context) error {
			deps.Close()
			return nil
		},
		"sentry": func(ctx context.Context) error {
			if sentryEnabled {
				middleware.FlushSentry(5 * time.Second)
			}
			return nil
		},
	})

	exitCode := <-wait
	log.Info("server stopped", zap.Int("exit_code", exitCode))
	_ = logger.Sync()
	os.Exit(exitCode)
}

// newApp builds the fiber app with the global middleware chain and routes
func newApp(cfg *config.Config, deps *Dependencies, sentryEnabled bool) *fiber.App {
	log := deps.Logger

	app := fiber.New(fiber.Config{
		AppName:               cfg.Server.ServiceName,
		Immutable:             true,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           120 * time.Second,
		DisableStartupMessage: cfg.IsProduction(),
		ErrorHandler:          handler.ErrorHandler(log, sentryEnabled),
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.NewLoggerMiddleware(middleware.DefaultLoggerConfig(log)).Handler())

	if sentryEnabled {
		app.Use(middleware.SentryMiddleware(true))
	}

	recoverConfig := middleware.DefaultRecoverConfig(log)
	recoverConfig.SentryEnabled = sentryEnabled
	app.Use(middleware.NewRecoverMiddleware(recoverConfig).Handler())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.CORS.AllowOrigins
	app.Use(middleware.NewCORSMiddleware(corsConfig).Handler())

	app.Use(middleware.NewMetricsMiddleware(middleware.DefaultMetricsConfig()).Handler())

	if deps.RateLimitMiddleware != nil {
		app.Use(deps.RateLimitMiddleware.Handler())
	}

	registerRoutes(app, deps)

	return app
}

// initSentry initializes Sentry when enabled and reports whether it is active
func initSentry(cfg *config.Config, log *zap.Logger) bool {
	if !cfg.Sentry.Enabled || cfg.Sentry.DSN == "" {
		return false
	}

	sentryConfig := middleware.SentryConfig{
		DSN:         cfg.Sentry.DSN,
		Environment: cfg.Sentry.Environment,
		Release:     "shapecalc@" + version,
		Debug:       cfg.Sentry.Debug,
		SampleRate:  cfg.Sentry.SampleRate,
	}
	if sentryConfig.Environment == "" {
		sentryConfig.Environment = cfg.Server.Env
	}

	if err := middleware.InitSentry(sentryConfig); err != nil {
		log.Error("failed to initialize Sentry", zap.Error(err))
		return false
	}

	log.Info("Sentry initialized",
		zap.String("environment", sentryConfig.Environment),
		zap.String("release", sentryConfig.Release),
	)
	return true
}
