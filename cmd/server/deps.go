package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/shapecalc/shapecalc/internal/config"
	"github.com/shapecalc/shapecalc/internal/handler"
	"github.com/shapecalc/shapecalc/internal/middleware"
	"github.com/shapecalc/shapecalc/internal/pkg/circuitbreaker"
	"github.com/shapecalc/shapecalc/internal/pkg/database"
	"github.com/shapecalc/shapecalc/internal/service"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	Logger *zap.Logger

	// Optional Redis, shared rate limit counters
	Redis *database.RedisDB

	// Services
	CalculatorService *service.CalculatorService

	// Handlers
	CalculatorHandler *handler.CalculatorHandler
	HealthHandler     *handler.HealthHandler
	PagesHandler      *handler.PagesHandler
	DocsHandler       *handler.DocsHandler

	// Middleware
	RateLimitMiddleware *middleware.RateLimitMiddleware
}

// initDependencies initializes all dependencies
func initDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	var pinger handler.Pinger
	var counter middleware.WindowCounter
	if cfg.Redis.Enabled {
		redisDB, err := database.NewRedis(ctx, cfg.Redis, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
		deps.Redis = redisDB
		pinger = redisDB

		breakerConfig := circuitbreaker.DefaultConfig("redis-ratelimit")
		breakerConfig.OnStateChange = func(name string, from, to circuitbreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		}
		counter = middleware.NewBreakerCounter(redisDB, circuitbreaker.New(breakerConfig))
	}

	deps.CalculatorService = service.NewCalculatorService(logger.Named("calculator"))

	deps.CalculatorHandler = handler.NewCalculatorHandler(deps.CalculatorService, logger)
	deps.HealthHandler = handler.NewHealthHandler(pinger, cfg.Server.ServiceName, version)
	deps.PagesHandler = handler.NewPagesHandler(cfg.Frontend.Path)

	docsHandler, err := handler.NewDocsHandler()
	if err != nil {
		deps.Close()
		return nil, err
	}
	deps.DocsHandler = docsHandler

	if cfg.RateLimit.Enabled {
		rlConfig := middleware.DefaultRateLimitConfig()
		rlConfig.Max = cfg.RateLimit.Max
		rlConfig.Window = cfg.RateLimit.Window
		rlConfig.Logger = logger
		deps.RateLimitMiddleware = middleware.NewRateLimitMiddleware(counter, rlConfig)

		backend := "memory"
		if counter != nil {
			backend = "redis"
		}
		logger.Info("rate limiting enabled",
			zap.Int("max", rlConfig.Max),
			zap.Duration("window", rlConfig.Window),
			zap.String("backend", backend),
		)
	}

	return deps, nil
}

// Close closes all connections
func (d *Dependencies) Close() {
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			d.Logger.Warn("failed to close Redis", zap.Error(err))
		}
	}
}
