package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	amqpAdapter "github.com/iho/gofintrack/internal/adapter/amqp"
	httpAdapter "github.com/iho/gofintrack/internal/adapter/http"
	"github.com/iho/gofintrack/internal/adapter/http/handler"
	"github.com/iho/gofintrack/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/gofintrack/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/gofintrack/internal/adapter/repository/redis"
	"github.com/iho/gofintrack/internal/infrastructure/auth"
	"github.com/iho/gofintrack/internal/infrastructure/config"
	"github.com/iho/gofintrack/internal/infrastructure/eventpublisher"
	"github.com/iho/gofintrack/internal/infrastructure/logger"
	"github.com/iho/gofintrack/internal/infrastructure/metrics"
	"github.com/iho/gofintrack/internal/infrastructure/postgres"
	"github.com/iho/gofintrack/internal/infrastructure/redis"
	"github.com/iho/gofintrack/internal/usecase"
)

// limiterIdle is how long an idle client keeps its rate limiter.
const limiterIdle = 10 * time.Minute

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger
	zerolog.SetGlobalLevel(logger.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, appLogger); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}

	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, appLogger zerolog.Logger) error {
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	// Migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, appLogger); err != nil {
		return err
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	appLogger.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL, cfg.DatabaseTimeout)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()
	appLogger.Info().Msg("connected to redis")

	appMetrics := metrics.New(nil)
	clock := usecase.NewLocalClock(loc)

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	versioner := redisRepo.NewSnapshotVersioner(redisClient)
	notifier := redisRepo.NewChangeNotifier(redisClient, appLogger)

	reportCache := redisRepo.NewCache(redisClient)

	// Initialize use cases
	transactionUC := usecase.NewTransactionUseCase(
		txManager,
		transactionRepo,
		outboxRepo,
		versioner,
		postgresRepo.NewRetrier(appLogger),
		postgresRepo.NewULIDGenerator(),
		clock,
		appLogger,
	).WithReportCache(reportCache)
	analyticsUC := usecase.NewAnalyticsUseCase(transactionRepo, usecase.AnalyticsConfig{
		Cache:     reportCache,
		Versioner: versioner,
		Metrics:   appMetrics,
		Clock:     clock,
		Logger:    appLogger,
		CacheTTL:  cfg.ReportCacheTTL,
	})

	// Change publishers
	publishers := eventpublisher.FanOut{notifier}
	if cfg.AMQPEnabled() {
		amqpPublisher, err := amqpAdapter.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, appLogger)
		if err != nil {
			return fmt.Errorf("connect to amqp: %w", err)
		}
		defer amqpPublisher.Close()
		publishers = append(publishers, amqpPublisher)
		appLogger.Info().Str("exchange", cfg.AMQPExchange).Msg("forwarding change events to amqp")
	}
	publishers = append(publishers, eventpublisher.NewLogPublisher(appLogger))

	outboxWorker := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  publishers,
		Observer:   appMetrics,
		Logger:     appLogger,
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxInterval,
		Retention:  cfg.OutboxRetention,
	})

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).
		OnLimited(appMetrics.RateLimited)

	streamHandler := handler.NewStreamHandler(analyticsUC, notifier, appMetrics)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		TransactionHandler: handler.NewTransactionHandler(transactionUC, clock),
		AnalyticsHandler:   handler.NewAnalyticsHandler(analyticsUC),
		StreamHandler:      streamHandler,
		CategoryHandler:    handler.NewCategoryHandler(),
		HealthHandler: handler.NewHealthHandler(
			handler.HealthCheck{Name: "postgres", Check: pool.Ping},
			handler.HealthCheck{Name: "redis", Check: func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			}},
		),
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		JWTManager:       auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration),
		RateLimiter:      rateLimiter,
		Logger:           appLogger,
	})

	server := newHTTPServer(cfg, router, streamHandler.Shutdown)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		appLogger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return outboxWorker.Start(gctx)
	})

	g.Go(func() error {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case now := <-ticker.C:
				if n := rateLimiter.CleanupLimiters(now, limiterIdle); n > 0 {
					appLogger.Debug().Int("removed", n).Msg("pruned idle rate limiters")
				}
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info().Msg("shutting down server...")

		// Graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// newHTTPServer builds the API server. onShutdown hooks run when Shutdown
// starts and must end long-lived requests such as event streams.
func newHTTPServer(cfg *config.Config, h http.Handler, onShutdown ...func()) *http.Server {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:           h,
		ReadTimeout:       cfg.HTTPReadTimeout,
		ReadHeaderTimeout: cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
	}
	for _, fn := range onShutdown {
		server.RegisterOnShutdown(fn)
	}
	return server
}
