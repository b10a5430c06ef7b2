package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/rlopes/contas/internal/adapter/http"
	"github.com/rlopes/contas/internal/adapter/http/handler"
	"github.com/rlopes/contas/internal/adapter/http/middleware"
	postgresRepo "github.com/rlopes/contas/internal/adapter/repository/postgres"
	redisRepo "github.com/rlopes/contas/internal/adapter/repository/redis"
	"github.com/rlopes/contas/internal/domain"
	"github.com/rlopes/contas/internal/infrastructure/config"
	"github.com/rlopes/contas/internal/infrastructure/logger"
	"github.com/rlopes/contas/internal/infrastructure/metrics"
	"github.com/rlopes/contas/internal/infrastructure/postgres"
	"github.com/rlopes/contas/internal/infrastructure/redis"
	"github.com/rlopes/contas/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, postgres.PoolConfig{
		DatabaseURL: cfg.DatabaseURL,
		MaxConns:    cfg.DatabaseMaxConns,
		MinConns:    cfg.DatabaseMinConns,
	})
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	appLogger.Info().Msg("connected to postgres")

	if path := os.Getenv("MIGRATIONS_PATH"); path != "" {
		if err := postgres.RunMigrations(appLogger, cfg.DatabaseURL, path); err != nil {
			appLogger.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	appLogger.Info().Msg("connected to redis")

	m := metrics.New()

	txManager := postgresRepo.NewTxManager(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	settlementRepo := postgresRepo.NewSettlementRepository(pool)
	contactRepo := postgresRepo.NewContactRepository(pool)
	termRepo := postgresRepo.NewPaymentTermRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	cache := redisRepo.NewCache(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(appLogger)

	rules, err := settlementRules(cfg)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("invalid settlement rules")
	}

	entryUC := usecase.NewEntryUseCase(txManager, entryRepo, settlementRepo, contactRepo, idGen, cache, m)
	settlementUC := usecase.NewSettlementUseCase(txManager, entryRepo, settlementRepo, termRepo, idGen, retrier, rules, m)
	contactUC := usecase.NewContactUseCase(contactRepo, idGen)
	termUC := usecase.NewPaymentTermUseCase(termRepo, idGen)

	healthHandler := handler.NewHealthHandler(pool, redisClient)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		EntryUC:          entryUC,
		SettlementUC:     settlementUC,
		ContactUC:        contactUC,
		PaymentTermUC:    termUC,
		HealthHandler:    healthHandler,
		IdempotencyStore: idempotencyStore,
		RateLimiter:      middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		Logger:           appLogger,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		appLogger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info().Msg("server stopped")
}

func settlementRules(cfg *config.Config) (map[domain.EntryKind]domain.SettlementRules, error) {
	rules := make(map[domain.EntryKind]domain.SettlementRules, 2)
	for _, kind := range []domain.EntryKind{domain.KindReceivable, domain.KindPayable} {
		r, err := cfg.SettlementRules(kind)
		if err != nil {
			return nil, err
		}
		rules[kind] = r
	}
	return rules, nil
}
