package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/contaec/contaledger/internal/adapter/http"
	"github.com/contaec/contaledger/internal/adapter/http/handler"
	postgresRepo "github.com/contaec/contaledger/internal/adapter/repository/postgres"
	redisRepo "github.com/contaec/contaledger/internal/adapter/repository/redis"
	"github.com/contaec/contaledger/internal/domain"
	"github.com/contaec/contaledger/internal/infrastructure/config"
	"github.com/contaec/contaledger/internal/infrastructure/logger"
	"github.com/contaec/contaledger/internal/infrastructure/metrics"
	"github.com/contaec/contaledger/internal/infrastructure/postgres"
	"github.com/contaec/contaledger/internal/infrastructure/redis"
	"github.com/contaec/contaledger/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	appLogger.Info().Msg("connected to postgres")

	if cfg.AutoMigrate {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			appLogger.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	appLogger.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	configRepo := postgresRepo.NewResolutionConfigRepository(pool)
	invoiceRepo := postgresRepo.NewInvoiceRepository(pool)
	productRepo := postgresRepo.NewProductRepository(pool)
	entryRepo := postgresRepo.NewJournalEntryRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	resolutionCache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(appLogger)

	appMetrics := metrics.New()

	// Initialize posting engine
	var legacyTable *domain.LegacyTaxTable
	if cfg.LegacyTaxTable {
		legacyTable = domain.DefaultLegacyTaxTable()
	}
	resolver := usecase.NewAccountResolver(configRepo, accountRepo, legacyTable, resolutionCache, appLogger)
	taxCalc := usecase.NewTaxBreakdownCalculator()
	withholdingCalc := usecase.NewWithholdingCalculator()
	costPoster := usecase.NewInventoryCostPoster(productRepo, accountRepo, configRepo, appLogger)
	builder := usecase.NewJournalEntryBuilder(resolver, taxCalc, withholdingCalc, costPoster, productRepo, accountRepo, appLogger)

	// Initialize use cases
	postingUC := usecase.NewPostingUseCase(txManager, invoiceRepo, entryRepo, auditRepo, builder, idGen, retrier, appLogger, appMetrics)
	accountUC := usecase.NewAccountUseCase(accountRepo)
	ledgerUC := usecase.NewLedgerUseCase(entryRepo)

	// Initialize handlers
	postingHandler := handler.NewPostingHandler(postingUC)
	accountHandler := handler.NewAccountHandler(accountUC)
	ledgerHandler := handler.NewLedgerHandler(ledgerUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		PostingHandler:   postingHandler,
		AccountHandler:   accountHandler,
		LedgerHandler:    ledgerHandler,
		HealthHandler:    healthHandler,
		IdempotencyStore: idempotencyStore,
		Logger:           appLogger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		appLogger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info().Msg("server stopped")
}
