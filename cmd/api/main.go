package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/propstack/revenue-summary/internal/adapter/api"
	"github.com/propstack/revenue-summary/internal/adapter/api/middleware"
	"github.com/propstack/revenue-summary/internal/adapter/metrics"
	"github.com/propstack/revenue-summary/internal/adapter/repository/demo"
	"github.com/propstack/revenue-summary/internal/adapter/repository/postgres"
	redisrepo "github.com/propstack/revenue-summary/internal/adapter/repository/redis"
	"github.com/propstack/revenue-summary/internal/domain"
	"github.com/propstack/revenue-summary/internal/period"
	"github.com/propstack/revenue-summary/internal/pkg/config"
	"github.com/propstack/revenue-summary/internal/pkg/logger"
	"github.com/propstack/revenue-summary/internal/usecase"

	_ "github.com/lib/pq" // Keep for postgres driver
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logger.New(cfg.LogLevel)
	slog.SetDefault(logger)

	m := metrics.NewRevenueMetrics()

	// --- Graceful Shutdown Context ---
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Redis Connection (process-wide, created once) ---
	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		// Cache unavailability is survivable: requests degrade to direct
		// aggregation until Redis comes back.
		logger.Warn("could not connect to redis, serving uncached until it recovers", "error", err)
	}
	defer redisClient.Close()

	// --- Data Source ---
	var (
		reservations domain.ReservationRepository
		db           *sql.DB
	)
	if cfg.DemoMode {
		reservations = demo.NewReservationRepository(logger)
	} else {
		db, err = sql.Open("postgres", cfg.PostgresURL)
		if err != nil {
			logger.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		reservations = postgres.NewReservationRepository(db, cfg.QueryTimeout, logger)
	}

	// --- Use Cases ---
	periods := period.NewResolver(logger, m)
	aggregator := usecase.NewAggregateRevenueUseCase(reservations, periods, logger)
	cacheStore := redisrepo.NewSummaryCache(redisClient, cfg.CacheOpTimeout, logger)
	revenueCache := usecase.NewRevenueCacheUseCase(cacheStore, aggregator, cfg.CacheTTL, logger, m)
	service := usecase.NewSummaryService(revenueCache, cfg.ReportYear, time.Month(cfg.ReportMonth), logger, m)

	// --- Admin and Metrics Server ---
	adminMux := http.NewServeMux()
	adminMux.Handle("/metrics", promhttp.Handler())
	adminMux.Handle("/", api.NewAdminRouter(service, logger))

	adminServer := &http.Server{
		Addr:    cfg.AdminAddr,
		Handler: adminMux,
	}

	go func() {
		logger.Info("starting admin & metrics server", "addr", adminServer.Addr)
		if err := adminServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("admin & metrics server failed", "error", err)
		}
	}()

	// --- API Server ---
	var identityRepo domain.IdentityRepository
	if cfg.DemoMode {
		identityRepo = demo.NewIdentityRepository(logger)
	} else {
		identityRepo = postgres.NewIdentityRepository(db, logger, cfg.IdentityCacheTTL, m)
	}

	apiRouter := api.NewRouter(cfg, logger, identityRepo, service, m)
	apiServer := &http.Server{
		Addr:         cfg.APIAddr,
		Handler:      middleware.RequestID()(middleware.Logging(logger)(apiRouter)),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	go func() {
		logger.Info("starting api server", "addr", apiServer.Addr, "demo_mode", cfg.DemoMode)
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("api server failed", "error", err)
			stop() // Trigger shutdown on server error
		}
	}()

	// --- Wait for shutdown signal ---
	<-ctx.Done()
	logger.Info("shutting down servers...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := adminServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("admin server shutdown failed", "error", err)
	}
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("api server shutdown failed", "error", err)
	}

	logger.Info("servers shut down gracefully")
}
