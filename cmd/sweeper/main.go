package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/freshmart-id/freshmart-backend/internal/inventory"
	"github.com/freshmart-id/freshmart-backend/internal/orders"
	"github.com/freshmart-id/freshmart-backend/internal/pricing"
	"github.com/freshmart-id/freshmart-backend/internal/stores"
	"github.com/freshmart-id/freshmart-backend/internal/sweeper"
	"github.com/freshmart-id/freshmart-backend/pkg/config"
	"github.com/freshmart-id/freshmart-backend/pkg/db"
	"github.com/freshmart-id/freshmart-backend/pkg/logger"
	"github.com/freshmart-id/freshmart-backend/pkg/metrics"
	"github.com/freshmart-id/freshmart-backend/pkg/migrate"
	"github.com/freshmart-id/freshmart-backend/pkg/outbox"
	"github.com/freshmart-id/freshmart-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "sweeper"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "sweeper",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	gormDB := dbClient.DB()
	outboxService := outbox.NewService(outbox.NewRepository(gormDB), logg)

	inventoryService, err := inventory.NewService(inventory.NewRepository(gormDB), dbClient, outboxService)
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}

	storeService, err := stores.NewService(stores.NewRepository(gormDB), inventory.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create store locator", err)
		os.Exit(1)
	}

	pricingService, err := pricing.NewService(pricing.NewRepository(gormDB), cfg.Shipping)
	if err != nil {
		logg.Error(context.Background(), "failed to create pricing engine", err)
		os.Exit(1)
	}

	ordersRepo := orders.NewRepository(gormDB)
	ordersService, err := orders.NewService(
		ordersRepo,
		dbClient,
		outboxService,
		inventoryService,
		storeService,
		pricingService,
		cfg.Checkout,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	expiryJob, err := sweeper.NewExpiryJob(ordersRepo, ordersService, logg, cfg.Sweeper)
	if err != nil {
		logg.Error(context.Background(), "failed to create expiry job", err)
		os.Exit(1)
	}
	autoConfirmJob, err := sweeper.NewAutoConfirmJob(ordersRepo, ordersService, logg, cfg.Sweeper)
	if err != nil {
		logg.Error(context.Background(), "failed to create auto-confirm job", err)
		os.Exit(1)
	}

	scheduler, err := sweeper.NewScheduler(sweeper.SchedulerParams{
		Logger:  logg,
		Lock:    redisClient,
		Metrics: metrics.NewSweeperMetrics(prometheus.DefaultRegisterer),
		Config:  cfg.Sweeper,
		Jobs:    []sweeper.Job{expiryJob, autoConfirmJob},
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create sweeper scheduler", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"jobs": []string{expiryJob.Name(), autoConfirmJob.Name()},
	})
	logg.Info(ctx, "starting sweeper")

	// The sweeper has no API surface; the listener exists only to scrape
	// the job metrics.
	metricsServer := &http.Server{Addr: ":" + cfg.App.Port, Handler: promhttp.Handler()}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "metrics server stopped unexpectedly", err)
		}
	}()
	defer func() {
		if err := metricsServer.Close(); err != nil {
			logg.Error(ctx, "error closing metrics server", err)
		}
	}()

	if err := scheduler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "sweeper stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "sweeper shutting down gracefully")
}
