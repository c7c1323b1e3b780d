package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/horizons-voyages/cotation-api/docs"
	"github.com/horizons-voyages/cotation-api/internal/auth"
	"github.com/horizons-voyages/cotation-api/internal/clients/exchangerate"
	"github.com/horizons-voyages/cotation-api/internal/config"
	"github.com/horizons-voyages/cotation-api/internal/database"
	"github.com/horizons-voyages/cotation-api/internal/http/handler"
	"github.com/horizons-voyages/cotation-api/internal/http/middleware"
	"github.com/horizons-voyages/cotation-api/internal/http/router"
	"github.com/horizons-voyages/cotation-api/internal/jobs"
	"github.com/horizons-voyages/cotation-api/internal/logger"
	"github.com/horizons-voyages/cotation-api/internal/pricingwarehouse"
	"github.com/horizons-voyages/cotation-api/internal/repository"
	"github.com/horizons-voyages/cotation-api/internal/service"
	"github.com/horizons-voyages/cotation-api/internal/storage"
	"go.uber.org/zap"
)

// @title Horizons Cotation API
// @version 1.0
// @description Back-office API for trip cotation snapshots, pricing views and alerts
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email dev@horizons-voyages.fr

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description API Key for the pricing engine
// @Security BearerAuth
// @Security ApiKeyAuth

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	// Configure Swagger host based on environment
	switch basicCfg.App.Environment {
	case "staging":
		docs.SwaggerInfo.Host = "cotation-api-staging.horizons-voyages.fr"
	case "production":
		docs.SwaggerInfo.Host = "cotation-api.horizons-voyages.fr"
	default:
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// Load full configuration with secrets
	// In development: uses environment variables
	// In staging/production: fetches from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	// Connect to database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize the payload archive used by the retention purge
	archive, err := storage.NewArchive(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize archive storage: %w", err)
	}

	log.Info("Archive storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Connect to the pricing warehouse (optional, used to import missed runs)
	// The connection is read-only and the app continues without it
	var warehouse *pricingwarehouse.Client
	if cfg.PricingWarehouse.Enabled {
		warehouse, err = pricingwarehouse.NewClient(&cfg.PricingWarehouse, log)
		if err != nil {
			log.Warn("Pricing warehouse connection failed, continuing without it",
				zap.Error(err),
			)
		} else if warehouse != nil {
			log.Info("Pricing warehouse connected",
				zap.Int("max_open_conns", cfg.PricingWarehouse.MaxOpenConns),
				zap.Int("query_timeout_seconds", cfg.PricingWarehouse.QueryTimeout),
			)
		}
	} else {
		log.Info("Pricing warehouse not configured, skipping",
			zap.Bool("enabled", cfg.PricingWarehouse.Enabled),
		)
	}

	// Exchange rate provider client
	rateClient := exchangerate.NewClient(&cfg.ExchangeRates, log)

	// Initialize repositories and services
	snapshotRepo := repository.NewSnapshotRepository(db)
	snapshotService := service.NewSnapshotService(snapshotRepo, archive, log)
	cotationService := service.NewCotationService(snapshotService, log)
	syncService := service.NewWarehouseSyncService(warehouse, snapshotService, cfg.PricingWarehouse.SyncBatchSize, log)

	// Initialize middleware
	authMiddleware := auth.NewMiddleware(cfg, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Initialize handlers
	snapshotHandler := handler.NewSnapshotHandler(snapshotService, log)
	cotationHandler := handler.NewCotationHandler(cotationService, log)
	exchangeRateHandler := handler.NewExchangeRateHandler(rateClient, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		warehouse,
		authMiddleware,
		rateLimiter,
		snapshotHandler,
		cotationHandler,
		exchangeRateHandler,
	)

	// Initialize and start scheduler for background jobs
	scheduler := jobs.NewScheduler(log)
	jobsRegistered := 0

	if cfg.PricingWarehouse.Enabled && warehouse != nil {
		// runStartupSync=true imports runs missed while the API was down
		if err := jobs.RegisterWarehouseSyncJob(
			scheduler,
			syncService,
			log,
			cfg.PricingWarehouse.SyncSchedule,
			cfg.PricingWarehouse.QueryTimeoutDuration(),
			true,
		); err != nil {
			log.Error("Failed to register warehouse sync job", zap.Error(err))
		} else {
			jobsRegistered++
			log.Info("Warehouse sync job registered",
				zap.String("cron_expr", cfg.PricingWarehouse.SyncSchedule),
			)
		}
	}

	if cfg.Retention.Enabled {
		maxAge := time.Duration(cfg.Retention.MaxAgeDays) * 24 * time.Hour
		if err := jobs.RegisterPurgeJob(
			scheduler,
			snapshotService,
			maxAge,
			cfg.Retention.ArchiveBeforePurge,
			log,
			cfg.Retention.Schedule,
			10*time.Minute,
		); err != nil {
			log.Error("Failed to register purge job", zap.Error(err))
		} else {
			jobsRegistered++
			log.Info("Snapshot purge job registered",
				zap.String("cron_expr", cfg.Retention.Schedule),
				zap.Int("max_age_days", cfg.Retention.MaxAgeDays),
				zap.Bool("archive_before_purge", cfg.Retention.ArchiveBeforePurge),
			)
		}
	}

	if jobsRegistered > 0 {
		scheduler.Start()
		log.Info("Scheduler started", zap.Int("jobs", jobsRegistered))
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		// Stop scheduler if running
		if jobsRegistered > 0 {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		// Close warehouse connection if initialized
		if warehouse != nil {
			if err := warehouse.Close(); err != nil {
				log.Warn("Error closing pricing warehouse connection", zap.Error(err))
			}
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
