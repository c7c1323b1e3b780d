package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/horizons-voyages/cotation-api/internal/auth"
	"github.com/horizons-voyages/cotation-api/internal/config"
	"github.com/horizons-voyages/cotation-api/internal/database"
	"github.com/horizons-voyages/cotation-api/internal/domain"
	"github.com/horizons-voyages/cotation-api/internal/http/handler"
	"github.com/horizons-voyages/cotation-api/internal/http/middleware"
	"github.com/horizons-voyages/cotation-api/internal/pricingwarehouse"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/horizons-voyages/cotation-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg                 *config.Config
	logger              *zap.Logger
	db                  *gorm.DB
	warehouse           *pricingwarehouse.Client
	authMiddleware      *auth.Middleware
	rateLimiter         *middleware.RateLimiter
	snapshotHandler     *handler.SnapshotHandler
	cotationHandler     *handler.CotationHandler
	exchangeRateHandler *handler.ExchangeRateHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	warehouse *pricingwarehouse.Client,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	snapshotHandler *handler.SnapshotHandler,
	cotationHandler *handler.CotationHandler,
	exchangeRateHandler *handler.ExchangeRateHandler,
) *Router {
	return &Router{
		cfg:                 cfg,
		logger:              logger,
		db:                  db,
		warehouse:           warehouse,
		authMiddleware:      authMiddleware,
		rateLimiter:         rateLimiter,
		snapshotHandler:     snapshotHandler,
		cotationHandler:     cotationHandler,
		exchangeRateHandler: exchangeRateHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP) // Apply IP-based rate limiting globally

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with detailed stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats": map[string]interface{}{
				"max_open_connections": stats.MaxOpenConnections,
				"open_connections":     stats.OpenConnections,
				"in_use":               stats.InUse,
				"idle":                 stats.Idle,
				"wait_count":           stats.WaitCount,
				"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
				"max_idle_closed":      stats.MaxIdleClosed,
				"max_lifetime_closed":  stats.MaxLifetimeClosed,
			},
		})
	})

	// Combined readiness check (checks all dependencies)
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		// Check database
		if err := database.HealthCheck(rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		// Check pricing warehouse when configured. A warehouse outage delays
		// imports but does not make the API unusable, so it never flips the
		// overall status.
		if rt.warehouse != nil && rt.warehouse.IsEnabled() {
			health := rt.warehouse.HealthCheck(r.Context())
			entry := map[string]interface{}{
				"status":     health.Status,
				"latency_ms": health.Latency.Milliseconds(),
			}
			if health.Error != "" {
				entry["error"] = health.Error
			}
			checks["pricing_warehouse"] = entry
		}

		w.Header().Set("Content-Type", "application/json")
		if allHealthy {
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "healthy",
				"checks": checks,
			})
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "unhealthy",
				"checks": checks,
			})
		}
	})

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.authMiddleware.Authenticate)

		// Cotation snapshots
		r.Route("/cotations", func(r chi.Router) {
			r.Get("/", rt.snapshotHandler.List)
			r.With(rt.authMiddleware.RequireRole(domain.RoleEngine, domain.RoleAdmin)).
				Post("/", rt.snapshotHandler.Ingest)
			r.Post("/preview", rt.cotationHandler.Preview)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", rt.snapshotHandler.Get)
				r.With(rt.authMiddleware.RequireAdmin).
					Delete("/", rt.snapshotHandler.Delete)

				// Rendered views
				r.Get("/summary", rt.cotationHandler.Summary)
				r.Get("/days", rt.cotationHandler.Days)
				r.Get("/types", rt.cotationHandler.Types)
				r.Get("/alerts", rt.cotationHandler.Alerts)
			})
		})

		// Trips
		r.Get("/trips/{tripRef}/cotation", rt.snapshotHandler.GetLatestForTrip)

		// Exchange rates
		r.Get("/exchange-rates/{base}", rt.exchangeRateHandler.GetRates)
	})

	return r
}
