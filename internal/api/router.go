// Package api provides the HTTP API for WasteTrack.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/wastetrack/wastetrack/internal/api/handler"
	"github.com/wastetrack/wastetrack/internal/api/middleware"
	"github.com/wastetrack/wastetrack/internal/collection"
	"github.com/wastetrack/wastetrack/internal/collectionpoint"
	"github.com/wastetrack/wastetrack/internal/notification"
	"github.com/wastetrack/wastetrack/internal/residue"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version                string
	BuildTime              string
	Logger                 zerolog.Logger
	ServiceName            string
	Metrics                *middleware.Metrics
	DB                     handler.Pinger
	ResidueService         *residue.Service
	CollectionPointService *collectionpoint.Service
	CollectionService      *collection.Service
	NotificationService    *notification.Service
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Set default service name if not provided
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "wastetrack-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.DB)
	residueHandler := handler.NewResidueHandler(cfg.ResidueService)
	pointHandler := handler.NewCollectionPointHandler(cfg.CollectionPointService)
	collectionHandler := handler.NewCollectionHandler(cfg.CollectionService)
	notificationHandler := handler.NewNotificationHandler(cfg.NotificationService)

	// Create rate limit middleware for different endpoint categories
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
		})

		// Residues
		r.Route("/residues", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", residueHandler.ListResidues)
			r.Post("/", residueHandler.CreateResidue)
			r.Route("/{residueId}", func(r chi.Router) {
				r.Get("/", residueHandler.GetResidue)
				r.Put("/", residueHandler.UpdateResidue)
				r.Delete("/", residueHandler.DeleteResidue)
			})
		})

		// Alert reconciliation - scans every residue, so rate it as expensive
		r.With(expensiveRateLimit).Post("/residues:reconcile-alerts", residueHandler.ReconcileAlerts)

		// Collection points
		r.Route("/collection-points", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", pointHandler.ListCollectionPoints)
			r.Post("/", pointHandler.CreateCollectionPoint)
			r.Get("/nearby", pointHandler.FindNearby)
			r.Route("/{pointId}", func(r chi.Router) {
				r.Get("/", pointHandler.GetCollectionPoint)
				r.Put("/", pointHandler.UpdateCollectionPoint)
				r.Delete("/", pointHandler.DeleteCollectionPoint)
			})
		})

		// Scheduled collections
		r.Route("/collections", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", collectionHandler.ListCollections)
			r.Post("/", collectionHandler.CreateCollection)
			r.Post("/{collectionId}:complete", collectionHandler.CompleteCollection)
			r.Route("/{collectionId}", func(r chi.Router) {
				r.Get("/", collectionHandler.GetCollection)
				r.Put("/", collectionHandler.UpdateCollection)
				r.Delete("/", collectionHandler.DeleteCollection)
			})
		})

		// Notifications
		r.Route("/notifications", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", notificationHandler.ListNotifications)
			r.Post("/", notificationHandler.CreateNotification)
			r.Get("/unread-count", notificationHandler.UnreadCount)
			r.Route("/{notificationId}", func(r chi.Router) {
				r.Get("/", notificationHandler.GetNotification)
				r.Put("/", notificationHandler.UpdateNotification)
				r.Delete("/", notificationHandler.DeleteNotification)
				r.Post("/read", notificationHandler.MarkNotificationRead)
			})
		})
	})

	return r
}
