// Package api provides the HTTP API for GuideCane.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/guidecane/guidecane/internal/api/handler"
	"github.com/guidecane/guidecane/internal/api/middleware"
	"github.com/guidecane/guidecane/internal/gateway/resilience"
	"github.com/guidecane/guidecane/internal/navigation"
	"github.com/guidecane/guidecane/internal/tracking"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version           string
	BuildTime         string
	Logger            zerolog.Logger
	ServiceName       string
	Metrics           *middleware.Metrics
	DeviceAPIKey      string
	DB                handler.Pinger
	GatewayRegistry   *resilience.Registry
	NavigationService *navigation.Service
	TrackingService   *tracking.Service
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Set default service name if not provided
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "guidecane-api"
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
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.DB, cfg.GatewayRegistry)
	navigateHandler := handler.NewNavigateHandler(cfg.NavigationService)
	gpsHandler := handler.NewGPSHandler(cfg.TrackingService)

	// Device authentication middleware (shared secret)
	deviceAuth := middleware.APIKeyAuth(cfg.DeviceAPIKey)

	// Rate limit middleware for different endpoint categories
	navigateRateLimit := middleware.RateLimitByIP(middleware.NavigateRateLimit) // 12 req/min
	ingestRateLimit := middleware.RateLimitByIP(middleware.IngestRateLimit)     // 120 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit) // 100 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			// Status endpoint requires the device credential
			r.With(deviceAuth).Get("/status", opsHandler.SystemStatus)
		})

		// Voice navigation - fans out to four external providers, so rate
		// limiting is tight. Multipart upload, so no RequireJSON here.
		r.Route("/navigate", func(r chi.Router) {
			r.Use(deviceAuth)
			r.With(navigateRateLimit).Post("/", navigateHandler.Navigate)
			r.With(standardRateLimit).Get("/history", navigateHandler.History)
		})

		// GPS tracking endpoints (authenticated)
		r.Route("/gps", func(r chi.Router) {
			r.Use(deviceAuth)
			r.With(ingestRateLimit, middleware.RequireJSON).Post("/", gpsHandler.Ingest)
			r.With(standardRateLimit).Get("/latest", gpsHandler.Latest)
			r.With(standardRateLimit).Get("/track", gpsHandler.Track)
			r.With(standardRateLimit).Get("/geojson", gpsHandler.GeoJSON)
		})
	})

	return r
}
