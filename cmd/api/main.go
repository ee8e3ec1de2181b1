// Package main provides the entrypoint for the GuideCane API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/guidecane/guidecane/internal/api"
	"github.com/guidecane/guidecane/internal/api/middleware"
	"github.com/guidecane/guidecane/internal/database"
	"github.com/guidecane/guidecane/internal/gateway/resilience"
	geocodeors "github.com/guidecane/guidecane/internal/geocoding/openrouteservice"
	"github.com/guidecane/guidecane/internal/navigation"
	routingors "github.com/guidecane/guidecane/internal/routing/openrouteservice"
	"github.com/guidecane/guidecane/internal/speech/deepgram"
	"github.com/guidecane/guidecane/internal/telemetry"
	"github.com/guidecane/guidecane/internal/tracking"
	"github.com/guidecane/guidecane/internal/translate/googletranslate"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "guidecane-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting GuideCane API")

	// Get configuration from environment
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	otlpEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	telemetryEnabled := os.Getenv("OTEL_ENABLED") == "true"

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        telemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryEnabled {
		log.Info().
			Str("otlp_endpoint", otlpEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	pipelineMetrics, err := middleware.NewPipelineMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize pipeline metrics")
		os.Exit(1)
	}

	// Connect to database
	dbConfig := database.ConfigFromEnv()
	pool, err := database.Connect(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("failed to apply database schema")
	}
	log.Info().
		Str("host", dbConfig.Host).
		Int("port", dbConfig.Port).
		Str("database", dbConfig.Database).
		Msg("database connected")

	// Gateway registry tracks provider health for the status endpoint
	registry := resilience.NewRegistry()

	// External provider credentials
	deepgramKey := os.Getenv("DEEPGRAM_API_KEY")
	if deepgramKey == "" {
		log.Warn().Msg("DEEPGRAM_API_KEY not set - transcription will fail")
	}

	translateKey := os.Getenv("GOOGLE_TRANSLATE_API_KEY")
	if translateKey == "" {
		log.Warn().Msg("GOOGLE_TRANSLATE_API_KEY not set - non-English commands will pass through untranslated")
	}

	orsKey := os.Getenv("ORS_API_KEY")
	if orsKey == "" {
		log.Warn().Msg("ORS_API_KEY not set - navigation requests will be rejected")
	}

	transcriber := deepgram.NewClient(deepgram.ClientConfig{
		APIKey:   deepgramKey,
		Registry: registry,
		Logger:   log,
	})

	translator := googletranslate.NewClient(googletranslate.ClientConfig{
		APIKey:   translateKey,
		Registry: registry,
		Logger:   log,
	})

	geocoder := geocodeors.NewClient(geocodeors.ClientConfig{
		APIKey:   orsKey,
		Registry: registry,
		Logger:   log,
	})

	directions := routingors.NewClient(routingors.ClientConfig{
		APIKey:   orsKey,
		Registry: registry,
		Logger:   log,
	})
	log.Info().Msg("provider gateways initialized")

	// Audio archive directory
	audioDir := os.Getenv("AUDIO_DIR")
	if audioDir == "" {
		audioDir = "./audio"
	}
	audioStore := navigation.NewFilesystemAudioStore(audioDir)

	// Initialize navigation pipeline
	navigationRepo := navigation.NewPostgresRepository(pool)
	navigationService := navigation.NewService(
		transcriber,
		translator,
		geocoder,
		directions,
		navigationRepo,
		audioStore,
		navigation.Config{
			RoutingCredentialSet: orsKey != "",
			Metrics:              pipelineMetrics,
			Logger:               log,
		},
	)
	log.Info().Msg("navigation service initialized")

	// Initialize GPS tracking
	trackingRepo := tracking.NewPostgresRepository(pool)
	trackingService := tracking.NewService(trackingRepo)
	log.Info().Msg("tracking service initialized")

	// Shared device credential
	deviceKey := os.Getenv("DEVICE_API_KEY")
	if deviceKey == "" {
		deviceKey = "local-dev-device-key-change-in-production"
		log.Warn().Msg("using default device API key - not secure for production")
	}

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:           Version,
		BuildTime:         BuildTime,
		Logger:            log,
		ServiceName:       serviceName,
		Metrics:           metrics,
		DeviceAPIKey:      deviceKey,
		DB:                pool,
		GatewayRegistry:   registry,
		NavigationService: navigationService,
		TrackingService:   trackingService,
	})

	// Create HTTP server. The write timeout must outlast a worst-case
	// navigate request, which walks four external providers in sequence.
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 3 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
