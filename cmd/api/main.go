// Package main provides the entrypoint for the WasteTrack API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/wastetrack/wastetrack/internal/api"
	"github.com/wastetrack/wastetrack/internal/api/middleware"
	"github.com/wastetrack/wastetrack/internal/collection"
	"github.com/wastetrack/wastetrack/internal/collectionpoint"
	"github.com/wastetrack/wastetrack/internal/database"
	"github.com/wastetrack/wastetrack/internal/notification"
	"github.com/wastetrack/wastetrack/internal/residue"
	"github.com/wastetrack/wastetrack/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "wastetrack-api"

	// Local development convenience; a missing .env file is fine.
	_ = godotenv.Load()

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting WasteTrack API")

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

	// Connect to database, waiting out a database container that is still
	// coming up.
	dbConfig := database.ConfigFromEnv()
	pool, err := database.ConnectWithRetry(ctx, dbConfig, 30*time.Second)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	log.Info().
		Str("host", dbConfig.Host).
		Int("port", dbConfig.Port).
		Str("database", dbConfig.Database).
		Msg("database connected")

	if os.Getenv("DB_APPLY_SCHEMA") == "true" {
		if err := database.ApplySchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("failed to apply schema")
		}
		log.Info().Msg("schema applied")
	}

	// Initialize notification repository and service. The other services
	// emit through it.
	notificationRepo := notification.NewPostgresRepository(pool)
	notificationService := notification.NewService(notification.ServiceConfig{
		Repository: notificationRepo,
		Logger:     log,
	})
	log.Info().Msg("notification service initialized")

	// Initialize residue repository and service
	residueRepo := residue.NewPostgresRepository(pool)
	residueService := residue.NewService(residue.ServiceConfig{
		Repository: residueRepo,
		Notifier:   notificationService,
		Logger:     log,
	})
	log.Info().Msg("residue service initialized")

	// Initialize collection point repository and service
	pointRepo := collectionpoint.NewPostgresRepository(pool)
	pointService := collectionpoint.NewService(collectionpoint.ServiceConfig{
		Repository: pointRepo,
		Logger:     log,
	})
	log.Info().Msg("collection point service initialized")

	// Initialize scheduled collection repository and service
	collectionRepo := collection.NewPostgresRepository(pool)
	collectionService := collection.NewService(collection.ServiceConfig{
		Repository: collectionRepo,
		Residues:   residueRepo,
		Points:     pointRepo,
		Notifier:   notificationService,
		Logger:     log,
	})
	log.Info().Msg("collection service initialized")

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:                Version,
		BuildTime:              BuildTime,
		Logger:                 log,
		ServiceName:            serviceName,
		Metrics:                metrics,
		DB:                     pool,
		ResidueService:         residueService,
		CollectionPointService: pointService,
		CollectionService:      collectionService,
		NotificationService:    notificationService,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
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
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
